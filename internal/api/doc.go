// Package api contains the HTTP handlers, request/response models, and the
// error translator mapping service failure kinds to wire responses.
package api
