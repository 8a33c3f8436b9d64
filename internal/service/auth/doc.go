// Package auth provides authentication primitives: JWT issuance and
// validation, bcrypt password hashing, email digests, and the token
// denylist consulted on every authenticated request.
package auth
