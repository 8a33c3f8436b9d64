// Package postgres provides PostgreSQL implementations of the store
// interfaces, plus the shared pagination/filter engine used by every
// List operation. Queries are built with goqu against per-entity column
// allow-lists so sort and filter fields can never inject SQL.
package postgres
