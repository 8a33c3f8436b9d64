// Package store defines the persistence interfaces for the library
// entities, the sentinel errors store implementations signal, and the
// pagination value objects (PaginationSpec, Page) shared by every list
// operation. Concrete PostgreSQL implementations live in
// internal/platform/postgres.
package store
