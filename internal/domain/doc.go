// Package domain contains the core business entities of the library
// backend: Author, Book, Loan and User, plus the Date value type and the
// validation errors they can produce. Entities are plain structs with
// constructor functions that validate on creation; persistence concerns
// live in the store packages.
package domain
