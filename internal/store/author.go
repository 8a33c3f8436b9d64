package store

import (
	"context"
	"database/sql"

	"github.com/rmachado/library-api/internal/domain"
)

// AuthorStore defines the interface for author data persistence.
type AuthorStore interface {
	// FindOrCreate looks for a row matching every field of the given author
	// (name and birthdate jointly) and returns it if present; otherwise it
	// inserts the author and returns the stored row with its assigned ID.
	FindOrCreate(ctx context.Context, author *domain.Author) (*domain.Author, error)

	// GetByID retrieves an author by ID.
	// Returns ErrAuthorNotFound if the author does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Author, error)

	// Update persists the full author row.
	// Returns ErrAuthorNotFound if the author does not exist.
	Update(ctx context.Context, author *domain.Author) error

	// Delete removes an author by ID.
	// Returns ErrAuthorNotFound if the author does not exist.
	Delete(ctx context.Context, id int64) error

	// List returns one page of authors per the given spec.
	// Returns ErrInvalidColumn if the spec names a column outside the
	// author allow-list.
	List(ctx context.Context, spec PaginationSpec) (Page[domain.Author], error)

	// WithTx returns an AuthorStore bound to the provided transaction.
	WithTx(tx *sql.Tx) AuthorStore
}
