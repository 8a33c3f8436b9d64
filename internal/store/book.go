package store

import (
	"context"
	"database/sql"

	"github.com/rmachado/library-api/internal/domain"
)

// BookStore defines the interface for book data persistence.
type BookStore interface {
	// FindOrCreate looks for a row matching every field of the given book
	// (title, publication year and author jointly) and returns it if
	// present; otherwise it inserts the book and returns the stored row.
	// Returns ErrForeignKey if the referenced author does not exist.
	FindOrCreate(ctx context.Context, book *domain.Book) (*domain.Book, error)

	// GetByID retrieves a book by ID.
	// Returns ErrBookNotFound if the book does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Book, error)

	// Update persists the full book row.
	// Returns ErrBookNotFound if the book does not exist.
	// Returns ErrForeignKey if an updated author reference does not exist.
	Update(ctx context.Context, book *domain.Book) error

	// Delete removes a book by ID.
	// Returns ErrBookNotFound if the book does not exist.
	Delete(ctx context.Context, id int64) error

	// List returns one page of books per the given spec.
	List(ctx context.Context, spec PaginationSpec) (Page[domain.Book], error)

	// WithTx returns a BookStore bound to the provided transaction.
	WithTx(tx *sql.Tx) BookStore
}
