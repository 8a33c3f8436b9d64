package store

import (
	"context"
	"database/sql"

	"github.com/rmachado/library-api/internal/domain"
)

// LoanStore defines the interface for loan data persistence.
// Loans are append-only: there is no update or delete operation.
type LoanStore interface {
	// FindOrCreate looks for a row matching every field of the given loan
	// (user, book and both dates jointly) and returns it if present;
	// otherwise it inserts the loan and returns the stored row.
	// Returns ErrForeignKey if the referenced user or book does not exist.
	FindOrCreate(ctx context.Context, loan *domain.Loan) (*domain.Loan, error)

	// GetByID retrieves a loan by ID.
	// Returns ErrLoanNotFound if the loan does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Loan, error)

	// List returns one page of loans per the given spec.
	List(ctx context.Context, spec PaginationSpec) (Page[domain.Loan], error)

	// WithTx returns a LoanStore bound to the provided transaction.
	WithTx(tx *sql.Tx) LoanStore
}
