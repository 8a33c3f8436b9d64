package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rmachado/library-api/internal/domain"
	"github.com/rmachado/library-api/internal/platform/logger"
	"github.com/rmachado/library-api/internal/store"
)

var loanColumns = []any{"id", "user_id", "book_id", "loan_date", "return_date", "created_at", "updated_at"}

// loanListColumns is the allow-list of sortable/filterable loan columns.
var loanListColumns = map[string]bool{
	"user_id":     true,
	"book_id":     true,
	"loan_date":   true,
	"return_date": true,
}

// PostgresLoanStore implements the store.LoanStore interface
// using a PostgreSQL database as the storage backend.
type PostgresLoanStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLoanStore creates a new PostgreSQL implementation of the
// LoanStore interface.
func NewPostgresLoanStore(db store.DBTX, logger *slog.Logger) *PostgresLoanStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLoanStore{
		db:     db,
		logger: logger.With(slog.String("component", "loan_store")),
	}
}

// Ensure PostgresLoanStore implements store.LoanStore interface
var _ store.LoanStore = (*PostgresLoanStore)(nil)

// WithTx implements store.LoanStore.WithTx
func (s *PostgresLoanStore) WithTx(tx *sql.Tx) store.LoanStore {
	return &PostgresLoanStore{db: tx, logger: s.logger}
}

// FindOrCreate implements store.LoanStore.FindOrCreate
// Returns store.ErrForeignKey if the referenced user or book does not exist.
func (s *PostgresLoanStore) FindOrCreate(
	ctx context.Context,
	loan *domain.Loan,
) (*domain.Loan, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := loan.Validate(); err != nil {
		log.Warn("loan validation failed during create",
			slog.String("error", err.Error()))
		return nil, err
	}

	existing := `
		SELECT id, user_id, book_id, loan_date, return_date, created_at, updated_at
		FROM loans
		WHERE user_id = $1 AND book_id = $2 AND loan_date = $3 AND return_date = $4
		LIMIT 1
	`
	var found domain.Loan
	err := s.db.QueryRowContext(
		ctx,
		existing,
		loan.UserID,
		loan.BookID,
		loan.LoanDate,
		loan.ReturnDate,
	).Scan(
		&found.ID,
		&found.UserID,
		&found.BookID,
		&found.LoanDate,
		&found.ReturnDate,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err == nil {
		log.Debug("loan already exists, returning existing row",
			slog.Int64("loan_id", found.ID))
		return &found, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Error("failed to look up loan before insert",
			slog.String("error", err.Error()))
		return nil, err
	}

	insert := `
		INSERT INTO loans (user_id, book_id, loan_date, return_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err = s.db.QueryRowContext(
		ctx,
		insert,
		loan.UserID,
		loan.BookID,
		loan.LoanDate,
		loan.ReturnDate,
		loan.CreatedAt,
		loan.UpdatedAt,
	).Scan(&loan.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during loan creation",
				slog.Int64("user_id", loan.UserID),
				slog.Int64("book_id", loan.BookID))
			return nil, fmt.Errorf("%w: user %d or book %d",
				store.ErrForeignKey, loan.UserID, loan.BookID)
		}
		log.Error("failed to create loan",
			slog.String("error", err.Error()),
			slog.Int64("user_id", loan.UserID),
			slog.Int64("book_id", loan.BookID))
		return nil, err
	}

	log.Info("loan created successfully",
		slog.Int64("loan_id", loan.ID),
		slog.Int64("user_id", loan.UserID),
		slog.Int64("book_id", loan.BookID))
	return loan, nil
}

// GetByID implements store.LoanStore.GetByID
// Returns store.ErrLoanNotFound if the loan does not exist.
func (s *PostgresLoanStore) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, book_id, loan_date, return_date, created_at, updated_at
		FROM loans
		WHERE id = $1
	`

	var loan domain.Loan
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&loan.ID,
		&loan.UserID,
		&loan.BookID,
		&loan.LoanDate,
		&loan.ReturnDate,
		&loan.CreatedAt,
		&loan.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("loan not found", slog.Int64("loan_id", id))
			return nil, store.ErrLoanNotFound
		}
		log.Error("failed to get loan by ID",
			slog.String("error", err.Error()),
			slog.Int64("loan_id", id))
		return nil, err
	}

	return &loan, nil
}

// List implements store.LoanStore.List
func (s *PostgresLoanStore) List(
	ctx context.Context,
	spec store.PaginationSpec,
) (store.Page[domain.Loan], error) {
	return listPage[domain.Loan](ctx, s.db, "loans", loanColumns, loanListColumns, spec)
}
