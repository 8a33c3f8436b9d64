package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/rmachado/library-api/internal/domain"
	"github.com/rmachado/library-api/internal/notify"
	"github.com/rmachado/library-api/internal/store"
)

// notifyTimeout bounds the notification publish separately from the store
// call; a slow broker must not stall the request that created the loan.
const notifyTimeout = 3 * time.Second

// LoanService provides loan-related operations. Loans are append-only.
type LoanService interface {
	// Create registers a loan, or returns the existing row when an
	// identical loan is already registered. A notification goes out for
	// newly created loans; notification failures do not fail the loan.
	Create(ctx context.Context, userID, bookID int64, loanDate, returnDate domain.Date) (*domain.Loan, error)

	// Get retrieves a loan by ID.
	Get(ctx context.Context, id int64) (*domain.Loan, error)

	// List returns one page of loans per the given spec.
	List(ctx context.Context, spec store.PaginationSpec) (store.Page[domain.Loan], error)
}

// LoanServiceImpl implements the LoanService interface
type LoanServiceImpl struct {
	loanStore store.LoanStore
	notifier  notify.Notifier
	db        *sql.DB
	logger    *slog.Logger
	timeout   time.Duration

	// runTx wraps store.RunInTransaction; injectable so unit tests can
	// substitute a pass-through runner.
	runTx func(ctx context.Context, fn store.TxFn) error
}

// Ensure LoanServiceImpl implements LoanService interface
var _ LoanService = (*LoanServiceImpl)(nil)

// NewLoanService creates a new LoanService
func NewLoanService(
	loanStore store.LoanStore,
	notifier notify.Notifier,
	db *sql.DB,
	logger *slog.Logger,
) *LoanServiceImpl {
	s := &LoanServiceImpl{
		loanStore: loanStore,
		notifier:  notifier,
		db:        db,
		logger:    logger.With("component", "loan_service"),
		timeout:   defaultOpTimeout,
	}
	s.runTx = func(ctx context.Context, fn store.TxFn) error {
		return store.RunInTransaction(ctx, s.db, fn)
	}
	return s
}

// Create registers a loan inside a transaction and then publishes the
// creation notification. The loan stands even when the publish fails; the
// failure is logged and the caller still gets the persisted row.
func (s *LoanServiceImpl) Create(
	ctx context.Context,
	userID, bookID int64,
	loanDate, returnDate domain.Date,
) (*domain.Loan, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	loan, err := domain.NewLoan(userID, bookID, loanDate, returnDate)
	if err != nil {
		s.logger.Warn("invalid loan payload", "error", err)
		return nil, E(FailureCreateLoanFailed, "create loan", err)
	}

	var created *domain.Loan
	err = s.runTx(opCtx, func(ctx context.Context, tx *sql.Tx) error {
		var txErr error
		created, txErr = s.loanStore.WithTx(tx).FindOrCreate(ctx, loan)
		return txErr
	})
	if err != nil {
		s.logger.Error("failed to create loan",
			"error", err,
			"user_id", userID,
			"book_id", bookID)
		return nil, E(FailureCreateLoanFailed, "create loan", err)
	}

	notifyCtx, cancelNotify := context.WithTimeout(ctx, notifyTimeout)
	defer cancelNotify()
	if err := s.notifier.LoanCreated(notifyCtx, created); err != nil {
		s.logger.Error("failed to publish loan notification",
			"error", err,
			"loan_id", created.ID,
			"user_id", created.UserID,
			"book_id", created.BookID)
	}

	s.logger.Info("loan created", "loan_id", created.ID, "user_id", userID, "book_id", bookID)
	return created, nil
}

// Get retrieves a loan by ID.
func (s *LoanServiceImpl) Get(ctx context.Context, id int64) (*domain.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	loan, err := s.loanStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrLoanNotFound) {
			s.logger.Debug("loan not found", "loan_id", id)
			return nil, E(FailureLoanNotFound, "get loan", err)
		}
		s.logger.Error("failed to retrieve loan", "error", err, "loan_id", id)
		return nil, E(FailureGetLoanFailed, "get loan", err)
	}

	return loan, nil
}

// List returns one page of loans per the given spec.
func (s *LoanServiceImpl) List(
	ctx context.Context,
	spec store.PaginationSpec,
) (store.Page[domain.Loan], error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	page, err := s.loanStore.List(ctx, spec)
	if err != nil {
		s.logger.Error("failed to list loans", "error", err)
		return store.Page[domain.Loan]{}, E(FailureListLoansFailed, "list loans", err)
	}

	return page, nil
}
