package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/rmachado/library-api/internal/domain"
	"github.com/rmachado/library-api/internal/store"
)

// defaultOpTimeout bounds every store call made by the services so a stuck
// database cannot hold request goroutines forever.
const defaultOpTimeout = 5 * time.Second

// AuthorService provides author-related operations.
type AuthorService interface {
	// Create registers an author, or returns the existing row when an
	// author with the same name and birthdate is already registered.
	Create(ctx context.Context, name string, birthdate domain.Date) (*domain.Author, error)

	// Get retrieves an author by ID.
	Get(ctx context.Context, id int64) (*domain.Author, error)

	// Update applies the patch to the author and returns the updated row.
	// An empty patch is a no-op that returns the current row.
	Update(ctx context.Context, id int64, patch domain.AuthorPatch) (*domain.Author, error)

	// Delete removes an author by ID.
	Delete(ctx context.Context, id int64) error

	// List returns one page of authors per the given spec.
	List(ctx context.Context, spec store.PaginationSpec) (store.Page[domain.Author], error)
}

// AuthorServiceImpl implements the AuthorService interface
type AuthorServiceImpl struct {
	authorStore store.AuthorStore
	db          *sql.DB
	logger      *slog.Logger
	timeout     time.Duration

	// runTx wraps store.RunInTransaction; injectable so unit tests can
	// substitute a pass-through runner.
	runTx func(ctx context.Context, fn store.TxFn) error
}

// Ensure AuthorServiceImpl implements AuthorService interface
var _ AuthorService = (*AuthorServiceImpl)(nil)

// NewAuthorService creates a new AuthorService
func NewAuthorService(authorStore store.AuthorStore, db *sql.DB, logger *slog.Logger) *AuthorServiceImpl {
	s := &AuthorServiceImpl{
		authorStore: authorStore,
		db:          db,
		logger:      logger.With("component", "author_service"),
		timeout:     defaultOpTimeout,
	}
	s.runTx = func(ctx context.Context, fn store.TxFn) error {
		return store.RunInTransaction(ctx, s.db, fn)
	}
	return s
}

// Create registers an author inside a transaction. The lookup and insert
// behind FindOrCreate see a consistent snapshot that way.
func (s *AuthorServiceImpl) Create(
	ctx context.Context,
	name string,
	birthdate domain.Date,
) (*domain.Author, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	author, err := domain.NewAuthor(name, birthdate)
	if err != nil {
		s.logger.Warn("invalid author payload", "error", err)
		return nil, E(FailureCreateAuthorFailed, "create author", err)
	}

	var created *domain.Author
	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var txErr error
		created, txErr = s.authorStore.WithTx(tx).FindOrCreate(ctx, author)
		return txErr
	})
	if err != nil {
		s.logger.Error("failed to create author", "error", err, "name", name)
		return nil, E(FailureCreateAuthorFailed, "create author", err)
	}

	s.logger.Info("author created", "author_id", created.ID)
	return created, nil
}

// Get retrieves an author by ID.
func (s *AuthorServiceImpl) Get(ctx context.Context, id int64) (*domain.Author, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	author, err := s.authorStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrAuthorNotFound) {
			s.logger.Debug("author not found", "author_id", id)
			return nil, E(FailureAuthorNotFound, "get author", err)
		}
		s.logger.Error("failed to retrieve author", "error", err, "author_id", id)
		return nil, E(FailureGetAuthorFailed, "get author", err)
	}

	return author, nil
}

// Update applies the patch inside a transaction so the read-modify-write
// cannot interleave with a concurrent update.
func (s *AuthorServiceImpl) Update(
	ctx context.Context,
	id int64,
	patch domain.AuthorPatch,
) (*domain.Author, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var updated *domain.Author
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.authorStore.WithTx(tx)

		author, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		// An empty patch changes nothing; return the current row untouched.
		if patch.IsEmpty() {
			updated = author
			return nil
		}

		patch.Apply(author)
		if err := txStore.Update(ctx, author); err != nil {
			return err
		}

		updated = author
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrAuthorNotFound) {
			s.logger.Debug("author not found for update", "author_id", id)
			return nil, E(FailureAuthorNotFound, "update author", err)
		}
		s.logger.Error("failed to update author", "error", err, "author_id", id)
		return nil, E(FailureUpdateAuthorFailed, "update author", err)
	}

	s.logger.Info("author updated", "author_id", id)
	return updated, nil
}

// Delete removes an author by ID.
func (s *AuthorServiceImpl) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.authorStore.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrAuthorNotFound) {
			s.logger.Debug("author not found for delete", "author_id", id)
			return E(FailureAuthorNotFound, "delete author", err)
		}
		s.logger.Error("failed to delete author", "error", err, "author_id", id)
		return E(FailureDeleteAuthorFailed, "delete author", err)
	}

	s.logger.Info("author deleted", "author_id", id)
	return nil
}

// List returns one page of authors per the given spec.
func (s *AuthorServiceImpl) List(
	ctx context.Context,
	spec store.PaginationSpec,
) (store.Page[domain.Author], error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	page, err := s.authorStore.List(ctx, spec)
	if err != nil {
		s.logger.Error("failed to list authors", "error", err)
		return store.Page[domain.Author]{}, E(FailureListAuthorsFailed, "list authors", err)
	}

	return page, nil
}
