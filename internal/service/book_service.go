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

// BookService provides book-related operations.
type BookService interface {
	// Create registers a book, or returns the existing row when a book
	// with the same title, publication year and author is already
	// registered.
	Create(ctx context.Context, title string, publicationYear int, authorID int64) (*domain.Book, error)

	// Get retrieves a book by ID.
	Get(ctx context.Context, id int64) (*domain.Book, error)

	// Update applies the patch to the book and returns the updated row.
	// An empty patch is a no-op that returns the current row.
	Update(ctx context.Context, id int64, patch domain.BookPatch) (*domain.Book, error)

	// Delete removes a book by ID.
	Delete(ctx context.Context, id int64) error

	// List returns one page of books per the given spec.
	List(ctx context.Context, spec store.PaginationSpec) (store.Page[domain.Book], error)
}

// BookServiceImpl implements the BookService interface
type BookServiceImpl struct {
	bookStore store.BookStore
	db        *sql.DB
	logger    *slog.Logger
	timeout   time.Duration

	// runTx wraps store.RunInTransaction; injectable so unit tests can
	// substitute a pass-through runner.
	runTx func(ctx context.Context, fn store.TxFn) error
}

// Ensure BookServiceImpl implements BookService interface
var _ BookService = (*BookServiceImpl)(nil)

// NewBookService creates a new BookService
func NewBookService(bookStore store.BookStore, db *sql.DB, logger *slog.Logger) *BookServiceImpl {
	s := &BookServiceImpl{
		bookStore: bookStore,
		db:        db,
		logger:    logger.With("component", "book_service"),
		timeout:   defaultOpTimeout,
	}
	s.runTx = func(ctx context.Context, fn store.TxFn) error {
		return store.RunInTransaction(ctx, s.db, fn)
	}
	return s
}

// Create registers a book inside a transaction.
func (s *BookServiceImpl) Create(
	ctx context.Context,
	title string,
	publicationYear int,
	authorID int64,
) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	book, err := domain.NewBook(title, publicationYear, authorID)
	if err != nil {
		s.logger.Warn("invalid book payload", "error", err)
		return nil, E(FailureCreateBookFailed, "create book", err)
	}

	var created *domain.Book
	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var txErr error
		created, txErr = s.bookStore.WithTx(tx).FindOrCreate(ctx, book)
		return txErr
	})
	if err != nil {
		s.logger.Error("failed to create book",
			"error", err,
			"title", title,
			"author_id", authorID)
		return nil, E(FailureCreateBookFailed, "create book", err)
	}

	s.logger.Info("book created", "book_id", created.ID)
	return created, nil
}

// Get retrieves a book by ID.
func (s *BookServiceImpl) Get(ctx context.Context, id int64) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	book, err := s.bookStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			s.logger.Debug("book not found", "book_id", id)
			return nil, E(FailureBookNotFound, "get book", err)
		}
		s.logger.Error("failed to retrieve book", "error", err, "book_id", id)
		return nil, E(FailureGetBookFailed, "get book", err)
	}

	return book, nil
}

// Update applies the patch inside a transaction so the read-modify-write
// cannot interleave with a concurrent update.
func (s *BookServiceImpl) Update(
	ctx context.Context,
	id int64,
	patch domain.BookPatch,
) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var updated *domain.Book
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.bookStore.WithTx(tx)

		book, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		// An empty patch changes nothing; return the current row untouched.
		if patch.IsEmpty() {
			updated = book
			return nil
		}

		patch.Apply(book)
		if err := txStore.Update(ctx, book); err != nil {
			return err
		}

		updated = book
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			s.logger.Debug("book not found for update", "book_id", id)
			return nil, E(FailureBookNotFound, "update book", err)
		}
		s.logger.Error("failed to update book", "error", err, "book_id", id)
		return nil, E(FailureUpdateBookFailed, "update book", err)
	}

	s.logger.Info("book updated", "book_id", id)
	return updated, nil
}

// Delete removes a book by ID.
func (s *BookServiceImpl) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.bookStore.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			s.logger.Debug("book not found for delete", "book_id", id)
			return E(FailureBookNotFound, "delete book", err)
		}
		s.logger.Error("failed to delete book", "error", err, "book_id", id)
		return E(FailureDeleteBookFailed, "delete book", err)
	}

	s.logger.Info("book deleted", "book_id", id)
	return nil
}

// List returns one page of books per the given spec.
func (s *BookServiceImpl) List(
	ctx context.Context,
	spec store.PaginationSpec,
) (store.Page[domain.Book], error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	page, err := s.bookStore.List(ctx, spec)
	if err != nil {
		s.logger.Error("failed to list books", "error", err)
		return store.Page[domain.Book]{}, E(FailureListBooksFailed, "list books", err)
	}

	return page, nil
}
