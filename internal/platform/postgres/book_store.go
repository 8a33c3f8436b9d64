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

var bookColumns = []any{"id", "title", "publication_year", "author_id", "created_at", "updated_at"}

// bookListColumns is the allow-list of sortable/filterable book columns.
var bookListColumns = map[string]bool{
	"title":            true,
	"publication_year": true,
	"author_id":        true,
}

// PostgresBookStore implements the store.BookStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBookStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBookStore creates a new PostgreSQL implementation of the
// BookStore interface.
func NewPostgresBookStore(db store.DBTX, logger *slog.Logger) *PostgresBookStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBookStore{
		db:     db,
		logger: logger.With(slog.String("component", "book_store")),
	}
}

// Ensure PostgresBookStore implements store.BookStore interface
var _ store.BookStore = (*PostgresBookStore)(nil)

// WithTx implements store.BookStore.WithTx
func (s *PostgresBookStore) WithTx(tx *sql.Tx) store.BookStore {
	return &PostgresBookStore{db: tx, logger: s.logger}
}

// FindOrCreate implements store.BookStore.FindOrCreate
// Returns store.ErrForeignKey wrapped with the author ID if the referenced
// author does not exist.
func (s *PostgresBookStore) FindOrCreate(
	ctx context.Context,
	book *domain.Book,
) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		log.Warn("book validation failed during create",
			slog.String("error", err.Error()))
		return nil, err
	}

	existing := `
		SELECT id, title, publication_year, author_id, created_at, updated_at
		FROM books
		WHERE title = $1 AND publication_year = $2 AND author_id = $3
		LIMIT 1
	`
	var found domain.Book
	err := s.db.QueryRowContext(ctx, existing, book.Title, book.PublicationYear, book.AuthorID).Scan(
		&found.ID,
		&found.Title,
		&found.PublicationYear,
		&found.AuthorID,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err == nil {
		log.Debug("book already exists, returning existing row",
			slog.Int64("book_id", found.ID))
		return &found, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Error("failed to look up book before insert",
			slog.String("error", err.Error()))
		return nil, err
	}

	insert := `
		INSERT INTO books (title, publication_year, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err = s.db.QueryRowContext(
		ctx,
		insert,
		book.Title,
		book.PublicationYear,
		book.AuthorID,
		book.CreatedAt,
		book.UpdatedAt,
	).Scan(&book.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during book creation",
				slog.Int64("author_id", book.AuthorID))
			return nil, fmt.Errorf("%w: author %d", store.ErrForeignKey, book.AuthorID)
		}
		log.Error("failed to create book",
			slog.String("error", err.Error()),
			slog.String("title", book.Title))
		return nil, err
	}

	log.Info("book created successfully",
		slog.Int64("book_id", book.ID),
		slog.Int64("author_id", book.AuthorID))
	return book, nil
}

// GetByID implements store.BookStore.GetByID
// Returns store.ErrBookNotFound if the book does not exist.
func (s *PostgresBookStore) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, publication_year, author_id, created_at, updated_at
		FROM books
		WHERE id = $1
	`

	var book domain.Book
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.PublicationYear,
		&book.AuthorID,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("book not found", slog.Int64("book_id", id))
			return nil, store.ErrBookNotFound
		}
		log.Error("failed to get book by ID",
			slog.String("error", err.Error()),
			slog.Int64("book_id", id))
		return nil, err
	}

	return &book, nil
}

// Update implements store.BookStore.Update
// Returns store.ErrBookNotFound if the book does not exist.
func (s *PostgresBookStore) Update(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		log.Warn("book validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("book_id", book.ID))
		return err
	}

	query := `
		UPDATE books
		SET title = $1, publication_year = $2, author_id = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		book.Title,
		book.PublicationYear,
		book.AuthorID,
		book.UpdatedAt,
		book.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: author %d", store.ErrForeignKey, book.AuthorID)
		}
		log.Error("failed to update book",
			slog.String("error", err.Error()),
			slog.Int64("book_id", book.ID))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		log.Debug("book not found for update", slog.Int64("book_id", book.ID))
		return store.ErrBookNotFound
	}

	log.Info("book updated successfully", slog.Int64("book_id", book.ID))
	return nil
}

// Delete implements store.BookStore.Delete
// Returns store.ErrBookNotFound if the book does not exist and
// store.ErrForeignKey if loans still reference it.
func (s *PostgresBookStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("book still referenced by loans", slog.Int64("book_id", id))
			return store.ErrForeignKey
		}
		log.Error("failed to delete book",
			slog.String("error", err.Error()),
			slog.Int64("book_id", id))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		log.Debug("book not found for delete", slog.Int64("book_id", id))
		return store.ErrBookNotFound
	}

	log.Info("book deleted successfully", slog.Int64("book_id", id))
	return nil
}

// List implements store.BookStore.List
func (s *PostgresBookStore) List(
	ctx context.Context,
	spec store.PaginationSpec,
) (store.Page[domain.Book], error) {
	return listPage[domain.Book](ctx, s.db, "books", bookColumns, bookListColumns, spec)
}
