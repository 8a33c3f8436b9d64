package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/rmachado/library-api/internal/domain"
	"github.com/rmachado/library-api/internal/platform/logger"
	"github.com/rmachado/library-api/internal/store"
)

// authorColumns are the selectable columns of the authors table, in scan order.
var authorColumns = []any{"id", "name", "birthdate", "created_at", "updated_at"}

// authorListColumns is the allow-list of sortable/filterable author columns.
var authorListColumns = map[string]bool{
	"name":      true,
	"birthdate": true,
}

// PostgresAuthorStore implements the store.AuthorStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAuthorStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAuthorStore creates a new PostgreSQL implementation of the
// AuthorStore interface. The connection (or transaction) is managed by the
// caller. If logger is nil, the default logger is used.
func NewPostgresAuthorStore(db store.DBTX, logger *slog.Logger) *PostgresAuthorStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAuthorStore{
		db:     db,
		logger: logger.With(slog.String("component", "author_store")),
	}
}

// Ensure PostgresAuthorStore implements store.AuthorStore interface
var _ store.AuthorStore = (*PostgresAuthorStore)(nil)

// WithTx implements store.AuthorStore.WithTx
func (s *PostgresAuthorStore) WithTx(tx *sql.Tx) store.AuthorStore {
	return &PostgresAuthorStore{db: tx, logger: s.logger}
}

// FindOrCreate implements store.AuthorStore.FindOrCreate
// Create is idempotent by natural key: a row matching name and birthdate
// jointly is returned as-is instead of inserting a duplicate.
func (s *PostgresAuthorStore) FindOrCreate(
	ctx context.Context,
	author *domain.Author,
) (*domain.Author, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := author.Validate(); err != nil {
		log.Warn("author validation failed during create",
			slog.String("error", err.Error()))
		return nil, err
	}

	existing := `
		SELECT id, name, birthdate, created_at, updated_at
		FROM authors
		WHERE name = $1 AND birthdate = $2
		LIMIT 1
	`
	var found domain.Author
	err := s.db.QueryRowContext(ctx, existing, author.Name, author.Birthdate).Scan(
		&found.ID,
		&found.Name,
		&found.Birthdate,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err == nil {
		log.Debug("author already exists, returning existing row",
			slog.Int64("author_id", found.ID))
		return &found, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Error("failed to look up author before insert",
			slog.String("error", err.Error()))
		return nil, err
	}

	insert := `
		INSERT INTO authors (name, birthdate, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err = s.db.QueryRowContext(
		ctx,
		insert,
		author.Name,
		author.Birthdate,
		author.CreatedAt,
		author.UpdatedAt,
	).Scan(&author.ID)
	if err != nil {
		log.Error("failed to create author",
			slog.String("error", err.Error()),
			slog.String("name", author.Name))
		return nil, err
	}

	log.Info("author created successfully", slog.Int64("author_id", author.ID))
	return author, nil
}

// GetByID implements store.AuthorStore.GetByID
// Returns store.ErrAuthorNotFound if the author does not exist.
func (s *PostgresAuthorStore) GetByID(ctx context.Context, id int64) (*domain.Author, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, birthdate, created_at, updated_at
		FROM authors
		WHERE id = $1
	`

	var author domain.Author
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&author.ID,
		&author.Name,
		&author.Birthdate,
		&author.CreatedAt,
		&author.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("author not found", slog.Int64("author_id", id))
			return nil, store.ErrAuthorNotFound
		}
		log.Error("failed to get author by ID",
			slog.String("error", err.Error()),
			slog.Int64("author_id", id))
		return nil, err
	}

	return &author, nil
}

// Update implements store.AuthorStore.Update
// Returns store.ErrAuthorNotFound if the author does not exist.
func (s *PostgresAuthorStore) Update(ctx context.Context, author *domain.Author) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := author.Validate(); err != nil {
		log.Warn("author validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("author_id", author.ID))
		return err
	}

	query := `
		UPDATE authors
		SET name = $1, birthdate = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		author.Name,
		author.Birthdate,
		author.UpdatedAt,
		author.ID,
	)
	if err != nil {
		log.Error("failed to update author",
			slog.String("error", err.Error()),
			slog.Int64("author_id", author.ID))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		log.Debug("author not found for update", slog.Int64("author_id", author.ID))
		return store.ErrAuthorNotFound
	}

	log.Info("author updated successfully", slog.Int64("author_id", author.ID))
	return nil
}

// Delete implements store.AuthorStore.Delete
// Returns store.ErrAuthorNotFound if the author does not exist and
// store.ErrForeignKey if books still reference it.
func (s *PostgresAuthorStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("author still referenced by books",
				slog.Int64("author_id", id))
			return store.ErrForeignKey
		}
		log.Error("failed to delete author",
			slog.String("error", err.Error()),
			slog.Int64("author_id", id))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		log.Debug("author not found for delete", slog.Int64("author_id", id))
		return store.ErrAuthorNotFound
	}

	log.Info("author deleted successfully", slog.Int64("author_id", id))
	return nil
}

// List implements store.AuthorStore.List
func (s *PostgresAuthorStore) List(
	ctx context.Context,
	spec store.PaginationSpec,
) (store.Page[domain.Author], error) {
	return listPage[domain.Author](ctx, s.db, "authors", authorColumns, authorListColumns, spec)
}
