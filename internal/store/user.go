package store

import (
	"context"
	"database/sql"

	"github.com/rmachado/library-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user. The caller must have set EmailDigest and
	// HashedPassword; plaintext credentials are never stored.
	// Returns ErrEmailExists if the email digest is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmailDigest retrieves a user by the SHA-256 digest of their email.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmailDigest(ctx context.Context, digest string) (*domain.User, error)

	// UpdateName changes the user's display name.
	// Returns ErrUserNotFound if the user does not exist.
	UpdateName(ctx context.Context, id int64, name string) error

	// Delete removes a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a UserStore bound to the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
