package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/rmachado/library-api/internal/domain"
	"github.com/rmachado/library-api/internal/service/auth"
	"github.com/rmachado/library-api/internal/store"
)

// UserService provides account and session operations.
type UserService interface {
	// SignUp registers a new user with a bcrypt-hashed password. Only the
	// SHA-256 digest of the email is stored.
	SignUp(ctx context.Context, email, password, name string) (*domain.User, error)

	// SignIn verifies the credentials and returns a signed JWT access token.
	SignIn(ctx context.Context, email, password string) (string, error)

	// SignOut revokes the presented token until its natural expiry.
	SignOut(ctx context.Context, claims *auth.Claims) error

	// GetUser retrieves a user by their ID.
	GetUser(ctx context.Context, userID int64) (*domain.User, error)

	// UpdateUserName changes the user's display name and returns the
	// updated user.
	UpdateUserName(ctx context.Context, userID int64, name string) (*domain.User, error)

	// DeleteUser re-verifies the current password and then deletes the user.
	DeleteUser(ctx context.Context, userID int64, password string) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore  store.UserStore
	jwtService auth.JWTService
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
	denylist   auth.TokenDenylist
	db         *sql.DB
	logger     *slog.Logger
	timeout    time.Duration

	// runTx wraps store.RunInTransaction; injectable so unit tests can
	// substitute a pass-through runner.
	runTx func(ctx context.Context, fn store.TxFn) error
}

// Ensure UserServiceImpl implements UserService interface
var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	denylist auth.TokenDenylist,
	db *sql.DB,
	logger *slog.Logger,
) *UserServiceImpl {
	s := &UserServiceImpl{
		userStore:  userStore,
		jwtService: jwtService,
		hasher:     hasher,
		verifier:   verifier,
		denylist:   denylist,
		db:         db,
		logger:     logger.With("component", "user_service"),
		timeout:    defaultOpTimeout,
	}
	s.runTx = func(ctx context.Context, fn store.TxFn) error {
		return store.RunInTransaction(ctx, s.db, fn)
	}
	return s
}

// SignUp registers a new user. The plaintext password and email never reach
// the store: the password is bcrypt-hashed and the email reduced to its
// SHA-256 digest before the insert.
func (s *UserServiceImpl) SignUp(
	ctx context.Context,
	email, password, name string,
) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := domain.NewUser(email, password, name)
	if err != nil {
		s.logger.Warn("invalid signup payload", "error", err)
		return nil, E(FailureCreateUserFailed, "sign up", err)
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, E(FailureCreateUserFailed, "sign up", err)
	}
	user.HashedPassword = hashed
	user.EmailDigest = auth.EmailDigest(user.Email)
	user.Password = ""

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("signup with already-registered email")
			return nil, E(FailureUserAlreadyExists, "sign up", err)
		}
		s.logger.Error("failed to create user", "error", err)
		return nil, E(FailureCreateUserFailed, "sign up", err)
	}

	s.logger.Info("user signed up", "user_id", user.ID)
	return user, nil
}

// SignIn verifies the credentials and mints a JWT access token. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *UserServiceImpl) SignIn(ctx context.Context, email, password string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.userStore.GetByEmailDigest(ctx, auth.EmailDigest(email))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("signin with unknown email")
			return "", E(FailureInvalidCredentials, "sign in", err)
		}
		s.logger.Error("failed to look up user for signin", "error", err)
		return "", E(FailureGetUserFailed, "sign in", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("signin with wrong password", "user_id", user.ID)
		return "", E(FailureInvalidCredentials, "sign in", err)
	}

	token, err := s.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		s.logger.Error("failed to mint access token", "error", err, "user_id", user.ID)
		return "", E(FailureCreateTokenFailed, "sign in", err)
	}

	s.logger.Info("user signed in", "user_id", user.ID)
	return token, nil
}

// SignOut places the token's ID on the denylist until the token expires.
func (s *UserServiceImpl) SignOut(ctx context.Context, claims *auth.Claims) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt); err != nil {
		s.logger.Error("failed to revoke token",
			"error", err,
			"user_id", claims.UserID,
			"token_id", claims.ID)
		return E(FailureSignoutFailed, "sign out", err)
	}

	s.logger.Info("user signed out", "user_id", claims.UserID)
	return nil
}

// GetUser retrieves a user by their ID.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found", "user_id", userID)
			return nil, E(FailureUserNotFound, "get user", err)
		}
		s.logger.Error("failed to retrieve user", "error", err, "user_id", userID)
		return nil, E(FailureGetUserFailed, "get user", err)
	}

	return user, nil
}

// UpdateUserName changes the user's display name inside a transaction and
// returns the updated user.
func (s *UserServiceImpl) UpdateUserName(
	ctx context.Context,
	userID int64,
	name string,
) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var updated *domain.User
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		if err := txStore.UpdateName(ctx, userID, name); err != nil {
			return err
		}

		var err error
		updated, err = txStore.GetByID(ctx, userID)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found for name update", "user_id", userID)
			return nil, E(FailureUserNotFound, "update user name", err)
		}
		s.logger.Error("failed to update user name", "error", err, "user_id", userID)
		return nil, E(FailureUpdateUserFailed, "update user name", err)
	}

	s.logger.Info("user name updated", "user_id", userID)
	return updated, nil
}

// DeleteUser re-verifies the current password before deleting the account.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID int64, password string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
			return E(FailureInvalidCredentials, "delete user", err)
		}

		return txStore.Delete(ctx, userID)
	})
	if err != nil {
		var svcErr *Error
		if errors.As(err, &svcErr) {
			s.logger.Debug("delete rejected: wrong password", "user_id", userID)
			return svcErr
		}
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found for delete", "user_id", userID)
			return E(FailureUserNotFound, "delete user", err)
		}
		s.logger.Error("failed to delete user", "error", err, "user_id", userID)
		return E(FailureDeleteUserFailed, "delete user", err)
	}

	s.logger.Info("user deleted", "user_id", userID)
	return nil
}
