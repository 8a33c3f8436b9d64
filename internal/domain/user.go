package domain

import (
	"errors"
	"strings"
	"time"
)

// User validation errors
var (
	ErrEmptyEmail        = errors.New("email cannot be empty")
	ErrEmptyEmailDigest  = errors.New("email digest cannot be empty")
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong   = errors.New("password must be at most 50 characters long")
	ErrEmptyPassword     = errors.New("password cannot be empty")
	ErrUserNameTooShort  = errors.New("user name must be at least 3 characters long")
	ErrUserNameTooLong   = errors.New("user name must be at most 100 characters long")
)

// User represents a registered account. The plaintext email is never
// persisted: only its SHA-256 digest is stored, and credential lookups
// compare digests. Password and Email are transient fields populated
// during signup/signin and excluded from JSON.
type User struct {
	ID             int64     `json:"id"         db:"id"`
	Email          string    `json:"-"          db:"-"`
	EmailDigest    string    `json:"-"          db:"email_digest"`
	Password       string    `json:"-"          db:"-"`
	HashedPassword string    `json:"-"          db:"hashed_password"`
	Name           string    `json:"name"       db:"name"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// NewUser creates a new User with the given email, plaintext password and name.
// The caller is responsible for hashing the password and deriving the email
// digest before the user is stored.
func NewUser(email, password, name string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Email:     email,
		Password:  password,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.Email == "" && u.EmailDigest == "" {
		return ErrEmptyEmail
	}

	if u.Email != "" && !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.Password != "" {
		if len(u.Password) < 6 {
			return ErrPasswordTooShort
		}
		if len(u.Password) > 50 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Existing users loaded from the database carry only the hash.
		return ErrEmptyPassword
	}

	if len(u.Name) < 3 {
		return ErrUserNameTooShort
	}
	if len(u.Name) > 100 {
		return ErrUserNameTooLong
	}

	return nil
}

// validEmailFormat performs a light structural check: a local part, an @,
// and a domain containing an interior dot. Full RFC 5322 validation is the
// HTTP layer's job via validator tags.
func validEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
