package domain

import (
	"errors"
	"time"
)

// Author validation errors
var (
	ErrAuthorNameTooShort = errors.New("author name must be at least 3 characters long")
	ErrAuthorNameTooLong  = errors.New("author name must be at most 100 characters long")
	ErrEmptyBirthdate     = errors.New("author birthdate cannot be empty")
)

// Author represents a writer whose books the library manages.
// The ID is assigned by the database on first insert.
type Author struct {
	ID        int64     `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	Birthdate Date      `json:"birthdate"  db:"birthdate"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewAuthor creates a new Author with the given name and birthdate.
// The ID is left zero until the store assigns one.
// Returns an error if validation fails.
func NewAuthor(name string, birthdate Date) (*Author, error) {
	now := time.Now().UTC()
	author := &Author{
		Name:      name,
		Birthdate: birthdate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := author.Validate(); err != nil {
		return nil, err
	}

	return author, nil
}

// Validate checks if the Author has valid data.
// Returns an error if any field fails validation.
func (a *Author) Validate() error {
	if len(a.Name) < 3 {
		return ErrAuthorNameTooShort
	}
	if len(a.Name) > 100 {
		return ErrAuthorNameTooLong
	}
	if a.Birthdate.IsZero() {
		return ErrEmptyBirthdate
	}
	return nil
}

// AuthorPatch carries an optional set of field changes for a partial update.
// Nil fields are left untouched.
type AuthorPatch struct {
	Name      *string
	Birthdate *Date
}

// IsEmpty reports whether the patch changes nothing.
func (p AuthorPatch) IsEmpty() bool {
	return p.Name == nil && p.Birthdate == nil
}

// Apply merges the patch into the author and refreshes UpdatedAt.
func (p AuthorPatch) Apply(a *Author) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Birthdate != nil {
		a.Birthdate = *p.Birthdate
	}
	a.UpdatedAt = time.Now().UTC()
}
