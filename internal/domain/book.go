package domain

import (
	"errors"
	"time"
)

// Book validation errors
var (
	ErrEmptyBookTitle            = errors.New("book title cannot be empty")
	ErrBookTitleTooLong          = errors.New("book title must be at most 500 characters long")
	ErrInvalidPublicationYear    = errors.New("publication year must be a 4-digit year")
	ErrEmptyBookAuthor           = errors.New("book must reference an author")
)

// Book represents a single title in the library catalog.
// AuthorID references an existing Author row; the store enforces the
// foreign key and surfaces violations as create/update failures.
type Book struct {
	ID              int64     `json:"id"               db:"id"`
	Title           string    `json:"title"            db:"title"`
	PublicationYear int       `json:"publication_year" db:"publication_year"`
	AuthorID        int64     `json:"author_id"        db:"author_id"`
	CreatedAt       time.Time `json:"created_at"       db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"       db:"updated_at"`
}

// NewBook creates a new Book with the given title, publication year and author.
// Returns an error if validation fails.
func NewBook(title string, publicationYear int, authorID int64) (*Book, error) {
	now := time.Now().UTC()
	book := &Book{
		Title:           title,
		PublicationYear: publicationYear,
		AuthorID:        authorID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	return book, nil
}

// Validate checks if the Book has valid data.
func (b *Book) Validate() error {
	if b.Title == "" {
		return ErrEmptyBookTitle
	}
	if len(b.Title) > 500 {
		return ErrBookTitleTooLong
	}
	if b.PublicationYear < 1000 || b.PublicationYear > 9999 {
		return ErrInvalidPublicationYear
	}
	if b.AuthorID <= 0 {
		return ErrEmptyBookAuthor
	}
	return nil
}

// BookPatch carries an optional set of field changes for a partial update.
type BookPatch struct {
	Title           *string
	PublicationYear *int
	AuthorID        *int64
}

// IsEmpty reports whether the patch changes nothing.
func (p BookPatch) IsEmpty() bool {
	return p.Title == nil && p.PublicationYear == nil && p.AuthorID == nil
}

// Apply merges the patch into the book and refreshes UpdatedAt.
func (p BookPatch) Apply(b *Book) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.PublicationYear != nil {
		b.PublicationYear = *p.PublicationYear
	}
	if p.AuthorID != nil {
		b.AuthorID = *p.AuthorID
	}
	b.UpdatedAt = time.Now().UTC()
}
