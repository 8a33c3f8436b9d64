package domain

import (
	"errors"
	"time"
)

// Loan validation errors
var (
	ErrEmptyLoanUser   = errors.New("loan must reference a user")
	ErrEmptyLoanBook   = errors.New("loan must reference a book")
	ErrEmptyLoanDate   = errors.New("loan date cannot be empty")
	ErrEmptyReturnDate = errors.New("return date cannot be empty")
)

// Loan records a book being lent to a user. Loans are append-only: there is
// no update or delete use case. UserID always comes from the authenticated
// caller, never from the request body.
//
// No ordering is enforced between LoanDate and ReturnDate; backwards ranges
// are accepted.
type Loan struct {
	ID         int64     `json:"id"          db:"id"`
	UserID     int64     `json:"user_id"     db:"user_id"`
	BookID     int64     `json:"book_id"     db:"book_id"`
	LoanDate   Date      `json:"loan_date"   db:"loan_date"`
	ReturnDate Date      `json:"return_date" db:"return_date"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"  db:"updated_at"`
}

// NewLoan creates a new Loan for the given user and book.
// Returns an error if validation fails.
func NewLoan(userID, bookID int64, loanDate, returnDate Date) (*Loan, error) {
	now := time.Now().UTC()
	loan := &Loan{
		UserID:     userID,
		BookID:     bookID,
		LoanDate:   loanDate,
		ReturnDate: returnDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := loan.Validate(); err != nil {
		return nil, err
	}

	return loan, nil
}

// Validate checks if the Loan has valid data.
func (l *Loan) Validate() error {
	if l.UserID <= 0 {
		return ErrEmptyLoanUser
	}
	if l.BookID <= 0 {
		return ErrEmptyLoanBook
	}
	if l.LoanDate.IsZero() {
		return ErrEmptyLoanDate
	}
	if l.ReturnDate.IsZero() {
		return ErrEmptyReturnDate
	}
	return nil
}
