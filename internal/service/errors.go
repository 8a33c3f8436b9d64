// Package service provides application-level services for managing authors,
// books, loans, and users.
package service

import (
	"errors"
	"fmt"
)

// FailureKind classifies a service failure for the API layer. The set is
// closed: every service error carries exactly one kind, and the API layer
// maps each kind to a response message and HTTP status code.
//
// Error handling principles:
//  1. Service methods wrap every failure in *Error with the operation's kind.
//  2. Expected conditions (missing rows, duplicate signups, bad credentials)
//     get their own kind; everything else falls under the operation's
//     generic Failed kind.
//  3. Callers use KindOf or errors.As to classify, and errors.Is to reach
//     the underlying store or domain sentinel when needed.
type FailureKind string

const (
	// FailureUnclassified is the fallback for errors that did not come out
	// of a service operation.
	FailureUnclassified FailureKind = "unclassified"

	FailureAuthorNotFound FailureKind = "author_not_found"
	FailureBookNotFound   FailureKind = "book_not_found"
	FailureLoanNotFound   FailureKind = "loan_not_found"
	FailureUserNotFound   FailureKind = "user_not_found"

	FailureGetAuthorFailed FailureKind = "get_author_failed"
	FailureGetBookFailed   FailureKind = "get_book_failed"
	FailureGetLoanFailed   FailureKind = "get_loan_failed"

	FailureCreateAuthorFailed FailureKind = "create_author_failed"
	FailureUpdateAuthorFailed FailureKind = "update_author_failed"
	FailureDeleteAuthorFailed FailureKind = "delete_author_failed"
	FailureListAuthorsFailed  FailureKind = "list_authors_failed"

	FailureCreateBookFailed FailureKind = "create_book_failed"
	FailureUpdateBookFailed FailureKind = "update_book_failed"
	FailureDeleteBookFailed FailureKind = "delete_book_failed"
	FailureListBooksFailed  FailureKind = "list_books_failed"

	FailureCreateLoanFailed FailureKind = "create_loan_failed"
	FailureListLoansFailed  FailureKind = "list_loans_failed"

	FailureUserAlreadyExists  FailureKind = "user_already_exists"
	FailureInvalidCredentials FailureKind = "invalid_credentials"
	FailureCreateUserFailed   FailureKind = "create_user_failed"
	FailureUpdateUserFailed   FailureKind = "update_user_failed"
	FailureDeleteUserFailed   FailureKind = "delete_user_failed"
	FailureGetUserFailed      FailureKind = "get_user_failed"
	FailureCreateTokenFailed  FailureKind = "create_token_failed"
	FailureSignoutFailed      FailureKind = "signout_failed"
)

// Error is the failure type returned by every service operation. Kind drives
// the API layer's status code and safe message; Err preserves the cause for
// logging and errors.Is checks.
type Error struct {
	Kind FailureKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E wraps err as a service Error with the given kind and operation name.
func E(kind FailureKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf extracts the FailureKind from err, or FailureUnclassified when err
// did not come out of a service operation.
func KindOf(err error) FailureKind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return FailureUnclassified
}
