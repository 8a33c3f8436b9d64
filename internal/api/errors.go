package api

import (
	"net/http"

	"github.com/rmachado/library-api/internal/api/shared"
	"github.com/rmachado/library-api/internal/service"
)

// translation is one row of the error translator's dispatch table.
type translation struct {
	status  int
	message string
}

// unclassifiedTranslation is the fallback for errors that carry no known
// FailureKind. No detail about the cause reaches the client.
var unclassifiedTranslation = translation{
	status:  http.StatusInternalServerError,
	message: "An error occurred while processing your request",
}

// failureTable maps every service FailureKind to a fixed safe message and
// HTTP status. Missing rows map to NotFound→404, conflicts→409, bad
// credentials→401 and everything else→500.
var failureTable = map[service.FailureKind]translation{
	service.FailureAuthorNotFound: {http.StatusNotFound, "Author not found"},
	service.FailureBookNotFound:   {http.StatusNotFound, "Book not found"},
	service.FailureLoanNotFound:   {http.StatusNotFound, "Loan not found"},
	service.FailureUserNotFound:   {http.StatusNotFound, "User not found"},

	service.FailureGetAuthorFailed: {http.StatusInternalServerError, "Failed to retrieve author"},
	service.FailureGetBookFailed:   {http.StatusInternalServerError, "Failed to retrieve book"},
	service.FailureGetLoanFailed:   {http.StatusInternalServerError, "Failed to retrieve loan"},

	service.FailureCreateAuthorFailed: {http.StatusInternalServerError, "Failed to create author"},
	service.FailureUpdateAuthorFailed: {http.StatusInternalServerError, "Failed to update author"},
	service.FailureDeleteAuthorFailed: {http.StatusInternalServerError, "Failed to delete author"},
	service.FailureListAuthorsFailed:  {http.StatusInternalServerError, "Failed to list authors"},

	service.FailureCreateBookFailed: {http.StatusInternalServerError, "Failed to create book"},
	service.FailureUpdateBookFailed: {http.StatusInternalServerError, "Failed to update book"},
	service.FailureDeleteBookFailed: {http.StatusInternalServerError, "Failed to delete book"},
	service.FailureListBooksFailed:  {http.StatusInternalServerError, "Failed to list books"},

	service.FailureCreateLoanFailed: {http.StatusInternalServerError, "Failed to create loan"},
	service.FailureListLoansFailed:  {http.StatusInternalServerError, "Failed to list loans"},

	service.FailureUserAlreadyExists:  {http.StatusConflict, "User already exists"},
	service.FailureInvalidCredentials: {http.StatusUnauthorized, "Invalid credentials"},
	service.FailureCreateUserFailed:   {http.StatusInternalServerError, "Failed to create user"},
	service.FailureUpdateUserFailed:   {http.StatusInternalServerError, "Failed to update user"},
	service.FailureDeleteUserFailed:   {http.StatusInternalServerError, "Failed to delete user"},
	service.FailureGetUserFailed:      {http.StatusInternalServerError, "Failed to retrieve user"},
	service.FailureCreateTokenFailed:  {http.StatusInternalServerError, "Failed to create access token"},
	service.FailureSignoutFailed:      {http.StatusInternalServerError, "Failed to sign out"},
}

// TranslateError maps a service error to its HTTP status and safe message.
func TranslateError(err error) (int, string) {
	entry, ok := failureTable[service.KindOf(err)]
	if !ok {
		entry = unclassifiedTranslation
	}
	return entry.status, entry.message
}

// RespondWithServiceError translates the error and writes the envelope.
// Exactly one structured log record is emitted per translation.
func RespondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := TranslateError(err)
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
