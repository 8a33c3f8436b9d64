package api

import (
	"net/http"

	"github.com/rmachado/library-api/internal/api/shared"
	"github.com/rmachado/library-api/internal/service"
)

// LoanHandler handles loan requests. Loans are append-only.
type LoanHandler struct {
	loanService service.LoanService
}

// NewLoanHandler creates a new LoanHandler with the given dependencies.
func NewLoanHandler(loanService service.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// Create handles POST /createLoan. The borrowing user is always the
// authenticated caller, never a field of the request body.
func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req CreateLoanRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	loanDate, ok := parseDateField(w, r, "loan_date", req.LoanDate)
	if !ok {
		return
	}
	returnDate, ok := parseDateField(w, r, "return_date", req.ReturnDate)
	if !ok {
		return
	}

	loan, err := h.loanService.Create(r.Context(), userID, req.BookID, loanDate, returnDate)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, loan)
}

// List handles GET /getLoans.
func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.loanService.List(r.Context(), ParsePaginationSpec(r))
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, page)
}
