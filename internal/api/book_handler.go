package api

import (
	"net/http"

	"github.com/rmachado/library-api/internal/api/shared"
	"github.com/rmachado/library-api/internal/domain"
	"github.com/rmachado/library-api/internal/service"
)

// BookHandler handles book CRUD requests.
type BookHandler struct {
	bookService service.BookService
}

// NewBookHandler creates a new BookHandler with the given dependencies.
func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// Create handles POST /createBook.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	book, err := h.bookService.Create(r.Context(), req.Title, req.PublicationYear, req.AuthorID)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, book)
}

// List handles GET /getBooks.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.bookService.List(r.Context(), ParsePaginationSpec(r))
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, page)
}

// Update handles PUT /updateBook.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateBookRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	patch := domain.BookPatch{
		Title:           req.Title,
		PublicationYear: &req.PublicationYear,
		AuthorID:        req.AuthorID,
	}

	book, err := h.bookService.Update(r.Context(), req.ID, patch)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, book)
}

// Delete handles DELETE /deleteBook.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteBookRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.bookService.Delete(r.Context(), req.ID); err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Book deleted successfully")
}
