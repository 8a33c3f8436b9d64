package api

import (
	"net/http"

	"github.com/rmachado/library-api/internal/api/shared"
	"github.com/rmachado/library-api/internal/domain"
	"github.com/rmachado/library-api/internal/service"
)

// AuthorHandler handles author CRUD requests.
type AuthorHandler struct {
	authorService service.AuthorService
}

// NewAuthorHandler creates a new AuthorHandler with the given dependencies.
func NewAuthorHandler(authorService service.AuthorService) *AuthorHandler {
	return &AuthorHandler{authorService: authorService}
}

// Create handles POST /createAuthor.
func (h *AuthorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAuthorRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	birthdate, ok := parseDateField(w, r, "birthdate", req.Birthdate)
	if !ok {
		return
	}

	author, err := h.authorService.Create(r.Context(), req.Name, birthdate)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, author)
}

// List handles GET /getAuthors.
func (h *AuthorHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.authorService.List(r.Context(), ParsePaginationSpec(r))
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, page)
}

// Update handles PUT /updateAuthor.
func (h *AuthorHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateAuthorRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	patch := domain.AuthorPatch{Name: req.Name}
	if req.Birthdate != nil {
		birthdate, ok := parseDateField(w, r, "birthdate", *req.Birthdate)
		if !ok {
			return
		}
		patch.Birthdate = &birthdate
	}

	author, err := h.authorService.Update(r.Context(), req.ID, patch)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, author)
}

// Delete handles DELETE /deleteAuthor.
func (h *AuthorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteAuthorRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.authorService.Delete(r.Context(), req.ID); err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Author deleted successfully")
}
