package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rmachado/library-api/internal/api/shared"
	"github.com/rmachado/library-api/internal/domain"
	"github.com/rmachado/library-api/internal/store"
)

// Query parameters reserved by the pagination engine; everything else on a
// list route is treated as a filter.
var reservedListParams = map[string]bool{
	"perPage":        true,
	"page":           true,
	"orderBy":        true,
	"orderDirection": true,
}

// ParsePaginationSpec builds a PaginationSpec from a list route's query
// string. Missing or malformed numbers fall back to the defaults; unknown
// parameters become substring filters, validated against the entity
// allow-list by the store.
func ParsePaginationSpec(r *http.Request) store.PaginationSpec {
	query := r.URL.Query()

	spec := store.PaginationSpec{
		OrderBy: query.Get("orderBy"),
	}

	if perPage, err := strconv.Atoi(query.Get("perPage")); err == nil {
		spec.PerPage = perPage
	}
	if page, err := strconv.Atoi(query.Get("page")); err == nil {
		spec.Page = page
	}
	if strings.EqualFold(query.Get("orderDirection"), string(store.OrderDesc)) {
		spec.OrderDirection = store.OrderDesc
	}

	for param, values := range query {
		if reservedListParams[param] || len(values) == 0 || values[0] == "" {
			continue
		}
		if spec.Filters == nil {
			spec.Filters = make(map[string]string)
		}
		spec.Filters[param] = values[0]
	}

	return spec.Normalize()
}

// decodeAndValidate decodes the JSON body into req and validates it,
// writing the error response itself on failure. Returns false when the
// handler should stop.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format", nil)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error", validationDetail(err))
		return false
	}
	return true
}

// parseDateField parses a YYYY-MM-DD request field, writing the error
// response itself on failure.
func parseDateField(w http.ResponseWriter, r *http.Request, field, value string) (domain.Date, bool) {
	date, err := domain.ParseDate(value)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error",
			map[string]string{field: "must be a date in YYYY-MM-DD format"})
		return domain.Date{}, false
	}
	return date, true
}

// validationDetail reduces a validator error to a field→message map safe to
// return to the client.
func validationDetail(err error) map[string]string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return nil
	}

	detail := make(map[string]string, len(fieldErrors))
	for _, fieldErr := range fieldErrors {
		detail[strings.ToLower(fieldErr.Field())] = validationTagMessage(fieldErr.Tag())
	}
	return detail
}

// validationTagMessage maps validation tags to user-friendly error messages
func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gt":
		return "must be positive"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
