package store

import "fmt"

// Sort directions accepted by PaginationSpec.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Pagination defaults.
const (
	DefaultPerPage = 10
	DefaultPage    = 1
)

// PaginationSpec describes a bounded, ordered, filtered list query. It is a
// value object shared by every entity's list operation; the engine validates
// OrderBy and filter keys against the entity's column allow-list before any
// SQL is built.
type PaginationSpec struct {
	// PerPage is the page size. Values below 1 fall back to DefaultPerPage.
	PerPage int

	// Page is the 1-based page number. Values below 1 fall back to DefaultPage.
	Page int

	// OrderBy optionally names the sort column. Empty means the entity's
	// primary key ascending, which keeps page contents deterministic.
	OrderBy string

	// OrderDirection is OrderAsc or OrderDesc; anything else is treated as
	// OrderAsc.
	OrderDirection string

	// Filters maps column names to substring match values. Each entry adds
	// a case-insensitive "column contains value" predicate; entries combine
	// with AND.
	Filters map[string]string
}

// Normalize returns a copy of the spec with defaults applied.
func (s PaginationSpec) Normalize() PaginationSpec {
	out := s
	if out.PerPage < 1 {
		out.PerPage = DefaultPerPage
	}
	if out.Page < 1 {
		out.Page = DefaultPage
	}
	if out.OrderDirection != OrderDesc {
		out.OrderDirection = OrderAsc
	}
	return out
}

// Offset returns the row offset implied by Page and PerPage.
func (s PaginationSpec) Offset() int {
	return (s.Page - 1) * s.PerPage
}

// ValidateColumns checks OrderBy and every filter key against the given
// allow-list. Returns ErrInvalidColumn naming the offending field if any
// column is not allow-listed.
func (s PaginationSpec) ValidateColumns(allowed map[string]bool) error {
	if s.OrderBy != "" && !allowed[s.OrderBy] {
		return fmt.Errorf("%w: order by %q", ErrInvalidColumn, s.OrderBy)
	}
	for field := range s.Filters {
		if !allowed[field] {
			return fmt.Errorf("%w: filter %q", ErrInvalidColumn, field)
		}
	}
	return nil
}

// Page is one page of list results plus the counts needed to render
// pagination controls. TotalItems is the number of rows matching the filter
// predicate across all pages.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalItems int64 `json:"total_items"`
	TotalPages int64 `json:"total_pages"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
}

// NewPage assembles a Page from the current slice and total row count,
// deriving TotalPages from the page size.
func NewPage[T any](items []T, total int64, spec PaginationSpec) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := total / int64(spec.PerPage)
	if total%int64(spec.PerPage) != 0 {
		totalPages++
	}
	return Page[T]{
		Items:      items,
		TotalItems: total,
		TotalPages: totalPages,
		Page:       spec.Page,
		PerPage:    spec.PerPage,
	}
}
