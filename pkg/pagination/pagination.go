package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultPerPage is the page size when the request names none.
	DefaultPerPage = 10
	// MaxPerPage caps the page size a client may ask for.
	MaxPerPage = 100
)

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// DefaultParams returns the first page at the default size.
func DefaultParams() Params {
	return Params{Page: 1, PerPage: DefaultPerPage}
}

// FromRequest extracts ?page= and ?per_page= from an HTTP request. Values
// that are missing, malformed or out of range fall back to the defaults.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()
	q := r.URL.Query()

	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("per_page")); err == nil && v > 0 && v <= MaxPerPage {
		p.PerPage = v
	}
	return p
}

// Offset returns the index of the first item on the page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Result wraps one page of an in-memory list.
type Result[T any] struct {
	Items      []T  `json:"items"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Paginate cuts the requested page out of all. A page past the end is empty,
// never nil.
func Paginate[T any](all []T, params Params) Result[T] {
	total := len(all)
	totalPages := total / params.PerPage
	if total%params.PerPage > 0 {
		totalPages++
	}

	start := min(params.Offset(), total)
	end := min(start+params.PerPage, total)
	items := make([]T, end-start)
	copy(items, all[start:end])

	return Result[T]{
		Items:      items,
		TotalCount: total,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}
