package pagination

import (
	"net/url"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is the page request taken from the page and limit query parameters.
type Params struct {
	Page  int
	Limit int
}

// FromQuery parses page/limit, falling back to defaults on missing or invalid input.
func FromQuery(q url.Values) Params {
	p := Params{Page: DefaultPage, Limit: DefaultLimit}

	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Page = n
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Limit = n
		}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination block the client renders its controls from.
type Meta struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

func NewMeta(p Params, total int64) Meta {
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Meta{
		CurrentPage:  p.Page,
		TotalPages:   pages,
		TotalItems:   total,
		ItemsPerPage: p.Limit,
	}
}

// HasPrevious is false on the first page.
func (m Meta) HasPrevious() bool {
	return m.CurrentPage > 1
}

// HasNext is false on (or past) the last page.
func (m Meta) HasNext() bool {
	return m.CurrentPage < m.TotalPages
}

// Range returns the 1-based bounds of the visible rows: (page-1)*limit+1 .. min(page*limit, total).
// An empty page yields 0, 0.
func (m Meta) Range() (from, to int64) {
	if m.TotalItems == 0 || m.ItemsPerPage <= 0 {
		return 0, 0
	}
	from = int64(m.CurrentPage-1)*int64(m.ItemsPerPage) + 1
	to = int64(m.CurrentPage) * int64(m.ItemsPerPage)
	if to > m.TotalItems {
		to = m.TotalItems
	}
	if from > to {
		return 0, 0
	}
	return from, to
}

// Page is the list envelope returned by every paginated endpoint.
type Page[T any] struct {
	Data       []T  `json:"data"`
	Pagination Meta `json:"pagination"`
}

func NewPage[T any](items []T, p Params, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Data: items, Pagination: NewMeta(p, total)}
}
