package repository

import "math"

// SortDirection is the ordering applied to the sort key.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// PageRequest is a zero-based page window plus an optional ordering.
// Stores expect a request that already passed service validation:
// PageIndex >= 0, PageSize >= 1, SortKey whitelisted, SortDirection asc|desc.
type PageRequest struct {
	PageIndex     int
	PageSize      int
	SortKey       string
	SortDirection SortDirection
}

// Offset is the number of matching items that precede the requested page.
// It saturates instead of overflowing so absurd page indexes simply land past the end.
func (p PageRequest) Offset() int {
	if p.PageIndex <= 0 || p.PageSize <= 0 {
		return 0
	}
	if p.PageIndex > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return p.PageIndex * p.PageSize
}

// Desc reports whether the request orders descending.
func (p PageRequest) Desc() bool { return p.SortDirection == SortDesc }

// PageResult carries one page of items and the totals of the whole filtered set.
// I return the totals so clients can compute pagination without an extra round trip.
type PageResult[T any] struct {
	Items       []T           `json:"items" yaml:"items"`
	PageIndex   int           `json:"page" yaml:"page"`
	PageSize    int           `json:"size" yaml:"size"`
	TotalItems  int           `json:"total_items" yaml:"total_items"`
	TotalPages  int           `json:"total_pages" yaml:"total_pages"`
	HasNext     bool          `json:"has_next" yaml:"has_next"`
	HasPrevious bool          `json:"has_previous" yaml:"has_previous"`
	SortKey     string        `json:"sort,omitempty" yaml:"sort,omitempty"`
	Direction   SortDirection `json:"direction,omitempty" yaml:"direction,omitempty"`
}

// TotalPages returns ceil(totalItems/pageSize), and 0 for an empty set.
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalItems-1)/pageSize + 1
}

// NewPageResult assembles page metadata around items fetched by a store.
// Items are never nil so the JSON shape stays stable for empty pages.
func NewPageResult[T any](items []T, p PageRequest, totalItems int) PageResult[T] {
	if items == nil {
		items = []T{}
	}
	pages := TotalPages(totalItems, p.PageSize)
	return PageResult[T]{
		Items:       items,
		PageIndex:   p.PageIndex,
		PageSize:    p.PageSize,
		TotalItems:  totalItems,
		TotalPages:  pages,
		HasNext:     p.PageIndex+1 < pages,
		HasPrevious: p.PageIndex > 0 && pages > 0,
		SortKey:     p.SortKey,
		Direction:   p.SortDirection,
	}
}

// Paginate cuts the requested page out of an already filtered and ordered set.
// The returned page is a copy, so callers never alias the source slice.
func Paginate[T any](ordered []T, p PageRequest) PageResult[T] {
	total := len(ordered)
	start := p.Offset()
	if start >= total {
		return NewPageResult[T](nil, p, total)
	}
	end := total
	if p.PageSize < total-start {
		end = start + p.PageSize
	}
	page := make([]T, end-start)
	copy(page, ordered[start:end])
	return NewPageResult(page, p, total)
}
