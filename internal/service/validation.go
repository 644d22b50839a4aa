package service

import (
	"fmt"
	"slices"
	"strings"

	"github.com/maxviazov/product-catalog-service/internal/repository"
)

// Paging holds the listing defaults and limits every paged use case applies.
type Paging struct {
	DefaultPageSize  int
	MaxPageSize      int
	DefaultSort      string
	DefaultDirection repository.SortDirection
}

// DefaultPaging matches the config defaults.
func DefaultPaging() Paging {
	return Paging{DefaultPageSize: 20, MaxPageSize: 1000, DefaultSort: repository.DefaultSortKey, DefaultDirection: repository.SortAsc}
}

// checkPage validates p against fields and fills in the default ordering.
// Sizes are never clamped: an out-of-range value is reported, not corrected.
func (g Paging) checkPage(p repository.PageRequest, fields []string) (repository.PageRequest, []FieldError) {
	var ferrs []FieldError
	if p.PageIndex < 0 {
		ferrs = append(ferrs, FieldError{Field: "page", Message: "must be >= 0"})
	}
	if p.PageSize < 1 || p.PageSize > g.MaxPageSize {
		ferrs = append(ferrs, FieldError{Field: "size", Message: fmt.Sprintf("must be between 1 and %d", g.MaxPageSize)})
	}

	key := strings.TrimSpace(p.SortKey)
	dir := repository.SortDirection(strings.ToLower(strings.TrimSpace(string(p.SortDirection))))
	if key == "" {
		key = g.DefaultSort
		if !slices.Contains(fields, key) {
			key = repository.DefaultSortKey
		}
		if dir == "" {
			dir = g.DefaultDirection
		}
	} else if !slices.Contains(fields, key) {
		ferrs = append(ferrs, FieldError{Field: "sort", Message: "must be one of " + strings.Join(fields, ", ")})
	}
	switch dir {
	case "":
		dir = repository.SortAsc
	case repository.SortAsc, repository.SortDesc:
	default:
		ferrs = append(ferrs, FieldError{Field: "direction", Message: "must be asc or desc"})
	}

	return repository.PageRequest{PageIndex: p.PageIndex, PageSize: p.PageSize, SortKey: key, SortDirection: dir}, ferrs
}

func checkID(field string, id int64) []FieldError {
	if id <= 0 {
		return []FieldError{{Field: field, Message: "must be > 0"}}
	}
	return nil
}
