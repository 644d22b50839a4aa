package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/product-catalog-service/internal/repository"
	"github.com/maxviazov/product-catalog-service/internal/service"
)

// pageQuery reads page, size and sort from the query string. Absent values
// take defaults; present but malformed values are reported, never coerced.
func pageQuery(c *gin.Context, defaultSize int) (repository.PageRequest, []service.FieldError) {
	var ferrs []service.FieldError
	p := repository.PageRequest{PageSize: defaultSize}

	if v, ok := c.GetQuery("page"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			ferrs = append(ferrs, service.FieldError{Field: "page", Message: "must be an integer"})
		}
		p.PageIndex = n
	}
	if v, ok := c.GetQuery("size"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			ferrs = append(ferrs, service.FieldError{Field: "size", Message: "must be an integer"})
		}
		p.PageSize = n
	}
	if v, ok := c.GetQuery("sort"); ok {
		key, dir, err := ParseSort(v)
		if err != nil {
			ferrs = append(ferrs, service.FieldError{Field: "sort", Message: err.Error()})
		}
		p.SortKey, p.SortDirection = key, dir
	}
	return p, ferrs
}

// ParseSort accepts "field", "field:dir" and the "field,dir" form Spring clients send.
// Direction is left empty when absent so the service applies its default.
func ParseSort(expr string) (string, repository.SortDirection, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", "", errEmptySort
	}
	key, rest, hasDir := strings.Cut(expr, ":")
	if !hasDir {
		key, rest, hasDir = strings.Cut(expr, ",")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", errEmptySort
	}
	if !hasDir {
		return key, "", nil
	}
	if strings.ContainsAny(rest, ":,") {
		return "", "", errSortFormat
	}
	dir := repository.SortDirection(strings.ToLower(strings.TrimSpace(rest)))
	if dir != repository.SortAsc && dir != repository.SortDesc {
		return "", "", errSortDirection
	}
	return key, dir, nil
}

type sortError string

func (e sortError) Error() string { return string(e) }

const (
	errEmptySort     sortError = "must not be empty"
	errSortFormat    sortError = "must be field or field:asc|desc"
	errSortDirection sortError = "direction must be asc or desc"
)

// int64Param parses a positive path or query id; 0 is returned on failure so the service reports it.
func int64Param(raw, field string) (int64, []service.FieldError) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, []service.FieldError{{Field: field, Message: "must be an integer"}}
	}
	return id, nil
}
