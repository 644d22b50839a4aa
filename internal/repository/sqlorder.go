package repository

import (
	"slices"
	"strings"
)

// SQLOrderBy renders an ORDER BY body for p with id as the tie-breaker.
// Keys outside fields fall back to DefaultSortKey, so the result is always safe to interpolate.
func SQLOrderBy(p PageRequest, fields []string) string {
	return SQLOrderByQualified(p, fields, "")
}

// SQLOrderByQualified is SQLOrderBy with every column prefixed by a table alias, for joins.
func SQLOrderByQualified(p PageRequest, fields []string, alias string) string {
	key := p.SortKey
	if !slices.Contains(fields, key) {
		key = DefaultSortKey
	}
	dir := "ASC"
	if p.Desc() {
		dir = "DESC"
	}
	col := func(name string) string {
		if alias == "" {
			return name
		}
		return alias + "." + name
	}
	var b strings.Builder
	b.WriteString(col(key) + " " + dir)
	if key != DefaultSortKey {
		b.WriteString(", " + col(DefaultSortKey) + " " + dir)
	}
	return b.String()
}
