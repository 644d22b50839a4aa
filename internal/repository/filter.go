package repository

import (
	"slices"
	"strings"

	"github.com/maxviazov/product-catalog-service/internal/model"
)

// Sortable fields. Names double as SQL column and document field names,
// so stores may interpolate them only after checking membership here.
var (
	ProductSortFields  = []string{"id", "sku", "name", "unit_price", "units_in_stock", "date_created", "last_updated"}
	CategorySortFields = []string{"id", "category_name"}
	CountrySortFields  = []string{"id", "code", "name"}
	StateSortFields    = []string{"id", "name"}
)

// DefaultSortKey keeps listings deterministic when the caller has no preference.
const DefaultSortKey = "id"

// IsProductSortField reports whether key can order a product listing.
func IsProductSortField(key string) bool { return slices.Contains(ProductSortFields, key) }

// IsCategorySortField reports whether key can order a category listing.
func IsCategorySortField(key string) bool { return slices.Contains(CategorySortFields, key) }

// ProductFilter is the explicit selection criterion for product listings.
// Zero-valued fields do not constrain the result.
type ProductFilter struct {
	CategoryID   *int64
	NameContains string
}

// ByCategory selects products whose CategoryID equals id.
func ByCategory(id int64) ProductFilter { return ProductFilter{CategoryID: &id} }

// ByNameContaining selects products whose name contains keyword, ignoring case.
func ByNameContaining(keyword string) ProductFilter { return ProductFilter{NameContains: keyword} }

// Matches evaluates the filter against a single product.
func (f ProductFilter) Matches(p model.Product) bool {
	if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
		return false
	}
	if f.NameContains != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.NameContains)) {
		return false
	}
	return true
}

// LikePattern renders NameContains as a LIKE pattern with wildcards escaped using '\'.
func (f ProductFilter) LikePattern() string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(r.Replace(f.NameContains)) + "%"
}
