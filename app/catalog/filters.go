package catalog

import (
	"strings"

	"github.com/mytheresa/go-inventory/models"
)

// ApplyFilters derives the displayed product set. Each filter is an
// independent predicate, so their order does not change the result:
//   - name contains Search, case-insensitive (empty Search keeps everything,
//     nameless products never match a non-empty Search);
//   - category_id equals the id of the selected category name, unless the
//     selection is "All"; a name that does not resolve yields an empty set;
//   - price <= MaxPrice.
func ApplyFilters(products []models.Product, f models.ProductFilters, lookup models.CategoryLookup) []models.Product {
	derived := make([]models.Product, 0, len(products))

	var categoryID uint
	filterCategory := f.Category != "" && f.Category != models.AllCategories
	if filterCategory {
		id, ok := lookup.IDByName(f.Category)
		if !ok {
			return derived
		}
		categoryID = id
	}

	search := strings.ToLower(f.Search)
	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if filterCategory && p.CategoryID != categoryID {
			continue
		}
		if p.Price.GreaterThan(f.MaxPrice) {
			continue
		}
		derived = append(derived, p)
	}
	return derived
}
