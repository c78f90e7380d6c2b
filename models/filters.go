package models

import "github.com/shopspring/decimal"

// AllCategories is the synthetic category choice that disables the category filter.
const AllCategories = "All"

var (
	MinPrice        = decimal.Zero
	MaxPriceLimit   = decimal.NewFromInt(10000)
	DefaultMaxPrice = decimal.NewFromInt(5000)
)

type ProductFilters struct {
	Search   string
	Category string
	MaxPrice decimal.Decimal
}

// DefaultProductFilters matches the sidebar controls before any user input.
func DefaultProductFilters() ProductFilters {
	return ProductFilters{
		Category: AllCategories,
		MaxPrice: DefaultMaxPrice,
	}
}
