// Package sidebar holds the three catalog filter controls: free-text search,
// category selector and maximum price.
package sidebar

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mytheresa/go-inventory/models"
)

// Query parameter names.
const (
	ParamSearch   = "search"
	ParamCategory = "category"
	ParamMaxPrice = "max_price"
)

// State is the sidebar as rendered for one request.
type State struct {
	Search       string          `json:"search"`
	Category     string          `json:"category"`
	MaxPrice     decimal.Decimal `json:"max_price"`
	Options      []string        `json:"options"`
	OptionsError string          `json:"options_error,omitempty"`
}

func (s State) Filters() models.ProductFilters {
	return models.ProductFilters{
		Search:   s.Search,
		Category: s.Category,
		MaxPrice: s.MaxPrice,
	}
}

// Read builds the category options from the refresh's Category read and
// parses the current control values. When that read failed the selection
// falls back to "All".
func Read(values url.Values, snap models.CategorySnapshot) State {
	f := Parse(values)
	state := State{
		Search:   f.Search,
		Category: f.Category,
		MaxPrice: f.MaxPrice,
		Options:  []string{models.AllCategories},
	}

	if snap.Err != nil {
		state.OptionsError = "failed to load categories: " + snap.Err.Error()
		state.Category = models.AllCategories
		return state
	}
	state.Options = append(state.Options, snap.Lookup.Names()...)
	return state
}

// Parse reads the control values with their defaults: empty search,
// category "All" and max price 5000. The max price is clamped to [0, 10000];
// an unparsable value falls back to the default.
func Parse(values url.Values) models.ProductFilters {
	f := models.DefaultProductFilters()
	f.Search = values.Get(ParamSearch)

	if category := values.Get(ParamCategory); category != "" {
		f.Category = category
	}

	if raw := strings.TrimSpace(values.Get(ParamMaxPrice)); raw != "" {
		if price, err := decimal.NewFromString(raw); err == nil {
			f.MaxPrice = clamp(price)
		}
	}
	return f
}

func clamp(price decimal.Decimal) decimal.Decimal {
	if price.LessThan(models.MinPrice) {
		return models.MinPrice
	}
	if price.GreaterThan(models.MaxPriceLimit) {
		return models.MaxPriceLimit
	}
	return price
}
