package products

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mytheresa/go-inventory/internal/validation"
	"github.com/mytheresa/go-inventory/models"
)

type ProductWriter interface {
	InsertProduct(ctx context.Context, product *models.Product) error
}

// ProductInput is the Add Product form. CategoryName must be one of the
// currently known category names.
type ProductInput struct {
	Name         string          `json:"name" form:"name" validate:"required,max=200"`
	Quantity     int             `json:"quantity" form:"quantity" validate:"min=0"`
	Price        decimal.Decimal `json:"price" form:"price" validate:"min=0"`
	CategoryName string          `json:"category_name" form:"category_name" validate:"required"`
}

// FormState is what the Add Product form needs to render.
type FormState struct {
	CategoryNames []string `json:"category_names"`
}

type Manager struct {
	categories models.CategoryReader
	products   ProductWriter
}

func NewManager(c models.CategoryReader, p ProductWriter) *Manager {
	return &Manager{categories: c, products: p}
}

// Form returns models.ErrNoCategoriesAvailable while the Categories
// collection is empty; the form must not be offered in that case.
func (m *Manager) Form(ctx context.Context) (FormState, error) {
	return NewFormState(models.ReadCategories(ctx, m.categories))
}

// NewFormState builds the form from a Category read already made for the
// current refresh.
func NewFormState(snap models.CategorySnapshot) (FormState, error) {
	if snap.Err != nil {
		return FormState{}, snap.Err
	}
	if snap.Lookup.Len() == 0 {
		return FormState{}, models.ErrNoCategoriesAvailable
	}
	return FormState{CategoryNames: snap.Lookup.Names()}, nil
}

// Create resolves the category name against a fresh Category read and inserts
// one product.
func (m *Manager) Create(ctx context.Context, in ProductInput) (models.Product, error) {
	lookup, err := m.lookup(ctx)
	if err != nil {
		return models.Product{}, err
	}

	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return models.Product{}, err
	}

	categoryID, ok := lookup.IDByName(in.CategoryName)
	if !ok {
		return models.Product{}, models.NewValidationError("category_name", "unknown category: "+in.CategoryName)
	}

	product := &models.Product{
		Name:       in.Name,
		Quantity:   in.Quantity,
		Price:      in.Price.Round(2),
		CategoryID: categoryID,
	}
	if err := m.products.InsertProduct(ctx, product); err != nil {
		return models.Product{}, err
	}
	return *product, nil
}

func (m *Manager) lookup(ctx context.Context) (models.CategoryLookup, error) {
	categories, err := m.categories.GetAllCategories(ctx)
	if err != nil {
		return models.CategoryLookup{}, err
	}
	lookup := models.NewCategoryLookup(categories)
	if lookup.Len() == 0 {
		return models.CategoryLookup{}, models.ErrNoCategoriesAvailable
	}
	return lookup, nil
}
