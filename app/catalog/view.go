package catalog

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mytheresa/go-inventory/models"
)

const (
	NoticeNoCategories = "No categories yet."
	NoticeNoProducts   = "No products in the database."
	NoticeNoMatches    = "No products match the current filters."
)

type ProductProvider interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

type Category struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Product struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	DisplayPrice string  `json:"display_price"`
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name,omitempty"`
}

// DeleteOption binds the delete control to a row id; Label is display only.
type DeleteOption struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
}

// Page is the outcome of one render cycle. A failed read leaves its error
// message set and does not prevent the other half from rendering.
type Page struct {
	Categories       []Category     `json:"categories"`
	CategoriesError  string         `json:"categories_error,omitempty"`
	CategoriesNotice string         `json:"categories_notice,omitempty"`
	Products         []Product      `json:"products"`
	ProductsError    string         `json:"products_error,omitempty"`
	ProductsNotice   string         `json:"products_notice,omitempty"`
	TotalProducts    int            `json:"total_products"`
	DeleteOptions    []DeleteOption `json:"delete_options"`
}

type View struct {
	categories models.CategoryReader
	products   ProductProvider
}

func NewView(c models.CategoryReader, p ProductProvider) *View {
	return &View{categories: c, products: p}
}

// ReadCategories takes the one Category read of a refresh cycle.
func (v *View) ReadCategories(ctx context.Context) models.CategorySnapshot {
	snap := models.ReadCategories(ctx, v.categories)
	if snap.Err != nil {
		log.Error().Err(snap.Err).Msg("catalog: failed to read categories")
	}
	return snap
}

// Render re-reads the Products collection and derives the displayed products
// using the refresh's Category snapshot.
func (v *View) Render(ctx context.Context, f models.ProductFilters, snap models.CategorySnapshot) Page {
	page := Page{
		Categories:    []Category{},
		Products:      []Product{},
		DeleteOptions: []DeleteOption{},
	}

	if snap.Err != nil {
		page.CategoriesError = "failed to fetch categories: " + snap.Err.Error()
	} else if len(snap.Categories) == 0 {
		page.CategoriesNotice = NoticeNoCategories
	}
	for _, c := range snap.Categories {
		page.Categories = append(page.Categories, Category{ID: c.ID, Name: c.Name, Description: c.Description})
	}

	products, err := v.products.GetAllProducts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("catalog: failed to read products")
		page.ProductsError = "failed to fetch products: " + err.Error()
		return page
	}
	page.TotalProducts = len(products)
	if len(products) == 0 {
		page.ProductsNotice = NoticeNoProducts
		return page
	}

	for _, p := range ApplyFilters(products, f, snap.Lookup) {
		row := Product{
			ID:           p.ID,
			Name:         p.Name,
			Quantity:     p.Quantity,
			Price:        p.Price.InexactFloat64(),
			DisplayPrice: p.DisplayPrice(),
			CategoryID:   p.CategoryID,
		}
		row.CategoryName, _ = snap.Lookup.NameByID(p.CategoryID)
		page.Products = append(page.Products, row)
		page.DeleteOptions = append(page.DeleteOptions, DeleteOption{ID: p.ID, Label: p.Name})
	}
	if len(page.Products) == 0 {
		page.ProductsNotice = NoticeNoMatches
	}
	return page
}

// Delete removes one product by id. The id must be among the products derived
// with f, otherwise models.ErrProductNotListed is returned and nothing is
// deleted. Callers render again afterwards.
func (v *View) Delete(ctx context.Context, id uint, f models.ProductFilters, snap models.CategorySnapshot) error {
	products, err := v.products.GetAllProducts(ctx)
	if err != nil {
		return err
	}
	if !containsProduct(ApplyFilters(products, f, snap.Lookup), id) {
		return models.ErrProductNotListed
	}

	if err := v.products.DeleteProduct(ctx, id); err != nil {
		return err
	}
	log.Info().Uint("product_id", id).Msg("product deleted")
	return nil
}

func containsProduct(products []models.Product, id uint) bool {
	for _, p := range products {
		if p.ID == id {
			return true
		}
	}
	return false
}
