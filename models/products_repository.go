package models

import (
	"context"

	"gorm.io/gorm"
)

const ProductsCollection = "Products"

var productFields = []string{"id", "name", "quantity", "price", "category_id"}

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) InsertProduct(ctx context.Context, product *Product) error {
	err := r.db.WithContext(ctx).Create(product).Error
	return storeError("insert", ProductsCollection, err)
}

// GetAllProducts reads the whole collection. Filtering happens in the caller.
func (r *ProductsRepository) GetAllProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).
		Select(productFields).
		Order("id").
		Find(&products).Error; err != nil {
		return nil, storeError("select", ProductsCollection, err)
	}
	return products, nil
}

// DeleteProduct removes exactly one product by id.
func (r *ProductsRepository) DeleteProduct(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Product{}, id)
	if res.Error != nil {
		return storeError("delete", ProductsCollection, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
