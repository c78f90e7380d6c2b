package models

import (
	"context"

	"gorm.io/gorm"
)

const CategoriesCollection = "Categories"

var categoryFields = []string{"id", "name", "description"}

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		db: db,
	}
}

// InsertCategory creates the category and fills in its server-assigned id.
func (r *CategoriesRepository) InsertCategory(ctx context.Context, category *Category) error {
	err := r.db.WithContext(ctx).Create(category).Error
	return storeError("insert", CategoriesCollection, err)
}

// GetAllCategories reads the whole collection in insertion order.
func (r *CategoriesRepository) GetAllCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).
		Select(categoryFields).
		Order("id").
		Find(&categories).Error; err != nil {
		return nil, storeError("select", CategoriesCollection, err)
	}
	return categories, nil
}
