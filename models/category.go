package models

// Category represents a product category.
// Names are required but not unique; the description is free text.
type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
}

func (c *Category) TableName() string {
	return "Categories"
}
