package models

import (
	"github.com/shopspring/decimal"
)

// Product represents a product in the inventory.
// It references its category by id only; the name is resolved through a CategoryLookup.
type Product struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Name       string          `json:"name"`
	Quantity   int             `gorm:"not null;default:0" json:"quantity"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	CategoryID uint            `gorm:"not null" json:"category_id"`
}

func (p *Product) TableName() string {
	return "Products"
}

// DisplayPrice formats the price with two decimals.
func (p Product) DisplayPrice() string {
	return p.Price.StringFixed(2)
}
