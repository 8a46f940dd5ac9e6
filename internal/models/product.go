package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog item.
type Product struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	StoreID    uint           `gorm:"index;not null" json:"store_id"`
	Name       string         `gorm:"not null" json:"name"`
	Slug       string         `gorm:"uniqueIndex;not null" json:"slug"`
	Price      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	SalePrice  *Money         `gorm:"type:decimal(20,2)" json:"sale_price,omitempty"`
	GSTPercent Money          `gorm:"type:decimal(20,2);not null;default:0" json:"gst_percent"`
	Images     StringArray    `gorm:"type:json" json:"images"`
	IsActive   bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}

// EffectivePrice returns the sale price when set, otherwise the list price.
func (p *Product) EffectivePrice() Money {
	if p.SalePrice != nil && p.SalePrice.Decimal.IsPositive() {
		return *p.SalePrice
	}
	return p.Price
}

// ProductVariant is a purchasable variation of a product (size, colour).
type ProductVariant struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	ProductID  uint           `gorm:"index;not null" json:"product_id"`
	SKU        string         `gorm:"uniqueIndex;not null" json:"sku"`
	Attributes AttributePairs `gorm:"type:json" json:"attributes"`
	Price      *Money         `gorm:"type:decimal(20,2)" json:"price,omitempty"`
	SalePrice  *Money         `gorm:"type:decimal(20,2)" json:"sale_price,omitempty"`
	IsActive   bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (ProductVariant) TableName() string {
	return "product_variants"
}

// EffectivePrice resolves the variant price, falling back to the product.
func (v *ProductVariant) EffectivePrice(product *Product) Money {
	if v.SalePrice != nil && v.SalePrice.Decimal.IsPositive() {
		return *v.SalePrice
	}
	if v.Price != nil && v.Price.Decimal.IsPositive() {
		return *v.Price
	}
	if product != nil {
		return product.EffectivePrice()
	}
	return Money{}
}
