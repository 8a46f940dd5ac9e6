package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem is a line in a session cart. CartKey is either the customer id
// (logged-in carts) or an opaque guest token issued in a cookie.
type CartItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	StoreID    uint           `gorm:"index;not null" json:"store_id"`
	CartKey    string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_key_variant" json:"cart_key"`
	ProductID  uint           `gorm:"not null;uniqueIndex:idx_cart_key_variant" json:"product_id"`
	VariantID  uint           `gorm:"not null;default:0;uniqueIndex:idx_cart_key_variant" json:"variant_id"`
	Quantity   int            `gorm:"not null" json:"quantity"`
	UnitPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	Attributes AttributePairs `gorm:"type:json" json:"attributes"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Product *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
}

// TableName sets the table name.
func (CartItem) TableName() string {
	return "cart_items"
}

// CartDiscount associates an applied discount code with a cart. The code is
// revalidated against the live discount row at checkout; this is only the
// session-scoped association.
type CartDiscount struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	StoreID   uint      `gorm:"index;not null" json:"store_id"`
	CartKey   string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"cart_key"`
	Code      string    `gorm:"not null" json:"code"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}

// TableName sets the table name.
func (CartDiscount) TableName() string {
	return "cart_discounts"
}
