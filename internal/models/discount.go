package models

import (
	"time"

	"gorm.io/gorm"
)

// Discount is a redeemable code scoped to a store.
type Discount struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	StoreID           uint           `gorm:"not null;uniqueIndex:idx_discount_store_code" json:"store_id"`
	Code              string         `gorm:"not null;uniqueIndex:idx_discount_store_code" json:"code"`
	Type              string         `gorm:"not null" json:"type"` // percentage / fixed
	Value             Money          `gorm:"type:decimal(20,2);not null" json:"value"`
	MinPurchaseAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_purchase_amount"`
	MaxDiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"max_discount_amount"`
	UsageLimit        int            `gorm:"not null;default:0" json:"usage_limit"` // 0 means unlimited
	UsedCount         int            `gorm:"not null;default:0" json:"used_count"`
	StartsAt          *time.Time     `gorm:"index" json:"starts_at"`
	EndsAt            *time.Time     `gorm:"index" json:"ends_at"`
	IsActive          bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Discount) TableName() string {
	return "discounts"
}
