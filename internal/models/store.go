package models

import (
	"time"

	"gorm.io/gorm"
)

// Store is a storefront scope. SellerState drives the CGST/SGST vs IGST split.
type Store struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	LookupKey   string         `gorm:"uniqueIndex;not null" json:"lookup_key"`
	SellerState string         `gorm:"type:varchar(64);not null" json:"seller_state"`
	OwnerName   string         `gorm:"type:varchar(120)" json:"owner_name"`
	OwnerEmail  string         `gorm:"type:varchar(190)" json:"owner_email"`
	OwnerPhone  string         `gorm:"type:varchar(20)" json:"owner_phone"`
	Currency    string         `gorm:"type:varchar(8);not null;default:'INR'" json:"currency"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Store) TableName() string {
	return "stores"
}
