package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer is a storefront account.
type Customer struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	StoreID      uint           `gorm:"not null;uniqueIndex:idx_customer_store_email" json:"store_id"`
	Name         string         `gorm:"type:varchar(120);not null" json:"name"`
	Email        string         `gorm:"not null;uniqueIndex:idx_customer_store_email" json:"email"`
	Phone        string         `gorm:"type:varchar(20)" json:"phone"`
	PasswordHash string         `gorm:"type:varchar(200);not null" json:"-"`
	State        string         `gorm:"type:varchar(64)" json:"state"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Customer) TableName() string {
	return "customers"
}

// Admin is a backoffice operator account.
type Admin struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string         `gorm:"type:varchar(200);not null" json:"-"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Admin) TableName() string {
	return "admins"
}
