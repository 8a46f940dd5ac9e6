package models

import (
	"time"

	"gorm.io/gorm"
)

// CancelRequest is a customer-initiated cancellation or refund request.
// Snapshot fields are copied from the order at request time and never change
// afterwards, so the audit trail survives later order mutation.
type CancelRequest struct {
	ID      uint `gorm:"primarykey" json:"id"`
	OrderID uint `gorm:"index;not null" json:"order_id"`
	StoreID uint `gorm:"index;not null" json:"store_id"`

	Type   string `gorm:"index;not null" json:"type"`   // cancel / refund
	Status string `gorm:"index;not null" json:"status"` // pending / approved / rejected

	// PreviousStatus is the order status captured at request time, restored
	// when a cancel-type request is rejected.
	PreviousStatus string `gorm:"type:varchar(32)" json:"previous_status"`

	Reason   string `gorm:"type:text" json:"reason"`
	Comments string `gorm:"type:text" json:"comments"`

	// Order snapshot.
	CustomerName      string `gorm:"type:varchar(120)" json:"customer_name"`
	CustomerEmail     string `gorm:"type:varchar(190)" json:"customer_email"`
	CustomerPhone     string `gorm:"type:varchar(20)" json:"customer_phone"`
	ShippingAddress   string `gorm:"type:text" json:"shipping_address"`
	ShippingCity      string `gorm:"type:varchar(120)" json:"shipping_city"`
	ShippingState     string `gorm:"type:varchar(64)" json:"shipping_state"`
	ShippingPincode   string `gorm:"type:varchar(10)" json:"shipping_pincode"`
	RazorpayPaymentID string `gorm:"type:varchar(64)" json:"razorpay_payment_id"`
	TotalAmount       Money  `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`
	ItemsJSON         JSON   `gorm:"type:json" json:"items"`

	ReviewedAt *time.Time     `gorm:"index" json:"reviewed_at"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Order *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}

// TableName sets the table name.
func (CancelRequest) TableName() string {
	return "cancel_requests"
}
