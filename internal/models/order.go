package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is a settled purchase. Created only after payment verification; never
// hard-deleted (cancellation is a status, not an erasure).
type Order struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	OrderNo    string `gorm:"uniqueIndex;not null" json:"order_no"`
	StoreID    uint   `gorm:"index;not null" json:"store_id"`
	CustomerID *uint  `gorm:"index" json:"customer_id,omitempty"` // nil for guest orders

	// Customer snapshot, stable even if the account later changes.
	CustomerName  string `gorm:"type:varchar(120)" json:"customer_name"`
	CustomerEmail string `gorm:"index;type:varchar(190)" json:"customer_email"`
	CustomerPhone string `gorm:"type:varchar(20)" json:"customer_phone"`

	// Shipping snapshot.
	ShippingAddress string `gorm:"type:text" json:"shipping_address"`
	ShippingCity    string `gorm:"type:varchar(120)" json:"shipping_city"`
	ShippingState   string `gorm:"type:varchar(64)" json:"shipping_state"`
	ShippingPincode string `gorm:"type:varchar(10)" json:"shipping_pincode"`

	Currency       string `gorm:"not null" json:"currency"`
	Subtotal       Money  `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`
	CGSTAmount     Money  `gorm:"type:decimal(20,2);not null;default:0" json:"cgst_amount"`
	SGSTAmount     Money  `gorm:"type:decimal(20,2);not null;default:0" json:"sgst_amount"`
	IGSTAmount     Money  `gorm:"type:decimal(20,2);not null;default:0" json:"igst_amount"`
	ShippingAmount Money  `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_amount"`
	DiscountAmount Money  `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`
	DiscountCode   string `gorm:"type:varchar(64)" json:"discount_code,omitempty"`
	TotalAmount    Money  `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`

	Status        string `gorm:"index;not null" json:"status"`
	PaymentStatus string `gorm:"index;not null" json:"payment_status"`

	// Gateway references. RazorpayOrderID carries a unique index so a retried
	// verify call cannot create a second order for the same payment intent.
	RazorpayOrderID   string `gorm:"uniqueIndex;not null" json:"razorpay_order_id"`
	RazorpayPaymentID string `gorm:"index" json:"razorpay_payment_id"`

	TrackingNumber string `gorm:"type:varchar(64)" json:"tracking_number,omitempty"`

	PaidAt      *time.Time     `gorm:"index" json:"paid_at"`
	DeliveredAt *time.Time     `gorm:"index" json:"delivered_at"`
	CancelledAt *time.Time     `gorm:"index" json:"cancelled_at"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a priced line snapshot, decoupled from live product data.
type OrderItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	OrderID     uint           `gorm:"index;not null" json:"order_id"`
	ProductID   uint           `gorm:"index;not null" json:"product_id"`
	VariantID   uint           `gorm:"not null;default:0" json:"variant_id"`
	ProductName string         `gorm:"not null" json:"product_name"`
	Attributes  AttributePairs `gorm:"type:json" json:"attributes"`
	UnitPrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	GSTPercent  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"gst_percent"`
	CGSTAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"cgst_amount"`
	SGSTAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"sgst_amount"`
	IGSTAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"igst_amount"`
	TotalPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
