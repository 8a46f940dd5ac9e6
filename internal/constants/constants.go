package constants

// Order status constants
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusOnHold     = "on_hold"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusReturned   = "returned"
)

// Payment status constants
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Cancellation request type constants
const (
	CancelRequestTypeCancel = "cancel"
	CancelRequestTypeRefund = "refund"
)

// Cancellation request status constants
const (
	CancelRequestStatusPending  = "pending"
	CancelRequestStatusApproved = "approved"
	CancelRequestStatusRejected = "rejected"
)

// Discount type constants
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// Gateway payment states accepted as a completed payment
const (
	RazorpayPaymentCaptured   = "captured"
	RazorpayPaymentAuthorized = "authorized"
)

// Async task type constants
const (
	TaskOrderStatusEmail   = "email:order_status"
	TaskOrderConfirmEmail  = "email:order_confirm"
	TaskCancelRequestEmail = "email:cancel_request"
)

// Queue name constants
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// DefaultCurrency is the storefront settlement currency.
const DefaultCurrency = "INR"
