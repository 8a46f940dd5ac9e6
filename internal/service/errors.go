package service

import "errors"

// Validation / input errors.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidCartItem  = errors.New("invalid cart item")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrProductNotFound  = errors.New("product not found")
	ErrVariantNotFound  = errors.New("variant not found")
	ErrProductInactive  = errors.New("product not available")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrStoreNotFound    = errors.New("store not found")
)

// Auth errors.
var (
	ErrAuthFailed   = errors.New("invalid credentials")
	ErrEmailExists  = errors.New("email already registered")
	ErrTokenInvalid = errors.New("token invalid")
	ErrNotOwner     = errors.New("order does not belong to customer")
)

// Discount errors.
var (
	ErrDiscountInvalid      = errors.New("discount code invalid")
	ErrDiscountNotStarted   = errors.New("discount code not started")
	ErrDiscountExpired      = errors.New("discount code expired")
	ErrDiscountUsageLimit   = errors.New("discount code usage limit reached")
	ErrDiscountBelowMinimum = errors.New("cart total below discount minimum")
)

// Checkout / payment errors.
var (
	ErrCartEmpty           = errors.New("cart is empty")
	ErrAmountMismatch      = errors.New("payable amount mismatch")
	ErrSignatureInvalid    = errors.New("payment signature invalid")
	ErrPaymentNotCompleted = errors.New("payment not completed")
	ErrGatewayUnreachable  = errors.New("payment gateway unreachable")
	ErrGatewayRejected     = errors.New("payment gateway rejected request")
	ErrGatewayConfig       = errors.New("payment gateway not configured")
)

// Order lifecycle errors.
var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderStatusInvalid  = errors.New("order status invalid")
	ErrOrderTerminal       = errors.New("order is in a terminal state")
	ErrOperationNotAllowed = errors.New("operation not allowed")
)

// Cancellation workflow errors.
var (
	ErrCancelRequestNotFound = errors.New("cancellation request not found")
	ErrCancelRequestExists   = errors.New("cancellation request already exists")
	ErrCancelRequestReviewed = errors.New("cancellation request already reviewed")
	ErrCancelTypeInvalid     = errors.New("cancellation type invalid")
	ErrCancelStateInvalid    = errors.New("order state does not allow cancellation")
	ErrRefundWindowExpired   = errors.New("refund window expired")
	ErrRefundStateInvalid    = errors.New("order must be delivered before a refund request")
	ErrReviewDecisionInvalid = errors.New("review decision invalid")
)
