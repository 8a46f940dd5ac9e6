package public

import (
	"github.com/vastrakart/vastrakart/internal/http/response"
	"github.com/vastrakart/vastrakart/internal/models"
	"github.com/vastrakart/vastrakart/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateIntentRequest opens a payment intent with the gateway. The amount is
// what the client believes it must pay; the server recomputes and rejects on
// mismatch before any gateway call.
type CreateIntentRequest struct {
	CustomerName  string       `json:"customer_name" binding:"required"`
	CustomerEmail string       `json:"customer_email" binding:"required"`
	CustomerPhone string       `json:"customer_phone"`
	Amount        models.Money `json:"amount" binding:"required"`
	// Client-side breakdown of the claimed amount. Informational only; the
	// quote is rebuilt from the cart and these are never trusted.
	ShippingAmount models.Money `json:"shipping_amount"`
	DiscountAmount models.Money `json:"discount_amount"`
}

// VerifyPaymentRequest carries the gateway callback fields plus the shipping
// details collected at checkout.
type VerifyPaymentRequest struct {
	PaymentID string `json:"payment_id" binding:"required"`
	OrderID   string `json:"order_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
	OrderData struct {
		CustomerName    string `json:"customer_name"`
		CustomerEmail   string `json:"customer_email"`
		CustomerPhone   string `json:"customer_phone"`
		ShippingAddress string `json:"shipping_address"`
		ShippingCity    string `json:"shipping_city"`
		ShippingState   string `json:"shipping_state"`
		ShippingPincode string `json:"shipping_pincode"`
	} `json:"order_data"`
}

// CreatePaymentIntent recomputes the payable amount and opens a gateway
// order.
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		return
	}
	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	result, err := h.CheckoutService.CreateIntent(c.Request.Context(), service.CreateIntentInput{
		StoreID:       storeID,
		CartKey:       resolveCartKey(c),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		ClaimedAmount: req.Amount,
	})
	if err != nil {
		respondWithMappedError(c, err, paymentIntentErrorRules, response.CodeInternal, "failed to create payment intent")
		return
	}
	response.Success(c, result)
}

// VerifyPayment settles the cart into an order after the gateway callback.
func (h *Handler) VerifyPayment(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		return
	}
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	input := service.VerifyPaymentInput{
		StoreID:         storeID,
		CartKey:         resolveCartKey(c),
		PaymentID:       req.PaymentID,
		GatewayOrderID:  req.OrderID,
		Signature:       req.Signature,
		CustomerName:    req.OrderData.CustomerName,
		CustomerEmail:   req.OrderData.CustomerEmail,
		CustomerPhone:   req.OrderData.CustomerPhone,
		ShippingAddress: req.OrderData.ShippingAddress,
		ShippingCity:    req.OrderData.ShippingCity,
		ShippingState:   req.OrderData.ShippingState,
		ShippingPincode: req.OrderData.ShippingPincode,
	}
	if customerID, logged := optionalCustomerID(c); logged {
		input.CustomerID = &customerID
	}

	order, err := h.CheckoutService.VerifyAndCreateOrder(c.Request.Context(), input)
	if err != nil {
		respondWithMappedError(c, err, paymentVerifyErrorRules, response.CodeInternal, "payment verification failed")
		return
	}
	response.Success(c, gin.H{
		"order_id":     order.ID,
		"order_number": order.OrderNo,
	})
}
