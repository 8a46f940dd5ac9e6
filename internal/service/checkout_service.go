package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vastrakart/vastrakart/internal/config"
	"github.com/vastrakart/vastrakart/internal/constants"
	"github.com/vastrakart/vastrakart/internal/logger"
	"github.com/vastrakart/vastrakart/internal/models"
	"github.com/vastrakart/vastrakart/internal/payment/razorpay"
	"github.com/vastrakart/vastrakart/internal/queue"
	"github.com/vastrakart/vastrakart/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// amountEpsilon is the tolerated difference between the client-claimed and
// the server-computed payable amount.
var amountEpsilon = decimal.RequireFromString("0.01")

// CheckoutQuote is the server-side pricing of a cart at checkout time.
type CheckoutQuote struct {
	Subtotal       decimal.Decimal
	DiscountCode   string
	DiscountAmount decimal.Decimal
	ShippingAmount decimal.Decimal
	Payable        decimal.Decimal
}

// CreateIntentInput requests a gateway payment intent.
type CreateIntentInput struct {
	StoreID       uint
	CartKey       string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	// ClaimedAmount is what the client believes it must pay; verified against
	// the server-side quote before any gateway call.
	ClaimedAmount models.Money
}

// CreateIntentResult is handed to the client to open the payment widget.
type CreateIntentResult struct {
	GatewayOrderID string       `json:"order_id"`
	Amount         models.Money `json:"amount"`
	AmountPaise    int64        `json:"amount_paise"`
	Currency       string       `json:"currency"`
	PublicKey      string       `json:"public_key"`
}

// VerifyPaymentInput carries the gateway callback fields plus the shipping
// details collected at checkout.
type VerifyPaymentInput struct {
	StoreID         uint
	CartKey         string
	CustomerID      *uint
	PaymentID       string
	GatewayOrderID  string
	Signature       string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	ShippingCity    string
	ShippingState   string
	ShippingPincode string
}

// CheckoutService drives the payment-intent and verify-then-settle flow.
// Order creation happens only here, and only after signature and gateway
// status checks have both passed.
type CheckoutService struct {
	db          *gorm.DB
	cartSvc     *CartService
	cartRepo    repository.CartRepository
	orderRepo   repository.OrderRepository
	shipmentSvc *ShipmentService
	queueClient *queue.Client
	gatewayCfg  *razorpay.Config
	shippingCfg config.ShippingConfig
	sellerState string
}

// NewCheckoutService creates a checkout service.
func NewCheckoutService(
	db *gorm.DB,
	cartSvc *CartService,
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	shipmentSvc *ShipmentService,
	queueClient *queue.Client,
	razorpayCfg config.RazorpayConfig,
	shippingCfg config.ShippingConfig,
	sellerState string,
) *CheckoutService {
	return &CheckoutService{
		db:          db,
		cartSvc:     cartSvc,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		shipmentSvc: shipmentSvc,
		queueClient: queueClient,
		gatewayCfg: &razorpay.Config{
			KeyID:     razorpayCfg.KeyID,
			KeySecret: razorpayCfg.KeySecret,
			BaseURL:   razorpayCfg.BaseURL,
			TimeoutMS: razorpayCfg.TimeoutMS,
		},
		shippingCfg: shippingCfg,
		sellerState: sellerState,
	}
}

// ShippingAmount returns the flat rate, waived above the free-shipping floor.
func (s *CheckoutService) ShippingAmount(netSubtotal decimal.Decimal) decimal.Decimal {
	freeAbove := decimal.NewFromFloat(s.shippingCfg.FreeAbove)
	if freeAbove.Sign() > 0 && netSubtotal.GreaterThanOrEqual(freeAbove) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(s.shippingCfg.FlatRate)
}

// Quote prices the cart server-side: subtotal, revalidated discount and
// shipping. This is the only amount the gateway intent is created for.
func (s *CheckoutService) Quote(storeID uint, cartKey string, now time.Time) (*CheckoutQuote, error) {
	summary, err := s.cartSvc.Summary(storeID, cartKey, now)
	if err != nil {
		return nil, err
	}
	if len(summary.Items) == 0 {
		return nil, ErrCartEmpty
	}

	subtotal := summary.Subtotal.Decimal
	discount := summary.DiscountAmount.Decimal
	net := subtotal.Sub(discount)
	shipping := s.ShippingAmount(net)

	return &CheckoutQuote{
		Subtotal:       subtotal,
		DiscountCode:   summary.DiscountCode,
		DiscountAmount: discount,
		ShippingAmount: shipping,
		Payable:        net.Add(shipping),
	}, nil
}

// CreateIntent verifies the claimed amount against the server quote and
// creates the gateway order.
func (s *CheckoutService) CreateIntent(ctx context.Context, input CreateIntentInput) (*CreateIntentResult, error) {
	quote, err := s.Quote(input.StoreID, input.CartKey, time.Now())
	if err != nil {
		return nil, err
	}
	if quote.Payable.Sub(input.ClaimedAmount.Decimal).Abs().GreaterThan(amountEpsilon) {
		logger.Warnw("checkout_amount_mismatch",
			"cart_key", input.CartKey,
			"claimed", input.ClaimedAmount.String(),
			"computed", quote.Payable.String(),
		)
		return nil, ErrAmountMismatch
	}

	payable := models.NewMoneyFromDecimal(quote.Payable)
	gatewayOrder, err := razorpay.CreateOrder(ctx, s.gatewayCfg, razorpay.CreateOrderInput{
		AmountPaise: payable.Paise(),
		Currency:    constants.DefaultCurrency,
		Receipt:     input.CartKey,
		Notes: map[string]string{
			"customer_email": strings.TrimSpace(input.CustomerEmail),
		},
	})
	if err != nil {
		return nil, s.mapGatewayError(err)
	}

	return &CreateIntentResult{
		GatewayOrderID: gatewayOrder.ID,
		Amount:         payable,
		AmountPaise:    payable.Paise(),
		Currency:       constants.DefaultCurrency,
		PublicKey:      s.gatewayCfg.KeyID,
	}, nil
}

// VerifyAndCreateOrder checks the callback signature, confirms the payment
// with the gateway, and settles the cart into a durable order. A retried
// call for an already-settled intent returns the existing order.
func (s *CheckoutService) VerifyAndCreateOrder(ctx context.Context, input VerifyPaymentInput) (*models.Order, error) {
	if err := razorpay.VerifySignature(s.gatewayCfg, input.GatewayOrderID, input.PaymentID, input.Signature); err != nil {
		if errors.Is(err, razorpay.ErrConfigInvalid) {
			return nil, ErrGatewayConfig
		}
		logger.Warnw("payment_signature_invalid",
			"gateway_order_id", input.GatewayOrderID,
			"payment_id", input.PaymentID,
		)
		return nil, ErrSignatureInvalid
	}

	payment, err := razorpay.FetchPayment(ctx, s.gatewayCfg, input.PaymentID)
	if err != nil {
		return nil, s.mapGatewayError(err)
	}
	if !razorpay.IsSettled(payment.Status) {
		logger.Warnw("payment_not_completed",
			"payment_id", payment.ID,
			"status", payment.Status,
		)
		return nil, ErrPaymentNotCompleted
	}

	// Retried verify for an already-settled intent.
	existing, err := s.orderRepo.GetByRazorpayOrderID(input.GatewayOrderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now()
	quote, err := s.Quote(input.StoreID, input.CartKey, now)
	if err != nil {
		return nil, err
	}
	lines, err := s.cartSvc.Lines(input.StoreID, input.CartKey)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	payable := models.NewMoneyFromDecimal(quote.Payable)
	if paiseDiff(payment.AmountPaise, payable.Paise()) > 1 {
		logger.Warnw("payment_amount_mismatch",
			"payment_id", payment.ID,
			"paid_paise", payment.AmountPaise,
			"expected_paise", payable.Paise(),
		)
		return nil, ErrAmountMismatch
	}

	order, items := s.buildOrder(input, quote, lines, now)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Create(order, items); err != nil {
			return err
		}
		cartRepo := s.cartRepo.WithTx(tx)
		if err := cartRepo.ClearByKey(input.StoreID, input.CartKey); err != nil {
			return err
		}
		return cartRepo.ClearDiscount(input.StoreID, input.CartKey)
	})
	if err != nil {
		// The unique index on razorpay_order_id turns a concurrent double
		// verify into a constraint error; surface the winner's order.
		if settled, lookupErr := s.orderRepo.GetByRazorpayOrderID(input.GatewayOrderID); lookupErr == nil && settled != nil {
			return settled, nil
		}
		return nil, err
	}

	logger.Infow("order_created",
		"order_no", order.OrderNo,
		"payment_id", payment.ID,
		"total", order.TotalAmount.String(),
	)

	// Best-effort side effects; the order is already committed.
	if result := s.shipmentSvc.CreateForOrder(ctx, order); !result.Success {
		logger.Warnw("order_shipment_deferred",
			"order_no", order.OrderNo,
			"message", result.Message,
		)
	}
	if err := s.queueClient.EnqueueOrderConfirmEmail(queue.OrderConfirmEmailPayload{OrderID: order.ID}); err != nil {
		logger.Warnw("order_confirm_email_enqueue_failed",
			"order_no", order.OrderNo,
			"error", err,
		)
	}

	return order, nil
}

func (s *CheckoutService) buildOrder(input VerifyPaymentInput, quote *CheckoutQuote, lines []CartLine, now time.Time) (*models.Order, []models.OrderItem) {
	var taxTotal GSTBreakup
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		breakup := LineGST(line.UnitPrice.Decimal, line.Quantity, line.GSTPercent.Decimal, s.sellerState, input.ShippingState)
		taxTotal = taxTotal.Add(breakup)

		lineTotal := line.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			VariantID:   line.VariantID,
			ProductName: line.ProductName,
			Attributes:  line.Attributes,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			GSTPercent:  line.GSTPercent,
			CGSTAmount:  models.NewMoneyFromDecimal(breakup.CGST),
			SGSTAmount:  models.NewMoneyFromDecimal(breakup.SGST),
			IGSTAmount:  models.NewMoneyFromDecimal(breakup.IGST),
			TotalPrice:  models.NewMoneyFromDecimal(lineTotal),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	order := &models.Order{
		OrderNo:           GenerateOrderNo(now),
		StoreID:           input.StoreID,
		CustomerID:        input.CustomerID,
		CustomerName:      strings.TrimSpace(input.CustomerName),
		CustomerEmail:     strings.ToLower(strings.TrimSpace(input.CustomerEmail)),
		CustomerPhone:     strings.TrimSpace(input.CustomerPhone),
		ShippingAddress:   strings.TrimSpace(input.ShippingAddress),
		ShippingCity:      strings.TrimSpace(input.ShippingCity),
		ShippingState:     strings.TrimSpace(input.ShippingState),
		ShippingPincode:   strings.TrimSpace(input.ShippingPincode),
		Currency:          constants.DefaultCurrency,
		Subtotal:          models.NewMoneyFromDecimal(quote.Subtotal),
		CGSTAmount:        models.NewMoneyFromDecimal(taxTotal.CGST),
		SGSTAmount:        models.NewMoneyFromDecimal(taxTotal.SGST),
		IGSTAmount:        models.NewMoneyFromDecimal(taxTotal.IGST),
		ShippingAmount:    models.NewMoneyFromDecimal(quote.ShippingAmount),
		DiscountAmount:    models.NewMoneyFromDecimal(quote.DiscountAmount),
		DiscountCode:      quote.DiscountCode,
		TotalAmount:       models.NewMoneyFromDecimal(quote.Payable),
		Status:            constants.OrderStatusPending,
		PaymentStatus:     constants.PaymentStatusPaid,
		RazorpayOrderID:   input.GatewayOrderID,
		RazorpayPaymentID: input.PaymentID,
		PaidAt:            &now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	return order, items
}

func (s *CheckoutService) mapGatewayError(err error) error {
	switch {
	case errors.Is(err, razorpay.ErrConfigInvalid):
		return ErrGatewayConfig
	case errors.Is(err, razorpay.ErrRejected):
		logger.Errorw("gateway_rejected", "error", err)
		return ErrGatewayRejected
	case errors.Is(err, razorpay.ErrRequestFailed), errors.Is(err, razorpay.ErrResponseInvalid):
		logger.Errorw("gateway_unreachable", "error", err)
		return ErrGatewayUnreachable
	default:
		return err
	}
}

func paiseDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
