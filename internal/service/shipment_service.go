package service

import (
	"context"
	"time"

	"github.com/vastrakart/vastrakart/internal/config"
	"github.com/vastrakart/vastrakart/internal/logger"
	"github.com/vastrakart/vastrakart/internal/models"
	"github.com/vastrakart/vastrakart/internal/repository"
	"github.com/vastrakart/vastrakart/internal/shipping/delhivery"

	"github.com/shopspring/decimal"
)

// ShipmentResult is the outcome surfaced to callers. Carrier failures set
// Success false with a message instead of returning an error, so order flows
// can continue around a failed manifest.
type ShipmentResult struct {
	Success bool                   `json:"success"`
	Waybill string                 `json:"waybill,omitempty"`
	Message string                 `json:"message,omitempty"`
	Raw     map[string]interface{} `json:"raw,omitempty"`
}

// TrackingResult is a tracking snapshot for one waybill.
type TrackingResult struct {
	Success  bool   `json:"success"`
	Waybill  string `json:"waybill"`
	Status   string `json:"status,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Location string `json:"location,omitempty"`
	Time     string `json:"time,omitempty"`
	Message  string `json:"message,omitempty"`
}

// PincodeCheckResult reports carrier serviceability for a pincode plus the
// estimated delivery charge. EstimatedCost is the flat rate; orders whose net
// subtotal reaches FreeShippingAbove ship free at checkout.
type PincodeCheckResult struct {
	Pincode           string       `json:"pincode"`
	Serviceable       bool         `json:"serviceable"`
	CODAllowed        bool         `json:"cod_allowed"`
	EstimatedCost     models.Money `json:"estimated_cost"`
	FreeShippingAbove models.Money `json:"free_shipping_above"`
}

// ShipmentService wraps the carrier adapter with order wiring.
type ShipmentService struct {
	orderRepo   repository.OrderRepository
	cfg         *delhivery.Config
	shippingCfg config.ShippingConfig
}

// NewShipmentService creates a shipment service.
func NewShipmentService(orderRepo repository.OrderRepository, cfg config.DelhiveryConfig, shippingCfg config.ShippingConfig) *ShipmentService {
	return &ShipmentService{
		orderRepo: orderRepo,
		cfg: &delhivery.Config{
			BaseURL:        cfg.BaseURL,
			APIToken:       cfg.APIToken,
			PickupLocation: cfg.PickupLocation,
			TimeoutMS:      cfg.TimeoutMS,
		},
		shippingCfg: shippingCfg,
	}
}

// Configured reports whether carrier credentials are present.
func (s *ShipmentService) Configured() bool {
	return delhivery.ValidateConfig(s.cfg) == nil
}

// CreateForOrder manifests a shipment and stores the waybill as the order's
// tracking number. Never returns an error; the result carries the outcome.
func (s *ShipmentService) CreateForOrder(ctx context.Context, order *models.Order) ShipmentResult {
	if order == nil {
		return ShipmentResult{Success: false, Message: "order missing"}
	}
	if !s.Configured() {
		return ShipmentResult{Success: false, Message: "shipping carrier not configured"}
	}

	result, err := delhivery.CreateShipment(ctx, s.cfg, delhivery.CreateShipmentInput{
		OrderNo:       order.OrderNo,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		Address:       order.ShippingAddress,
		City:          order.ShippingCity,
		State:         order.ShippingState,
		Pincode:       order.ShippingPincode,
		PaymentMode:   "Prepaid",
		TotalAmount:   order.TotalAmount.String(),
		ProductsDesc:  productsDescription(order.Items),
	})
	if err != nil {
		logger.Warnw("shipment_create_failed",
			"order_no", order.OrderNo,
			"error", err,
		)
		return ShipmentResult{Success: false, Message: "shipment creation failed"}
	}
	if !result.Success {
		logger.Warnw("shipment_create_rejected",
			"order_no", order.OrderNo,
			"remarks", result.Remarks,
		)
		return ShipmentResult{Success: false, Message: result.Remarks, Raw: result.Raw}
	}

	if err := s.orderRepo.Updates(order.ID, map[string]interface{}{
		"tracking_number": result.Waybill,
		"updated_at":      time.Now(),
	}); err != nil {
		logger.Errorw("shipment_tracking_save_failed",
			"order_no", order.OrderNo,
			"waybill", result.Waybill,
			"error", err,
		)
	}
	order.TrackingNumber = result.Waybill

	return ShipmentResult{Success: true, Waybill: result.Waybill, Raw: result.Raw}
}

// Cancel cancels a manifested shipment.
func (s *ShipmentService) Cancel(ctx context.Context, waybill string) ShipmentResult {
	if !s.Configured() {
		return ShipmentResult{Success: false, Message: "shipping carrier not configured"}
	}
	ok, err := delhivery.CancelShipment(ctx, s.cfg, waybill)
	if err != nil {
		logger.Warnw("shipment_cancel_failed", "waybill", waybill, "error", err)
		return ShipmentResult{Success: false, Waybill: waybill, Message: "shipment cancel failed"}
	}
	return ShipmentResult{Success: ok, Waybill: waybill}
}

// Track fetches the latest scan for a waybill.
func (s *ShipmentService) Track(ctx context.Context, waybill string) TrackingResult {
	if !s.Configured() {
		return TrackingResult{Success: false, Waybill: waybill, Message: "shipping carrier not configured"}
	}
	result, err := delhivery.Track(ctx, s.cfg, waybill)
	if err != nil {
		logger.Warnw("shipment_track_failed", "waybill", waybill, "error", err)
		return TrackingResult{Success: false, Waybill: waybill, Message: "tracking lookup failed"}
	}
	return TrackingResult{
		Success:  true,
		Waybill:  result.Waybill,
		Status:   result.Status,
		Detail:   result.StatusDetail,
		Location: result.Location,
		Time:     result.Timestamp,
	}
}

// CheckPincode reports serviceability and the estimated charge for a
// delivery pincode.
func (s *ShipmentService) CheckPincode(ctx context.Context, pincode string) (PincodeCheckResult, error) {
	if !s.Configured() {
		// Without a carrier every pincode is accepted; checkout still works.
		return s.withEstimate(PincodeCheckResult{Pincode: pincode, Serviceable: true}), nil
	}
	result, err := delhivery.CheckPincode(ctx, s.cfg, pincode)
	if err != nil {
		return PincodeCheckResult{Pincode: pincode}, err
	}
	return s.withEstimate(PincodeCheckResult{
		Pincode:     result.Pincode,
		Serviceable: result.Serviceable,
		CODAllowed:  result.CODAllowed,
	}), nil
}

func (s *ShipmentService) withEstimate(result PincodeCheckResult) PincodeCheckResult {
	if !result.Serviceable {
		return result
	}
	result.EstimatedCost = models.NewMoneyFromDecimal(decimal.NewFromFloat(s.shippingCfg.FlatRate))
	result.FreeShippingAbove = models.NewMoneyFromDecimal(decimal.NewFromFloat(s.shippingCfg.FreeAbove))
	return result
}

func productsDescription(items []models.OrderItem) string {
	if len(items) == 0 {
		return "apparel"
	}
	desc := items[0].ProductName
	if len(items) > 1 {
		desc += " and more"
	}
	return desc
}
