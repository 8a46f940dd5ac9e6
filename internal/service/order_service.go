package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/vastrakart/vastrakart/internal/constants"
	"github.com/vastrakart/vastrakart/internal/logger"
	"github.com/vastrakart/vastrakart/internal/models"
	"github.com/vastrakart/vastrakart/internal/queue"
	"github.com/vastrakart/vastrakart/internal/repository"

	"github.com/google/uuid"
)

// OrderService manages the order lifecycle after settlement. Orders are only
// created through the checkout verify path; this service covers queries and
// admin-driven mutation.
type OrderService struct {
	orderRepo   repository.OrderRepository
	queueClient *queue.Client
}

// NewOrderService creates an order service.
func NewOrderService(orderRepo repository.OrderRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		queueClient: queueClient,
	}
}

// IsValidOrderStatus reports whether a status string is known.
func IsValidOrderStatus(status string) bool {
	switch status {
	case constants.OrderStatusPending,
		constants.OrderStatusProcessing,
		constants.OrderStatusOnHold,
		constants.OrderStatusShipped,
		constants.OrderStatusDelivered,
		constants.OrderStatusCancelled,
		constants.OrderStatusReturned:
		return true
	default:
		return false
	}
}

// IsTerminalOrderStatus reports whether a status ends the fulfillment path.
func IsTerminalOrderStatus(status string) bool {
	return status == constants.OrderStatusCancelled || status == constants.OrderStatusReturned
}

// IsValidPaymentStatus reports whether a payment status string is known.
func IsValidPaymentStatus(status string) bool {
	switch status {
	case constants.PaymentStatusPending,
		constants.PaymentStatusPaid,
		constants.PaymentStatusFailed,
		constants.PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

// GenerateOrderNo produces a public order number.
func GenerateOrderNo(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("VK-%s-%s", now.Format("20060102"), suffix)
}

// GetByID fetches an order.
func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetByOrderNo fetches a store-scoped order by its public number.
func (s *OrderService) GetByOrderNo(storeID uint, orderNo string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(storeID, orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOwned fetches an order only when it belongs to the customer.
func (s *OrderService) GetOwned(id, storeID, customerID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetOwned(id, storeID, customerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// List returns orders matching the filter.
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// ListByCustomer returns a customer's own orders.
func (s *OrderService) ListByCustomer(storeID, customerID uint, page, pageSize int) ([]models.Order, int64, error) {
	if customerID == 0 {
		return nil, 0, ErrInvalidInput
	}
	return s.orderRepo.List(repository.OrderListFilter{
		Page:       page,
		PageSize:   pageSize,
		StoreID:    storeID,
		CustomerID: customerID,
	})
}

// UpdateStatus applies an admin status change. Transitions between the
// fulfillment states are free-form, but once an order is cancelled or
// returned only an explicit override may move it again.
func (s *OrderService) UpdateStatus(orderID uint, newStatus string, override bool) error {
	if !IsValidOrderStatus(newStatus) {
		return ErrOrderStatusInvalid
	}
	order, err := s.GetByID(orderID)
	if err != nil {
		return err
	}
	if IsTerminalOrderStatus(order.Status) && !override {
		return ErrOrderTerminal
	}
	if order.Status == newStatus {
		return nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     newStatus,
		"updated_at": now,
	}
	switch newStatus {
	case constants.OrderStatusDelivered:
		updates["delivered_at"] = now
	case constants.OrderStatusCancelled:
		updates["cancelled_at"] = now
	}
	if err := s.orderRepo.Updates(orderID, updates); err != nil {
		return err
	}

	s.notifyStatusChange(orderID, newStatus)
	return nil
}

// UpdatePaymentStatus applies an admin payment status change.
func (s *OrderService) UpdatePaymentStatus(orderID uint, newStatus string) error {
	if !IsValidPaymentStatus(newStatus) {
		return ErrOrderStatusInvalid
	}
	if _, err := s.GetByID(orderID); err != nil {
		return err
	}
	return s.orderRepo.Updates(orderID, map[string]interface{}{
		"payment_status": newStatus,
		"updated_at":     time.Now(),
	})
}

// UpdateTracking records the carrier tracking number.
func (s *OrderService) UpdateTracking(orderID uint, trackingNumber string) error {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return ErrInvalidInput
	}
	if _, err := s.GetByID(orderID); err != nil {
		return err
	}
	return s.orderRepo.Updates(orderID, map[string]interface{}{
		"tracking_number": trackingNumber,
		"updated_at":      time.Now(),
	})
}

// Delete always refuses. Orders are cancelled, never erased.
func (s *OrderService) Delete(_ uint) error {
	return ErrOperationNotAllowed
}

// notifyStatusChange enqueues the customer notification. Failures are logged
// and never propagated.
func (s *OrderService) notifyStatusChange(orderID uint, status string) {
	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  status,
	}); err != nil {
		logger.Warnw("order_status_email_enqueue_failed",
			"order_id", orderID,
			"status", status,
			"error", err,
		)
	}
}
