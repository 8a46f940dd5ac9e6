package service

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/vastrakart/vastrakart/internal/constants"
	"github.com/vastrakart/vastrakart/internal/logger"
	"github.com/vastrakart/vastrakart/internal/models"
	"github.com/vastrakart/vastrakart/internal/queue"
	"github.com/vastrakart/vastrakart/internal/repository"

	"gorm.io/gorm"
)

// CreateCancelRequestInput is a customer-filed cancellation or refund request.
type CreateCancelRequestInput struct {
	StoreID    uint
	CustomerID uint
	OrderNo    string
	Type       string
	Reason     string
	Comments   string
}

// ReviewCancelRequestInput is the admin decision on a pending request.
type ReviewCancelRequestInput struct {
	RequestID uint
	Decision  string // approved / rejected
	Comments  string
}

// CancelRequestService runs the cancellation/refund workflow: customer files
// a request, admin approves or rejects, order status follows the decision.
type CancelRequestService struct {
	db               *gorm.DB
	requestRepo      repository.CancelRequestRepository
	orderRepo        repository.OrderRepository
	queueClient      *queue.Client
	refundWindowDays int
}

// NewCancelRequestService creates a cancellation workflow service.
func NewCancelRequestService(
	db *gorm.DB,
	requestRepo repository.CancelRequestRepository,
	orderRepo repository.OrderRepository,
	queueClient *queue.Client,
	refundWindowDays int,
) *CancelRequestService {
	if refundWindowDays <= 0 {
		refundWindowDays = 7
	}
	return &CancelRequestService{
		db:               db,
		requestRepo:      requestRepo,
		orderRepo:        orderRepo,
		queueClient:      queueClient,
		refundWindowDays: refundWindowDays,
	}
}

// Create validates preconditions and files the request. Cancel-type requests
// move the order to cancelled immediately; refund-type requests leave the
// order untouched until review.
func (s *CancelRequestService) Create(input CreateCancelRequestInput) (*models.CancelRequest, error) {
	requestType := strings.TrimSpace(input.Type)
	if requestType != constants.CancelRequestTypeCancel && requestType != constants.CancelRequestTypeRefund {
		return nil, ErrCancelTypeInvalid
	}
	if input.CustomerID == 0 {
		return nil, ErrNotOwner
	}

	order, err := s.orderRepo.GetByOrderNo(input.StoreID, input.OrderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.CustomerID == nil || *order.CustomerID != input.CustomerID {
		return nil, ErrNotOwner
	}

	now := time.Now()
	switch requestType {
	case constants.CancelRequestTypeRefund:
		if order.Status != constants.OrderStatusDelivered {
			return nil, ErrRefundStateInvalid
		}
		if !s.withinRefundWindow(order, now) {
			return nil, ErrRefundWindowExpired
		}
	case constants.CancelRequestTypeCancel:
		switch order.Status {
		case constants.OrderStatusPending, constants.OrderStatusProcessing, constants.OrderStatusOnHold:
		default:
			return nil, ErrCancelStateInvalid
		}
	}

	request := s.buildRequest(order, requestType, input.Reason, input.Comments, now)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		requestRepo := s.requestRepo.WithTx(tx)

		// The guard runs inside the transaction to narrow the race window
		// between concurrent submissions for the same order.
		exists, err := requestRepo.ExistsOpen(order.ID, requestType)
		if err != nil {
			return err
		}
		if exists {
			return ErrCancelRequestExists
		}
		if err := requestRepo.Create(request); err != nil {
			return err
		}

		if requestType == constants.CancelRequestTypeCancel {
			return s.orderRepo.WithTx(tx).Updates(order.ID, map[string]interface{}{
				"status":       constants.OrderStatusCancelled,
				"cancelled_at": now,
				"updated_at":   now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(request.ID, request.Status)
	return request, nil
}

// Review applies the admin decision. Request status change, order status
// mutation and review timestamp are one transaction.
func (s *CancelRequestService) Review(input ReviewCancelRequestInput) (*models.CancelRequest, error) {
	decision := strings.TrimSpace(input.Decision)
	if decision != constants.CancelRequestStatusApproved && decision != constants.CancelRequestStatusRejected {
		return nil, ErrReviewDecisionInvalid
	}

	request, err := s.requestRepo.GetByID(input.RequestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrCancelRequestNotFound
	}
	if request.Status != constants.CancelRequestStatusPending {
		return nil, ErrCancelRequestReviewed
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":      decision,
			"reviewed_at": now,
			"updated_at":  now,
		}
		if comments := strings.TrimSpace(input.Comments); comments != "" {
			updates["comments"] = comments
		}
		if err := s.requestRepo.WithTx(tx).Updates(request.ID, updates); err != nil {
			return err
		}

		orderRepo := s.orderRepo.WithTx(tx)
		if decision == constants.CancelRequestStatusApproved {
			orderUpdates := map[string]interface{}{
				"updated_at": now,
			}
			if request.Type == constants.CancelRequestTypeRefund {
				orderUpdates["status"] = constants.OrderStatusReturned
				orderUpdates["payment_status"] = constants.PaymentStatusRefunded
			} else {
				orderUpdates["status"] = constants.OrderStatusCancelled
				orderUpdates["cancelled_at"] = now
			}
			return orderRepo.Updates(request.OrderID, orderUpdates)
		}

		// Rejected cancel requests roll the order back to the status it held
		// when the request was filed. Refund rejections change nothing; the
		// order was never mutated.
		if request.Type == constants.CancelRequestTypeCancel && request.PreviousStatus != "" {
			return orderRepo.Updates(request.OrderID, map[string]interface{}{
				"status":       request.PreviousStatus,
				"cancelled_at": nil,
				"updated_at":   now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	request.Status = decision
	request.ReviewedAt = &now
	s.notify(request.ID, decision)
	return request, nil
}

// GetByID fetches a request.
func (s *CancelRequestService) GetByID(id uint) (*models.CancelRequest, error) {
	request, err := s.requestRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrCancelRequestNotFound
	}
	return request, nil
}

// List returns requests matching the filter.
func (s *CancelRequestService) List(filter repository.CancelRequestListFilter) ([]models.CancelRequest, int64, error) {
	return s.requestRepo.List(filter)
}

func (s *CancelRequestService) withinRefundWindow(order *models.Order, now time.Time) bool {
	base := order.UpdatedAt
	if order.DeliveredAt != nil {
		base = *order.DeliveredAt
	}
	deadline := base.Add(time.Duration(s.refundWindowDays) * 24 * time.Hour)
	return !now.After(deadline)
}

func (s *CancelRequestService) buildRequest(order *models.Order, requestType, reason, comments string, now time.Time) *models.CancelRequest {
	return &models.CancelRequest{
		OrderID:           order.ID,
		StoreID:           order.StoreID,
		Type:              requestType,
		Status:            constants.CancelRequestStatusPending,
		PreviousStatus:    order.Status,
		Reason:            strings.TrimSpace(reason),
		Comments:          strings.TrimSpace(comments),
		CustomerName:      order.CustomerName,
		CustomerEmail:     order.CustomerEmail,
		CustomerPhone:     order.CustomerPhone,
		ShippingAddress:   order.ShippingAddress,
		ShippingCity:      order.ShippingCity,
		ShippingState:     order.ShippingState,
		ShippingPincode:   order.ShippingPincode,
		RazorpayPaymentID: order.RazorpayPaymentID,
		TotalAmount:       order.TotalAmount,
		ItemsJSON:         snapshotItems(order.Items),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// snapshotItems serializes the order lines for the audit trail.
func snapshotItems(items []models.OrderItem) models.JSON {
	encoded := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		entry := map[string]interface{}{
			"product_id":   item.ProductID,
			"variant_id":   item.VariantID,
			"product_name": item.ProductName,
			"quantity":     item.Quantity,
			"unit_price":   item.UnitPrice.String(),
			"total_price":  item.TotalPrice.String(),
		}
		if len(item.Attributes) > 0 {
			if raw, err := json.Marshal(item.Attributes); err == nil {
				var decoded []interface{}
				if json.Unmarshal(raw, &decoded) == nil {
					entry["attributes"] = decoded
				}
			}
		}
		encoded = append(encoded, entry)
	}
	return models.JSON{"items": encoded}
}

func (s *CancelRequestService) notify(requestID uint, status string) {
	if err := s.queueClient.EnqueueCancelRequestEmail(queue.CancelRequestEmailPayload{
		RequestID: requestID,
		Status:    status,
	}); err != nil {
		logger.Warnw("cancel_request_email_enqueue_failed",
			"request_id", requestID,
			"status", status,
			"error", err,
		)
	}
}
