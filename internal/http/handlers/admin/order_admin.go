package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	handlershared "github.com/vastrakart/vastrakart/internal/http/handlers/shared"
	"github.com/vastrakart/vastrakart/internal/http/response"
	"github.com/vastrakart/vastrakart/internal/repository"
	"github.com/vastrakart/vastrakart/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest moves an order through its lifecycle. Override
// lets an operator mutate a cancelled or returned order deliberately.
type UpdateOrderStatusRequest struct {
	Status   string `json:"status" binding:"required"`
	Override bool   `json:"override"`
}

// UpdatePaymentStatusRequest sets the payment state.
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// UpdateTrackingRequest sets the carrier tracking number.
type UpdateTrackingRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"required"`
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}

// ListOrders lists orders with filters.
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:          page,
		PageSize:      pageSize,
		Status:        strings.TrimSpace(c.Query("status")),
		PaymentStatus: strings.TrimSpace(c.Query("payment_status")),
		OrderNo:       strings.TrimSpace(c.Query("order_no")),
		CustomerEmail: strings.TrimSpace(c.Query("customer_email")),
	}
	if storeID, err := strconv.ParseUint(c.Query("store_id"), 10, 64); err == nil {
		filter.StoreID = uint(storeID)
	}
	if from, err := time.Parse("2006-01-02", c.Query("created_from")); err == nil {
		filter.CreatedFrom = &from
	}
	if to, err := time.Parse("2006-01-02", c.Query("created_to")); err == nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.CreatedTo = &end
	}

	orders, total, err := h.OrderService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list orders", err)
		return
	}
	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, gin.H{"orders": orders}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetOrder returns one order with its items.
func (h *Handler) GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetByID(orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load order", err)
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatus sets the fulfillment status.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "status is required", err)
		return
	}

	if err := h.OrderService.UpdateStatus(orderID, req.Status, req.Override); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "unknown order status", nil)
		case errors.Is(err, service.ErrOrderTerminal):
			respondError(c, response.CodeConflict, "order is cancelled or returned; pass override to change it anyway", nil)
		default:
			respondError(c, response.CodeInternal, "failed to update order status", err)
		}
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// UpdatePaymentStatus sets the payment state.
func (h *Handler) UpdatePaymentStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "payment_status is required", err)
		return
	}

	if err := h.OrderService.UpdatePaymentStatus(orderID, req.PaymentStatus); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "unknown payment status", nil)
		default:
			respondError(c, response.CodeInternal, "failed to update payment status", err)
		}
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// UpdateTracking sets the tracking number.
func (h *Handler) UpdateTracking(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "tracking_number is required", err)
		return
	}

	if err := h.OrderService.UpdateTracking(orderID, req.TrackingNumber); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to update tracking number", err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// DeleteOrder always refuses. Orders are settlement records; cancellation is
// a status change, not an erasure.
func (h *Handler) DeleteOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.OrderService.Delete(orderID); err != nil {
		if errors.Is(err, service.ErrOperationNotAllowed) {
			respondError(c, response.CodeConflict, "orders cannot be deleted; cancel them instead", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to delete order", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
