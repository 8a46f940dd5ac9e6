package admin

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/vastrakart/vastrakart/internal/http/handlers/shared"
	"github.com/vastrakart/vastrakart/internal/http/response"
	"github.com/vastrakart/vastrakart/internal/repository"
	"github.com/vastrakart/vastrakart/internal/service"

	"github.com/gin-gonic/gin"
)

// ReviewCancelRequestRequest decides a pending cancellation/refund request.
type ReviewCancelRequestRequest struct {
	Status   string `json:"status" binding:"required"` // approved / rejected
	Comments string `json:"comments"`
}

// ListCancelRequests lists cancellation requests with filters.
func (h *Handler) ListCancelRequests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.CancelRequestListFilter{
		Page:     page,
		PageSize: pageSize,
		Type:     strings.TrimSpace(c.Query("type")),
		Status:   strings.TrimSpace(c.Query("status")),
	}
	if storeID, err := strconv.ParseUint(c.Query("store_id"), 10, 64); err == nil {
		filter.StoreID = uint(storeID)
	}
	if orderID, err := strconv.ParseUint(c.Query("order_id"), 10, 64); err == nil {
		filter.OrderID = uint(orderID)
	}

	requests, total, err := h.CancelRequestService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list requests", err)
		return
	}
	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, gin.H{"requests": requests}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetCancelRequest returns one request with its order.
func (h *Handler) GetCancelRequest(c *gin.Context) {
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	request, err := h.CancelRequestService.GetByID(requestID)
	if err != nil {
		if errors.Is(err, service.ErrCancelRequestNotFound) {
			respondError(c, response.CodeNotFound, "request not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load request", err)
		return
	}
	response.Success(c, request)
}

// ReviewCancelRequest approves or rejects a pending request. Approval moves
// the order to cancelled or returned; rejecting a cancel-type request
// restores the order's previous status.
func (h *Handler) ReviewCancelRequest(c *gin.Context) {
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ReviewCancelRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "status is required", err)
		return
	}

	request, err := h.CancelRequestService.Review(service.ReviewCancelRequestInput{
		RequestID: requestID,
		Decision:  req.Status,
		Comments:  req.Comments,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCancelRequestNotFound):
			respondError(c, response.CodeNotFound, "request not found", nil)
		case errors.Is(err, service.ErrReviewDecisionInvalid):
			respondError(c, response.CodeBadRequest, "status must be approved or rejected", nil)
		case errors.Is(err, service.ErrCancelRequestReviewed):
			respondError(c, response.CodeConflict, "request has already been reviewed", nil)
		default:
			respondError(c, response.CodeInternal, "failed to review request", err)
		}
		return
	}
	response.Success(c, gin.H{
		"request_id": request.ID,
		"status":     request.Status,
	})
}
