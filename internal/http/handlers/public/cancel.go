package public

import (
	"github.com/vastrakart/vastrakart/internal/http/response"
	"github.com/vastrakart/vastrakart/internal/service"

	"github.com/gin-gonic/gin"
)

// CancelRequestRequest files a cancellation or refund request for an order.
type CancelRequestRequest struct {
	OrderNumber string `json:"order_number" binding:"required"`
	Type        string `json:"type" binding:"required"` // cancel / refund
	Reason      string `json:"reason"`
	Comments    string `json:"comments"`
}

// CreateCancelRequest files a request against one of the caller's orders.
func (h *Handler) CreateCancelRequest(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		return
	}
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req CancelRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	request, err := h.CancelRequestService.Create(service.CreateCancelRequestInput{
		StoreID:    storeID,
		CustomerID: customerID,
		OrderNo:    req.OrderNumber,
		Type:       req.Type,
		Reason:     req.Reason,
		Comments:   req.Comments,
	})
	if err != nil {
		respondWithMappedError(c, err, cancelRequestErrorRules, response.CodeInternal, "failed to file the request")
		return
	}
	response.SuccessWithMsg(c, "request submitted", gin.H{
		"request_id": request.ID,
		"status":     request.Status,
		"type":       request.Type,
	})
}
