package public

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/vastrakart/vastrakart/internal/http/handlers/shared"
	"github.com/vastrakart/vastrakart/internal/http/response"
	"github.com/vastrakart/vastrakart/internal/service"

	"github.com/gin-gonic/gin"
)

// ListMyOrders returns the calling customer's orders, newest first.
func (h *Handler) ListMyOrders(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		return
	}
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListByCustomer(storeID, customerID, page, pageSize)
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

// GetMyOrder returns one of the caller's orders by order number.
func (h *Handler) GetMyOrder(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		return
	}
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	orderNo := strings.TrimSpace(c.Param("order_no"))
	if orderNo == "" {
		respondError(c, response.CodeBadRequest, "order number is required", nil)
		return
	}

	order, err := h.OrderService.GetByOrderNo(storeID, orderNo)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load order", err)
		return
	}
	if order.CustomerID == nil || *order.CustomerID != customerID {
		respondError(c, response.CodeForbidden, "this order belongs to another account", nil)
		return
	}
	response.Success(c, order)
}
