package admin

import (
	"strings"

	"github.com/vastrakart/vastrakart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CreateShipment books a carrier shipment for an order. The carrier call is
// best-effort; a failed booking is reported in the payload, not as an API
// error, so the operator can retry.
func (h *Handler) CreateShipment(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetByID(orderID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load order", err)
		return
	}
	if order == nil {
		respondError(c, response.CodeNotFound, "order not found", nil)
		return
	}

	result := h.ShipmentService.CreateForOrder(c.Request.Context(), order)
	response.Success(c, result)
}

// CancelShipment cancels a booked shipment by waybill.
func (h *Handler) CancelShipment(c *gin.Context) {
	waybill := strings.TrimSpace(c.Param("waybill"))
	if waybill == "" {
		respondError(c, response.CodeBadRequest, "waybill is required", nil)
		return
	}
	result := h.ShipmentService.Cancel(c.Request.Context(), waybill)
	response.Success(c, result)
}

// TrackShipment returns the carrier's latest status for a waybill.
func (h *Handler) TrackShipment(c *gin.Context) {
	waybill := strings.TrimSpace(c.Param("waybill"))
	if waybill == "" {
		respondError(c, response.CodeBadRequest, "waybill is required", nil)
		return
	}
	result := h.ShipmentService.Track(c.Request.Context(), waybill)
	response.Success(c, result)
}
