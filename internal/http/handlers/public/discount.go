package public

import (
	"strings"
	"time"

	"github.com/vastrakart/vastrakart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// DiscountRequest applies or removes a discount code on the cart.
type DiscountRequest struct {
	Action string `json:"action" binding:"required"` // apply / remove
	Code   string `json:"code"`
}

// ApplyOrRemoveDiscount mutates the cart's discount association and returns
// the repriced cart.
func (h *Handler) ApplyOrRemoveDiscount(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		return
	}
	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	cartKey := resolveCartKey(c)

	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case "apply":
		if strings.TrimSpace(req.Code) == "" {
			respondError(c, response.CodeBadRequest, "discount code is required", nil)
			return
		}
		summary, err := h.CartService.ApplyDiscount(storeID, cartKey, req.Code, time.Now())
		if err != nil {
			respondWithMappedError(c, err, discountErrorRules, response.CodeInternal, "failed to apply discount")
			return
		}
		response.Success(c, gin.H{
			"cart":            summary,
			"discount_amount": summary.DiscountAmount,
			"total":           summary.Total,
		})
	case "remove":
		summary, err := h.CartService.RemoveDiscount(storeID, cartKey, time.Now())
		if err != nil {
			respondError(c, response.CodeInternal, "failed to remove discount", err)
			return
		}
		response.Success(c, gin.H{
			"cart":            summary,
			"discount_amount": summary.DiscountAmount,
			"total":           summary.Total,
		})
	default:
		respondError(c, response.CodeBadRequest, "action must be apply or remove", nil)
	}
}
