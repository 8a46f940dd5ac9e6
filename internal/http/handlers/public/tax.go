package public

import (
	"strings"

	"github.com/vastrakart/vastrakart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// TaxCalculationRequest asks for the GST breakdown of the current cart when
// delivered to the given state.
type TaxCalculationRequest struct {
	State string `json:"state" binding:"required"`
}

// CalculateTax returns the itemized CGST/SGST/IGST breakdown for the cart.
func (h *Handler) CalculateTax(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		return
	}
	var req TaxCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "state is required", err)
		return
	}
	buyerState := strings.TrimSpace(req.State)
	if buyerState == "" {
		respondError(c, response.CodeBadRequest, "state is required", nil)
		return
	}

	summary, err := h.CartService.TaxSummary(storeID, resolveCartKey(c), getSellerState(c), buyerState)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to calculate tax", err)
		return
	}
	response.Success(c, summary)
}
