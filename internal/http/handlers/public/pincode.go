package public

import (
	"strings"

	"github.com/vastrakart/vastrakart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CheckPincode asks the carrier whether a destination pincode is serviceable.
func (h *Handler) CheckPincode(c *gin.Context) {
	pincode := strings.TrimSpace(c.Param("pincode"))
	if len(pincode) != 6 {
		respondError(c, response.CodeBadRequest, "pincode must be 6 digits", nil)
		return
	}

	result, err := h.ShipmentService.CheckPincode(c.Request.Context(), pincode)
	if err != nil {
		respondError(c, response.CodeBadGateway, "pincode check is temporarily unavailable", err)
		return
	}
	response.Success(c, result)
}
