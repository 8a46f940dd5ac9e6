package public

import (
	"strconv"
	"time"

	"github.com/vastrakart/vastrakart/internal/http/response"
	"github.com/vastrakart/vastrakart/internal/models"
	"github.com/vastrakart/vastrakart/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest adds a product to the cart.
type AddCartItemRequest struct {
	ProductID  uint                  `json:"product_id" binding:"required"`
	VariantID  uint                  `json:"variant_id"`
	Quantity   int                   `json:"quantity" binding:"required"`
	Attributes models.AttributePairs `json:"attributes"`
}

// UpdateCartItemRequest changes a line quantity.
type UpdateCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	VariantID uint `json:"variant_id"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// respondCartState returns the current cart with totals; every cart mutation
// answers with the same shape so clients never need a follow-up fetch.
func (h *Handler) respondCartState(c *gin.Context, storeID uint, cartKey string) {
	summary, err := h.CartService.Summary(storeID, cartKey, time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load cart", err)
		return
	}
	response.Success(c, gin.H{
		"cart":  summary,
		"total": summary.Total,
		"count": summary.ItemCount,
	})
}

// GetCart returns the cart with totals.
func (h *Handler) GetCart(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		return
	}
	h.respondCartState(c, storeID, resolveCartKey(c))
}

// AddCartItem adds a product (or merges into an existing line).
func (h *Handler) AddCartItem(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	cartKey := resolveCartKey(c)
	if err := h.CartService.AddItem(service.AddCartItemInput{
		StoreID:    storeID,
		CartKey:    cartKey,
		ProductID:  req.ProductID,
		VariantID:  req.VariantID,
		Quantity:   req.Quantity,
		Attributes: req.Attributes,
	}); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to add item to cart")
		return
	}
	h.respondCartState(c, storeID, cartKey)
}

// UpdateCartItem sets a line quantity.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	cartKey := resolveCartKey(c)
	if err := h.CartService.UpdateQuantity(storeID, cartKey, req.ProductID, req.VariantID, req.Quantity); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to update cart item")
		return
	}
	h.respondCartState(c, storeID, cartKey)
}

// DeleteCartItem removes a line.
func (h *Handler) DeleteCartItem(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	variantID, _ := strconv.ParseUint(c.Query("variant_id"), 10, 64)

	cartKey := resolveCartKey(c)
	if err := h.CartService.RemoveItem(storeID, cartKey, uint(productID), uint(variantID)); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to remove cart item")
		return
	}
	h.respondCartState(c, storeID, cartKey)
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		return
	}
	cartKey := resolveCartKey(c)
	if err := h.CartService.Clear(storeID, cartKey); err != nil {
		respondError(c, response.CodeInternal, "failed to clear cart", err)
		return
	}
	h.respondCartState(c, storeID, cartKey)
}
