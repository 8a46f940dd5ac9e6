package public

import (
	"github.com/vastrakart/vastrakart/internal/http/response"
	"github.com/vastrakart/vastrakart/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest creates a storefront account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
	State    string `json:"state"`
}

// LoginRequest authenticates a storefront account.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a customer account.
func (h *Handler) Register(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		return
	}
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "name, email and password are required", err)
		return
	}

	customer, err := h.AuthService.RegisterCustomer(service.RegisterCustomerInput{
		StoreID:  storeID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		State:    req.State,
	})
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "registration failed")
		return
	}
	response.Success(c, gin.H{"customer": customer})
}

// Login authenticates a customer and issues a token.
func (h *Handler) Login(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		return
	}
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "email and password are required", err)
		return
	}

	customer, token, expiresAt, err := h.AuthService.CustomerLogin(storeID, req.Email, req.Password)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "login failed")
		return
	}
	response.Success(c, gin.H{
		"customer":   customer,
		"token":      token,
		"expires_at": expiresAt,
	})
}
