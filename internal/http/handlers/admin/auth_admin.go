package admin

import (
	"errors"

	"github.com/vastrakart/vastrakart/internal/http/response"
	"github.com/vastrakart/vastrakart/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest authenticates a backoffice operator.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an operator and issues a token.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "username and password are required", err)
		return
	}

	admin, token, expiresAt, err := h.AuthService.AdminLogin(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthFailed) {
			respondError(c, response.CodeUnauthorized, "invalid username or password", nil)
			return
		}
		respondError(c, response.CodeInternal, "login failed", err)
		return
	}
	response.Success(c, gin.H{
		"admin": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
		},
		"token":      token,
		"expires_at": expiresAt,
	})
}
