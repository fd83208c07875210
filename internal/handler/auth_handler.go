package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"escibridge/internal/service"
)

// AuthHandler issues supplier tokens.
type AuthHandler struct {
	auth service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type tokenRequest struct {
	SupplierID      int64  `json:"supplier_id" binding:"required"`
	StockLocationID int64  `json:"stock_location_id" binding:"required"`
	APIKey          string `json:"api_key" binding:"required"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Token exchanges a supplier's e-invoicing API key for a JWT scoped to one
// stock location.
func (h *AuthHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "supplier_id, stock_location_id and api_key are required")
		return
	}
	token, expiresAt, err := h.auth.IssueToken(c.Request.Context(), req.SupplierID, req.StockLocationID, req.APIKey)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, tokenResponse{Token: token, ExpiresAt: expiresAt})
}
