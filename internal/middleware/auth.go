package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"escibridge/internal/domain"
	"escibridge/internal/service"
)

const (
	ContextKeySupplierID      = "supplier_id"
	ContextKeyStockLocationID = "stock_location_id"
	ContextKeyClaims          = "claims"
)

// AuthMiddleware returns Gin middleware that validates supplier tokens and
// injects the authenticated supplier and stock location ids.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := authService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextKeySupplierID, claims.SupplierID)
		c.Set(ContextKeyStockLocationID, claims.StockLocationID)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetSupplierID extracts the authenticated supplier id from the Gin context.
func GetSupplierID(c *gin.Context) (int64, error) {
	val, exists := c.Get(ContextKeySupplierID)
	if !exists {
		return 0, domain.ErrUnauthorized
	}
	return val.(int64), nil
}

// GetStockLocationID extracts the authenticated stock location id from the
// Gin context.
func GetStockLocationID(c *gin.Context) (int64, error) {
	val, exists := c.Get(ContextKeyStockLocationID)
	if !exists {
		return 0, domain.ErrUnauthorized
	}
	return val.(int64), nil
}
