package handlers

import (
	"net/http"

	"restaurant_orders/internal/services"

	"github.com/gin-gonic/gin"
)

// RequireAuth guards catalog-management mutations. Order, kitchen and table
// operations are deliberately left open for floor staff.
func RequireAuth(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := authService.Authenticate(bearerToken(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set("session", session)
		c.Next()
	}
}
