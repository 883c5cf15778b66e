// internal/middleware/permissions.go

package middleware

import (
	"net/http"

	"github.com/BijayDhakal25/citizen-compass-app/internal/models"

	"github.com/gin-gonic/gin"
)

// RequireRole guards an endpoint with a minimum role in the
// citizen < staff < admin hierarchy. AuthMiddleware must run first.
func RequireRole(minRole models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleInterface, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "User not authenticated",
			})
			c.Abort()
			return
		}

		roleStr, ok := roleInterface.(string)
		if !ok || roleStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid user role",
			})
			c.Abort()
			return
		}

		userRole := models.UserRole(roleStr)
		if !userRole.IsValid() {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Invalid role",
			})
			c.Abort()
			return
		}

		if !userRole.IsHigherOrEqual(minRole) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":     "Insufficient permissions",
				"required":  minRole.String(),
				"user_role": roleStr,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
