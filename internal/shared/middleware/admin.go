package middleware

import (
	"github.com/gin-gonic/gin"

	"bloghub-backend/internal/shared/response"
)

// AdminMiddleware checks profile.is_admin. Must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).IsAdmin() {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}
		c.Next()
	}
}
