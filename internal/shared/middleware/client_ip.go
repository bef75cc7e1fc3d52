package middleware

import (
	"github.com/gin-gonic/gin"

	"bloghub-backend/internal/shared/utils"
)

const ContextKeyClientIP = "client_ip"

// ClientIPMiddleware resolves the client IP once (proxy-aware) for the
// request logger and handlers.
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyClientIP, utils.ExtractClientIP(c))
		c.Next()
	}
}
