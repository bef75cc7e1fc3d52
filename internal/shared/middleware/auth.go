package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bloghub-backend/internal/domains/auth/model"
	"bloghub-backend/internal/domains/auth/session"
	"bloghub-backend/internal/shared/response"
)

const ContextKeySession = "session"

// Authenticator resolves a bearer token to a session (auth service).
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*session.Session, error)
}

// AuthMiddleware - xác thực Bearer token, gắn session vào request context
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		// "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		sess, err := auth.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, model.ErrInvalidToken), errors.Is(err, model.ErrSessionNotFound), errors.Is(err, model.ErrProfileNotFound):
				response.Unauthorized(c, err.Error())
			default:
				log.Error().Err(err).Str("request_id", c.GetString(ContextKeyRequestID)).Msg("Authentication failed")
				response.ErrorResponse(c, http.StatusServiceUnavailable, "AUTH_UNAVAILABLE", "authentication backend unavailable")
			}
			c.Abort()
			return
		}

		c.Set(ContextKeySession, sess)
		c.Request = c.Request.WithContext(session.WithContext(c.Request.Context(), sess))
		c.Next()
	}
}

// CurrentSession returns the session set by AuthMiddleware, or nil.
func CurrentSession(c *gin.Context) *session.Session {
	return session.FromContext(c.Request.Context())
}
