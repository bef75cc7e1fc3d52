package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"bloghub-backend/internal/domains/auth/model"
	"bloghub-backend/internal/domains/auth/service"
	"bloghub-backend/internal/shared/middleware"
	"bloghub-backend/internal/shared/response"
)

type AuthHandler struct {
	authService service.Service
}

func NewAuthHandler(authService service.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignUp - POST /api/v1/auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req model.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.authService.SignUp(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// SignIn - POST /api/v1/auth/signin
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req model.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.authService.SignIn(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// SignOut - POST /api/v1/auth/signout
func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.authService.SignOut(c.Request.Context(), middleware.CurrentSession(c)); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Signed out"})
}

// GetSession - GET /api/v1/auth/session
func (h *AuthHandler) GetSession(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		response.Unauthorized(c, model.ErrUnauthenticated.Error())
		return
	}

	response.Success(c, http.StatusOK, model.SessionResponse{
		SessionID: sess.ID,
		Profile:   sess.Profile,
		ExpiresAt: sess.ExpiresAt,
	})
}

func (h *AuthHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ValidationError(c, verrs)
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, model.ErrEmailTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, model.ErrUnauthenticated),
		errors.Is(err, model.ErrSessionNotFound),
		errors.Is(err, model.ErrInvalidToken):
		response.Unauthorized(c, err.Error())
	default:
		log.Error().Err(err).Str("request_id", c.GetString(middleware.ContextKeyRequestID)).Msg("Auth request failed")
		response.InternalServerError(c, "Internal server error")
	}
}
