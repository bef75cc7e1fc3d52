package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"bloghub-backend/internal/domains/blog/model"
	"bloghub-backend/internal/domains/blog/view"
	"bloghub-backend/internal/shared/middleware"
	"bloghub-backend/internal/shared/response"
)

// mapBlogError maps blog error to HTTP status code
func mapBlogError(err error) (int, string) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, model.ErrBlogNotFound), errors.Is(err, view.ErrNotLoaded):
		return http.StatusNotFound, "BLOG_NOT_FOUND"
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, model.ErrAdminRequired):
		return http.StatusForbidden, "ADMIN_REQUIRED"
	case errors.Is(err, model.ErrConfirmationRequired):
		return http.StatusPreconditionRequired, "CONFIRMATION_REQUIRED"
	case errors.Is(err, model.ErrSlugExhausted), errors.Is(err, model.ErrDuplicateSlug):
		return http.StatusConflict, "SLUG_CONFLICT"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// respondFailedLoad writes a failed view state with its mapped status.
func respondFailedLoad(c *gin.Context, cause error, state interface{}) {
	status, code := mapBlogError(cause)
	if status >= http.StatusInternalServerError {
		log.Error().Err(cause).Str("request_id", c.GetString(middleware.ContextKeyRequestID)).Msg("View load failed")
	}
	response.ErrorWithDetails(c, status, code, cause.Error(), state)
}

// respondFailedMutation writes a failed mutation. Validation failures carry field details.
func respondFailedMutation(c *gin.Context, m view.Mutation) {
	status, code := mapBlogError(m.Err)
	if verrs, ok := m.ValidationErrors(); ok {
		response.ErrorWithDetails(c, status, code, "Validation failed", verrs)
		return
	}
	if status >= http.StatusInternalServerError {
		log.Error().Err(m.Err).Str("kind", m.Kind).Str("request_id", c.GetString(middleware.ContextKeyRequestID)).Msg("Blog mutation failed")
	}
	response.ErrorWithDetails(c, status, code, m.Reason, m)
}

func currentActor(c *gin.Context) (model.Actor, bool) {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return model.Actor{}, false
	}
	return model.Actor{ID: sess.UserID, IsAdmin: sess.IsAdmin()}, true
}
