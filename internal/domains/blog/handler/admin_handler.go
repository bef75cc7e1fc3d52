package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bloghub-backend/internal/domains/blog/model"
	"bloghub-backend/internal/domains/blog/service"
	"bloghub-backend/internal/domains/blog/view"
	"bloghub-backend/internal/shared/response"
)

// AdminBlogHandler - admin panel. Route group đã có AuthMiddleware + AdminMiddleware,
// NewAdminView kiểm tra lại is_admin.
type AdminBlogHandler struct {
	blogService service.Service
}

func NewAdminBlogHandler(blogService service.Service) *AdminBlogHandler {
	return &AdminBlogHandler{blogService: blogService}
}

func (h *AdminBlogHandler) adminView(c *gin.Context) (*view.AdminView, bool) {
	actor, ok := currentActor(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return nil, false
	}

	v, err := view.NewAdminView(h.blogService, actor)
	if err != nil {
		status, code := mapBlogError(err)
		response.ErrorResponse(c, status, code, err.Error())
		return nil, false
	}
	return v, true
}

// respondMutation: success → mutation + refreshed list
func respondMutation(c *gin.Context, v *view.AdminView, m view.Mutation, successStatus int) {
	if m.Status != view.MutationSuccess {
		respondFailedMutation(c, m)
		return
	}
	response.Success(c, successStatus, gin.H{
		"mutation": m,
		"state":    v.State(),
	})
}

// ListBlogs - GET /api/v1/admin/blogs
func (h *AdminBlogHandler) ListBlogs(c *gin.Context) {
	v, ok := h.adminView(c)
	if !ok {
		return
	}

	state := v.Load(c.Request.Context())
	if state.Status == view.StatusFailed {
		respondFailedLoad(c, state.Cause, state)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, state, &response.Meta{Total: len(state.Posts)})
}

// CreateBlog - POST /api/v1/admin/blogs
func (h *AdminBlogHandler) CreateBlog(c *gin.Context) {
	v, ok := h.adminView(c)
	if !ok {
		return
	}

	var req model.BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	respondMutation(c, v, v.Create(c.Request.Context(), req), http.StatusCreated)
}

// UpdateBlog - PUT /api/v1/admin/blogs/:id
func (h *AdminBlogHandler) UpdateBlog(c *gin.Context) {
	v, ok := h.adminView(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid blog ID")
		return
	}

	var req model.BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	respondMutation(c, v, v.Update(c.Request.Context(), id, req), http.StatusOK)
}

// DeleteBlog - DELETE /api/v1/admin/blogs/:id?confirm=true
func (h *AdminBlogHandler) DeleteBlog(c *gin.Context) {
	v, ok := h.adminView(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid blog ID")
		return
	}

	confirmed, _ := strconv.ParseBool(c.Query("confirm"))

	respondMutation(c, v, v.Delete(c.Request.Context(), id, confirmed), http.StatusOK)
}
