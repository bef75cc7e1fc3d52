package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bloghub-backend/internal/domains/blog/model"
	"bloghub-backend/internal/domains/blog/service"
	"bloghub-backend/internal/domains/blog/view"
	"bloghub-backend/internal/shared/response"
)

// BlogHandler phục vụ reader views: list, detail, like, comment
type BlogHandler struct {
	blogService service.Service
}

func NewBlogHandler(blogService service.Service) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// ListBlogs - GET /api/v1/blogs
func (h *BlogHandler) ListBlogs(c *gin.Context) {
	state := view.NewListView(h.blogService).Load(c.Request.Context())
	if state.Status == view.StatusFailed {
		respondFailedLoad(c, state.Cause, state)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, state, &response.Meta{Total: len(state.Posts)})
}

// GetBlog - GET /api/v1/blogs/:slug
func (h *BlogHandler) GetBlog(c *gin.Context) {
	state := view.NewDetailView(h.blogService).Load(c.Request.Context(), c.Param("slug"))
	if state.Status == view.StatusFailed {
		respondFailedLoad(c, state.Cause, state)
		return
	}

	response.Success(c, http.StatusOK, state)
}

// LikeBlog - POST /api/v1/blogs/:slug/like
func (h *BlogHandler) LikeBlog(c *gin.Context) {
	ctx := c.Request.Context()

	v := view.NewDetailView(h.blogService)
	if state := v.Load(ctx, c.Param("slug")); state.Status == view.StatusFailed {
		respondFailedLoad(c, state.Cause, state)
		return
	}

	m := v.Like(ctx)
	if m.Status != view.MutationSuccess {
		respondFailedMutation(c, m)
		return
	}

	response.Success(c, http.StatusOK, model.LikeResponse{Likes: v.State().Post.Likes})
}

// AddComment - POST /api/v1/blogs/:slug/comments
func (h *BlogHandler) AddComment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	ctx := c.Request.Context()
	v := view.NewDetailView(h.blogService)
	if state := v.Load(ctx, c.Param("slug")); state.Status == view.StatusFailed {
		respondFailedLoad(c, state.Cause, state)
		return
	}

	m := v.Comment(ctx, actor, req.Content)
	if m.Status != view.MutationSuccess {
		respondFailedMutation(c, m)
		return
	}

	response.Success(c, http.StatusCreated, v.State())
}

// Navigation - GET /api/v1/navigation
func (h *BlogHandler) Navigation(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": view.Navigation(actor)})
}
