package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bloghub-backend/internal/infrastructure/storage"
	"bloghub-backend/internal/shared/middleware"
	"bloghub-backend/internal/shared/response"
	"bloghub-backend/pkg/container"
)

const apiPrefix = "/api/v1"

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(c.Metrics),
		middleware.CORS(c.Config.App.CORSOrigins),
		middleware.ClientIPMiddleware(),
	)

	requireAuth := middleware.AuthMiddleware(c.AuthService)

	v1 := router.Group(apiPrefix)
	{
		v1.GET("/health", healthCheckHandler(c))
		v1.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.Metrics.Registry, promhttp.HandlerOpts{})))

		setupAuthRoutes(v1, c, requireAuth)
		setupBlogRoutes(v1, c, requireAuth)
		setupAdminRoutes(v1, c, requireAuth)
	}

	setupAliasRoutes(router, c, requireAuth)

	if c.MediaStore != nil {
		router.GET("/media/*key", mediaHandler(c.MediaStore))
	}

	router.NoRoute(noRouteHandler)

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container, requireAuth gin.HandlerFunc) {
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", c.AuthHandler.SignUp)
		auth.POST("/signin", c.AuthHandler.SignIn)
		auth.POST("/signout", requireAuth, c.AuthHandler.SignOut)
		auth.GET("/session", requireAuth, c.AuthHandler.GetSession)
	}
}

// ========================================
// BLOG ROUTES (signed-in users)
// ========================================
func setupBlogRoutes(v1 *gin.RouterGroup, c *container.Container, requireAuth gin.HandlerFunc) {
	v1.GET("/navigation", requireAuth, c.BlogHandler.Navigation)

	blogs := v1.Group("/blogs", requireAuth)
	{
		blogs.GET("", c.BlogHandler.ListBlogs)
		blogs.GET("/:slug", c.BlogHandler.GetBlog)
		blogs.POST("/:slug/like", c.BlogHandler.LikeBlog)
		blogs.POST("/:slug/comments", c.BlogHandler.AddComment)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container, requireAuth gin.HandlerFunc) {
	admin := v1.Group("/admin", requireAuth, middleware.AdminMiddleware())
	{
		admin.GET("/blogs", c.AdminBlogHandler.ListBlogs)
		admin.POST("/blogs", c.AdminBlogHandler.CreateBlog)
		admin.PUT("/blogs/:id", c.AdminBlogHandler.UpdateBlog)
		admin.DELETE("/blogs/:id", c.AdminBlogHandler.DeleteBlog)

		admin.POST("/uploads", c.UploadHandler.Upload)
	}
}

// ========================================
// ALIASES & FALLBACK
// ========================================

// "/" là list view, "/blogs/:slug" là detail view
func setupAliasRoutes(router *gin.Engine, c *container.Container, requireAuth gin.HandlerFunc) {
	router.GET("/", requireAuth, c.BlogHandler.ListBlogs)
	router.GET("/blogs/:slug", requireAuth, c.BlogHandler.GetBlog)
}

// noRouteHandler: unknown API path -> JSON 404, mọi path khác -> redirect "/"
func noRouteHandler(c *gin.Context) {
	path := c.Request.URL.Path
	if path == apiPrefix || strings.HasPrefix(path, apiPrefix+"/") {
		response.NotFound(c, "route not found")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		failures := c.Health(ctx.Request.Context())
		if len(failures) > 0 {
			response.ErrorWithDetails(ctx, http.StatusServiceUnavailable, "UNHEALTHY", "dependency check failed", failures)
			return
		}

		response.Success(ctx, http.StatusOK, gin.H{
			"status":    "healthy",
			"driver":    c.Config.Store.Driver,
			"version":   c.Config.App.Version,
			"timestamp": time.Now().UTC(),
		})
	}
}

// mediaHandler serve uploads khi STORE_DRIVER=memory
func mediaHandler(store *storage.MemoryStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimPrefix(c.Param("key"), "/")
		data, contentType, err := store.Download(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, storage.ErrObjectNotFound) {
				response.NotFound(c, "object not found")
				return
			}
			response.InternalServerError(c, "failed to read object")
			return
		}
		c.Data(http.StatusOK, contentType, data)
	}
}
