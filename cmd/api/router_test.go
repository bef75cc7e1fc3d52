package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub-backend/internal/config"
	"bloghub-backend/pkg/container"
)

func memoryConfig() *config.Config {
	return &config.Config{
		App:   config.AppConfig{Name: "BlogHub API", Environment: "test", Port: "8080", Version: "test"},
		Store: config.StoreConfig{Driver: container.DriverMemory},
		JWT:   config.JWTConfig{Secret: "test-secret", AccessTokenExpiry: 60},
		Auth:  config.AuthConfig{AdminEmails: []string{"admin@example.com"}},
		Upload: config.UploadConfig{
			MaxBytes: 1 << 20, MaxWidth: 1600, Naming: "uuid", CacheControl: "max-age=3600",
		},
		Slug: config.SlugConfig{MaxAttempts: 1000},
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	c, err := container.NewContainer(ctx, memoryConfig())
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)
	require.NoError(t, c.Sessions.Start(ctx))

	return SetupRouter(c)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signUp(t *testing.T, r http.Handler, email string) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"email": email, "password": "password123", "full_name": "Test User",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var auth struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &auth))
	require.NotEmpty(t, auth.AccessToken)
	return auth.AccessToken
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"driver":"memory"`)
}

func TestRouter_Metrics(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, http.MethodGet, "/api/v1/health", "", nil)

	w := do(t, r, http.MethodGet, "/api/v1/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bloghub_http_requests_total")
}

func TestRouter_Fallbacks(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	w = do(t, r, http.MethodGet, "/somewhere/else", "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestRouter_BlogsRequireSession(t *testing.T) {
	r := newTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodGet, "/api/v1/blogs", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodGet, "/", "", nil).Code)
}

func TestRouter_AdminFlow(t *testing.T) {
	r := newTestRouter(t)
	admin := signUp(t, r, "admin@example.com")
	reader := signUp(t, r, "reader@example.com")

	// non-admin bị chặn
	w := do(t, r, http.MethodPost, "/api/v1/admin/blogs", reader, gin.H{"title": "x", "content": "<p>x</p>"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/admin/blogs", admin, gin.H{
		"title": "Hello World", "content": "<p>First post</p>",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// alias route và API route trả cùng một post
	w = do(t, r, http.MethodGet, "/blogs/hello-world", reader, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"slug":"hello-world"`)

	w = do(t, r, http.MethodPost, "/api/v1/blogs/hello-world/like", reader, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"likes":1`)

	w = do(t, r, http.MethodGet, "/api/v1/navigation", reader, nil)
	assert.NotContains(t, w.Body.String(), `"admin"`)
	w = do(t, r, http.MethodGet, "/api/v1/navigation", admin, nil)
	assert.Contains(t, w.Body.String(), `"admin"`)

	w = do(t, r, http.MethodGet, "/", reader, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}
