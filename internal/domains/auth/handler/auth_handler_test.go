package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub-backend/internal/domains/auth/repository"
	"bloghub-backend/internal/domains/auth/service"
	"bloghub-backend/internal/domains/auth/session"
	"bloghub-backend/internal/infrastructure/cache"
	"bloghub-backend/internal/shared/middleware"
	"bloghub-backend/pkg/jwt"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := session.NewManager(session.NewStore(cache.NewMemoryCache()), time.Hour)
	require.NoError(t, sessions.Start(context.Background()))
	svc := service.NewAuthService(repository.NewMemoryRepository(), sessions, jwt.NewManager("secret"), nil)
	h := NewAuthHandler(svc)

	r := gin.New()
	r.POST("/auth/signup", h.SignUp)
	r.POST("/auth/signin", h.SignIn)
	authed := r.Group("/auth", middleware.AuthMiddleware(svc))
	authed.POST("/signout", h.SignOut)
	authed.GET("/session", h.GetSession)
	return r
}

func do(r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestAuthFlow(t *testing.T) {
	r := setupRouter(t)

	w, env := do(r, http.MethodPost, "/auth/signup", "", gin.H{
		"email": "reader@example.com", "password": "password123", "full_name": "Reader",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var signed struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &signed))
	require.NotEmpty(t, signed.AccessToken)

	w, env = do(r, http.MethodGet, "/auth/session", signed.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "reader@example.com")

	w, _ = do(r, http.MethodPost, "/auth/signout", signed.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(r, http.MethodGet, "/auth/session", signed.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignUp_Validation(t *testing.T) {
	r := setupRouter(t)

	w, env := do(r, http.MethodPost, "/auth/signup", "", gin.H{"email": "nope", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestSignUp_PasswordOverBcryptLimit(t *testing.T) {
	r := setupRouter(t)

	w, env := do(r, http.MethodPost, "/auth/signup", "", gin.H{
		"email": "long@example.com", "password": strings.Repeat("p", 100),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	// 72 bytes vẫn hợp lệ
	w, _ = do(r, http.MethodPost, "/auth/signup", "", gin.H{
		"email": "edge@example.com", "password": strings.Repeat("p", 72),
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestSignIn_WrongPassword(t *testing.T) {
	r := setupRouter(t)

	do(r, http.MethodPost, "/auth/signup", "", gin.H{"email": "a@example.com", "password": "password123"})

	w, _ := do(r, http.MethodPost, "/auth/signin", "", gin.H{"email": "a@example.com", "password": "password999"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(r, http.MethodPost, "/auth/signup", "", gin.H{"email": "a@example.com", "password": "password123"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSession_MissingToken(t *testing.T) {
	r := setupRouter(t)

	w, _ := do(r, http.MethodGet, "/auth/session", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(r, http.MethodGet, "/auth/session", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
