package handler

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub-backend/internal/config"
	"bloghub-backend/internal/domains/media"
	"bloghub-backend/internal/infrastructure/storage"
)

func setup() *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := storage.NewMemoryStorage("http://cdn.local")
	uploader := media.NewUploader(store, storage.NewImageProcessor(1600), config.UploadConfig{
		MaxBytes: 1 << 20, Naming: media.NamingUUID, CacheControl: "max-age=3600",
	}, nil)

	r := gin.New()
	r.POST("/uploads", NewUploadHandler(uploader, 1<<20).Upload)
	return r
}

func multipartBody(t *testing.T, field, name string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestUpload_Success(t *testing.T) {
	img := new(bytes.Buffer)
	require.NoError(t, png.Encode(img, image.NewRGBA(image.Rect(0, 0, 4, 4))))

	body, ct := multipartBody(t, FormField, "a.png", img.Bytes())
	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	setup().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Regexp(t, `^http://cdn\.local/blog/[0-9a-f-]{36}\.png$`, out.URL)
}

func TestUpload_RejectedFileUsesEditorErrorShape(t *testing.T) {
	body, ct := multipartBody(t, FormField, "a.png", []byte("plain text, not an image"))
	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	setup().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var out struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Contains(t, out.Error.Message, "upload rejected")
}

func TestUpload_MissingField(t *testing.T) {
	body, ct := multipartBody(t, "file", "a.png", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	setup().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
