package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bloghub-backend/internal/domains/media"
	"bloghub-backend/internal/shared/middleware"
)

// FormField là tên field multipart mà editor gửi lên
const FormField = "upload"

// UploadHandler trả về response theo format của editor upload adapter:
// success {"url": "..."}, failure {"error": {"message": "..."}}
type UploadHandler struct {
	uploader *media.Uploader
	maxBytes int64
}

func NewUploadHandler(uploader *media.Uploader, maxBytes int64) *UploadHandler {
	return &UploadHandler{uploader: uploader, maxBytes: maxBytes}
}

func editorError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": gin.H{"message": message}})
}

// Upload - POST /api/v1/admin/uploads
func (h *UploadHandler) Upload(c *gin.Context) {
	// multipart overhead on top of the file itself
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+1<<20)

	fh, err := c.FormFile(FormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			editorError(c, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		editorError(c, http.StatusBadRequest, "missing file field \""+FormField+"\"")
		return
	}

	f, err := fh.Open()
	if err != nil {
		editorError(c, http.StatusBadRequest, "cannot read upload")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		editorError(c, http.StatusBadRequest, "cannot read upload")
		return
	}

	url, err := h.uploader.Upload(c.Request.Context(), media.FileHandle{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		switch {
		case errors.Is(err, media.ErrUploadRejected):
			editorError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			log.Error().Err(err).Str("request_id", c.GetString(middleware.ContextKeyRequestID)).Msg("Upload failed")
			editorError(c, http.StatusBadGateway, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
