package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bloghub-backend/internal/config"
	"bloghub-backend/internal/infrastructure/storage"
	"bloghub-backend/internal/shared/metrics"
)

const (
	NamingUUID      = "uuid"
	NamingTimestamp = "timestamp"
)

// allowedImages: sniffed MIME → format tên dùng cho ImageProcessor
var allowedImages = map[string]string{
	"image/jpeg": "jpeg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// FileHandle is one file received from the editor.
type FileHandle struct {
	Name        string
	ContentType string // declared by the client, informational only
	Data        []byte
}

// Uploader bridges editor uploads to object storage.
type Uploader struct {
	storage      storage.ObjectStorage
	images       *storage.ImageProcessor
	naming       string
	cacheControl string
	maxBytes     int64
	metrics      *metrics.Metrics

	now   func() time.Time
	newID func() string
}

func NewUploader(s storage.ObjectStorage, images *storage.ImageProcessor, cfg config.UploadConfig, m *metrics.Metrics) *Uploader {
	return &Uploader{
		storage:      s,
		images:       images,
		naming:       cfg.Naming,
		cacheControl: cfg.CacheControl,
		maxBytes:     cfg.MaxBytes,
		metrics:      m,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// Upload validates, normalises and stores f, returning its public URL.
func (u *Uploader) Upload(ctx context.Context, f FileHandle) (url string, err error) {
	defer func() { u.metrics.ObserveUpload(err) }()

	if len(f.Data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrUploadRejected)
	}
	if u.maxBytes > 0 && int64(len(f.Data)) > u.maxBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrUploadRejected, u.maxBytes)
	}

	mtype := mimetype.Detect(f.Data)
	contentType := strings.SplitN(mtype.String(), ";", 2)[0]
	format, ok := allowedImages[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s is not an accepted image type", ErrUploadRejected, contentType)
	}

	data, resized, err := u.images.Normalize(f.Data, format)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadRejected, err)
	}

	key := u.objectKey(f.Name, mtype.Extension())

	url, err = u.storage.Upload(ctx, key, data, storage.UploadOptions{
		ContentType:  contentType,
		CacheControl: u.cacheControl,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	log.Info().
		Str("key", key).
		Str("content_type", contentType).
		Int("bytes", len(data)).
		Bool("resized", resized).
		Msg("Editor image uploaded")

	return url, nil
}

// objectKey: uuid → blog/<uuid>.<ext>, timestamp → <unix-ms>-<sanitised name>
func (u *Uploader) objectKey(name, ext string) string {
	if u.naming == NamingTimestamp {
		return fmt.Sprintf("%d-%s", u.now().UnixMilli(), sanitizeName(name, ext))
	}
	return "blog/" + u.newID() + ext
}

func sanitizeName(name, ext string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" {
		base = ""
	}

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}

	out := strings.Trim(b.String(), ".-")
	if out == "" {
		return "upload" + ext
	}
	if filepath.Ext(out) == "" {
		out += ext
	}
	return out
}
