package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub-backend/internal/config"
	"bloghub-backend/internal/infrastructure/storage"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func newUploader(naming string, s storage.ObjectStorage) *Uploader {
	u := NewUploader(s, storage.NewImageProcessor(100), config.UploadConfig{
		MaxBytes:     1 << 20,
		Naming:       naming,
		CacheControl: "max-age=3600",
	}, nil)
	u.newID = func() string { return "fixed-id" }
	u.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return u
}

func TestUpload_UUIDNaming(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage("http://cdn.local/blog-images")
	u := newUploader(NamingUUID, store)

	url, err := u.Upload(ctx, FileHandle{Name: "photo.png", ContentType: "image/png", Data: pngBytes(t, 50, 50)})
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.local/blog-images/blog/fixed-id.png", url)

	_, ct, err := store.Download(ctx, "blog/fixed-id.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
}

func TestUpload_TimestampNaming(t *testing.T) {
	store := storage.NewMemoryStorage("http://cdn.local")
	u := newUploader(NamingTimestamp, store)

	url, err := u.Upload(context.Background(), FileHandle{Name: "../My Photo!.png", Data: pngBytes(t, 10, 10)})
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.local/1700000000000-My-Photo-.png", url)
}

func TestUpload_ResizesWideImages(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage("http://cdn.local")
	u := newUploader(NamingUUID, store)

	_, err := u.Upload(ctx, FileHandle{Name: "wide.png", Data: pngBytes(t, 400, 100)})
	require.NoError(t, err)

	data, _, err := store.Download(ctx, "blog/fixed-id.png")
	require.NoError(t, err)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
}

func TestUpload_RejectsNonImages(t *testing.T) {
	u := newUploader(NamingUUID, storage.NewMemoryStorage("http://cdn.local"))

	_, err := u.Upload(context.Background(), FileHandle{Name: "evil.png", ContentType: "image/png", Data: []byte("<html><script>x</script></html>")})
	assert.ErrorIs(t, err, ErrUploadRejected)

	_, err = u.Upload(context.Background(), FileHandle{Name: "empty.png"})
	assert.ErrorIs(t, err, ErrUploadRejected)

	_, err = u.Upload(context.Background(), FileHandle{Name: "big.png", Data: append(pngBytes(t, 1, 1), make([]byte, 2<<20)...)})
	assert.ErrorIs(t, err, ErrUploadRejected)
}

type brokenStorage struct {
	storage.ObjectStorage
}

func (brokenStorage) Upload(context.Context, string, []byte, storage.UploadOptions) (string, error) {
	return "", errors.New("bucket unreachable")
}

func TestUpload_StorageFailurePropagates(t *testing.T) {
	u := newUploader(NamingUUID, brokenStorage{})

	_, err := u.Upload(context.Background(), FileHandle{Name: "a.png", Data: pngBytes(t, 10, 10)})
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.True(t, strings.Contains(err.Error(), "bucket unreachable"))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "report.png", sanitizeName("report.png", ".png"))
	assert.Equal(t, "a-b.jpg", sanitizeName(`C:\tmp\a b.jpg`, ".jpg"))
	assert.Equal(t, "upload.gif", sanitizeName("", ".gif"))
	assert.Equal(t, "noext.webp", sanitizeName("noext", ".webp"))
}
