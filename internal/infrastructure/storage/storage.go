package storage

import (
	"context"
	"errors"
	"strings"
)

// ErrObjectNotFound is returned by Download when the key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStorage is the object-storage half of the backend collaborator.
// Implemented by MinIOStorage (production) and MemoryStorage (local/tests).
type ObjectStorage interface {
	// Upload stores data under key and returns its public URL
	Upload(ctx context.Context, key string, data []byte, opts UploadOptions) (string, error)
	Download(ctx context.Context, key string) ([]byte, string, error)
	RemoveObjects(ctx context.Context, keys []string) error
	PublicURL(key string) string
	// KeyFromURL maps a public URL back to an object key; false for foreign URLs
	KeyFromURL(rawURL string) (string, bool)
}

type UploadOptions struct {
	ContentType  string
	CacheControl string
}

// keyFromBase strips base (with trailing slash) from rawURL.
func keyFromBase(base, rawURL string) (string, bool) {
	base = strings.TrimRight(base, "/") + "/"
	if !strings.HasPrefix(rawURL, base) {
		return "", false
	}
	key := strings.TrimPrefix(rawURL, base)
	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	if key == "" {
		return "", false
	}
	return key, true
}
