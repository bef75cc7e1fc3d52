package storage

import (
	"context"
	"strings"
	"sync"
)

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryStorage keeps objects in process memory. The API serves them under
// baseURL when STORE_DRIVER=memory.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	baseURL string
}

var _ ObjectStorage = (*MemoryStorage)(nil)

func NewMemoryStorage(baseURL string) *MemoryStorage {
	return &MemoryStorage{
		objects: make(map[string]memoryObject),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *MemoryStorage) Upload(_ context.Context, key string, data []byte, opts UploadOptions) (string, error) {
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.objects[key] = memoryObject{data: buf, contentType: opts.ContentType}
	s.mu.Unlock()

	return s.PublicURL(key), nil
}

func (s *MemoryStorage) Download(_ context.Context, key string) ([]byte, string, error) {
	s.mu.RLock()
	obj, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return nil, "", ErrObjectNotFound
	}
	return obj.data, obj.contentType, nil
}

func (s *MemoryStorage) RemoveObjects(_ context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.objects, k)
	}
	return nil
}

func (s *MemoryStorage) PublicURL(key string) string {
	return s.baseURL + "/" + key
}

func (s *MemoryStorage) KeyFromURL(rawURL string) (string, bool) {
	return keyFromBase(s.baseURL, rawURL)
}

// Len returns the number of stored objects.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
