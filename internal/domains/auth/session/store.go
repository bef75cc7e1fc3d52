package session

import (
	"context"
	"fmt"
	"time"

	"bloghub-backend/internal/domains/auth/model"
	"bloghub-backend/pkg/cache"
)

const keyPrefix = "session:"

// Store persists sessions in the cache layer (Redis in production).
type Store struct {
	cache cache.Cache
}

func NewStore(c cache.Cache) *Store {
	return &Store{cache: c}
}

func (s *Store) Save(ctx context.Context, sess *Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", sess.ID)
	}
	return s.cache.Set(ctx, keyPrefix+sess.ID, sess, ttl)
}

func (s *Store) Load(ctx context.Context, id string) (*Session, error) {
	var sess Session
	found, err := s.cache.Get(ctx, keyPrefix+id, &sess)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return nil, model.ErrSessionNotFound
	}
	return &sess, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, keyPrefix+id)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.cache.Ping(ctx)
}
