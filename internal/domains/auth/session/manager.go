package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bloghub-backend/internal/domains/auth/model"
)

var (
	ErrNotStarted = errors.New("session manager not started")
	ErrShutdown   = errors.New("session manager shut down")
)

// Manager là process-wide session holder.
// Lifecycle: NewManager -> Start -> (Open/Resolve/Refresh/Close)* -> Shutdown.
type Manager struct {
	store *Store
	ttl   time.Duration
	now   func() time.Time

	mu        sync.RWMutex
	listeners map[uint64]Listener
	nextID    uint64
	started   bool
	stopped   bool
}

func NewManager(store *Store, ttl time.Duration) *Manager {
	return &Manager{
		store:     store,
		ttl:       ttl,
		now:       time.Now,
		listeners: make(map[uint64]Listener),
	}
}

// Start verifies the backing store is reachable. Must be called once before use.
func (m *Manager) Start(ctx context.Context) error {
	if err := m.store.Ping(ctx); err != nil {
		return fmt.Errorf("session store unavailable: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return ErrShutdown
	}
	m.started = true

	log.Info().Dur("ttl", m.ttl).Msg("[SESSION] Manager started")
	return nil
}

// Subscribe registers fn for session events and returns its unsubscribe func.
func (m *Manager) Subscribe(fn Listener) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.listeners, id)
			m.mu.Unlock()
		})
	}
}

func (m *Manager) ready() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.stopped {
		return ErrShutdown
	}
	if !m.started {
		return ErrNotStarted
	}
	return nil
}

// Open creates and stores a session for profile, then emits signed_in.
func (m *Manager) Open(ctx context.Context, profile model.Profile) (*Session, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}

	now := m.now()
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    profile.ID,
		Profile:   profile,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	if err := m.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	m.emit(Event{Type: EventSignedIn, Session: *sess})
	return sess, nil
}

// Resolve loads a live session by id.
func (m *Manager) Resolve(ctx context.Context, id string) (*Session, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}

	sess, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Expired(m.now()) {
		_ = m.store.Delete(ctx, id)
		return nil, model.ErrSessionNotFound
	}
	return sess, nil
}

// Refresh replaces the cached profile when it moved and emits profile_changed.
func (m *Manager) Refresh(ctx context.Context, sess *Session, profile model.Profile) (*Session, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	if sameProfile(sess.Profile, profile) {
		return sess, nil
	}

	updated := *sess
	updated.Profile = profile
	if err := m.store.Save(ctx, &updated); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	m.emit(Event{Type: EventProfileChanged, Session: updated})
	return &updated, nil
}

// Close tears the session down (sign-out) and emits signed_out.
func (m *Manager) Close(ctx context.Context, sess *Session) error {
	if err := m.ready(); err != nil {
		return err
	}
	if err := m.store.Delete(ctx, sess.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	m.emit(Event{Type: EventSignedOut, Session: *sess})
	return nil
}

// Shutdown drops every subscriber. Further calls fail with ErrShutdown.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return
	}
	m.stopped = true
	m.listeners = make(map[uint64]Listener)
	log.Info().Msg("[SESSION] Manager stopped")
}

// emit snapshots listeners so callbacks run outside the lock.
func (m *Manager) emit(ev Event) {
	m.mu.RLock()
	listeners := make([]Listener, 0, len(m.listeners))
	for _, fn := range m.listeners {
		listeners = append(listeners, fn)
	}
	m.mu.RUnlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

func sameProfile(a, b model.Profile) bool {
	if a.IsAdmin != b.IsAdmin || a.Email != b.Email {
		return false
	}
	switch {
	case a.FullName == nil && b.FullName == nil:
		return true
	case a.FullName == nil || b.FullName == nil:
		return false
	default:
		return *a.FullName == *b.FullName
	}
}
