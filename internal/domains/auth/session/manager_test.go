package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub-backend/internal/domains/auth/model"
	"bloghub-backend/internal/infrastructure/cache"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) listen(ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *recorder) types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

func newStartedManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(NewStore(cache.NewMemoryCache()), time.Hour)
	require.NoError(t, m.Start(context.Background()))
	return m
}

func testProfile() model.Profile {
	return model.Profile{ID: uuid.New(), Email: "reader@example.com"}
}

func TestManager_RequiresStart(t *testing.T) {
	m := NewManager(NewStore(cache.NewMemoryCache()), time.Hour)

	_, err := m.Open(context.Background(), testProfile())
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestManager_OpenResolveClose(t *testing.T) {
	ctx := context.Background()
	m := newStartedManager(t)
	rec := &recorder{}
	m.Subscribe(rec.listen)

	sess, err := m.Open(ctx, testProfile())
	require.NoError(t, err)

	got, err := m.Resolve(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)

	require.NoError(t, m.Close(ctx, got))

	_, err = m.Resolve(ctx, sess.ID)
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
	assert.Equal(t, []EventType{EventSignedIn, EventSignedOut}, rec.types())
}

func TestManager_RefreshEmitsOnlyOnChange(t *testing.T) {
	ctx := context.Background()
	m := newStartedManager(t)
	rec := &recorder{}
	m.Subscribe(rec.listen)

	profile := testProfile()
	sess, err := m.Open(ctx, profile)
	require.NoError(t, err)

	same, err := m.Refresh(ctx, sess, profile)
	require.NoError(t, err)
	assert.Same(t, sess, same)

	profile.IsAdmin = true
	updated, err := m.Refresh(ctx, sess, profile)
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin())

	stored, err := m.Resolve(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin())

	assert.Equal(t, []EventType{EventSignedIn, EventProfileChanged}, rec.types())
}

func TestManager_Unsubscribe(t *testing.T) {
	ctx := context.Background()
	m := newStartedManager(t)
	rec := &recorder{}
	unsubscribe := m.Subscribe(rec.listen)

	_, err := m.Open(ctx, testProfile())
	require.NoError(t, err)

	unsubscribe()
	unsubscribe()

	_, err = m.Open(ctx, testProfile())
	require.NoError(t, err)
	assert.Len(t, rec.types(), 1)
}

func TestManager_ExpiredSession(t *testing.T) {
	ctx := context.Background()
	m := newStartedManager(t)
	now := time.Now()
	m.now = func() time.Time { return now }

	sess, err := m.Open(ctx, testProfile())
	require.NoError(t, err)

	m.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = m.Resolve(ctx, sess.ID)
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestManager_ListenerMaySubscribe(t *testing.T) {
	ctx := context.Background()
	m := newStartedManager(t)

	// a listener that touches the manager must not deadlock
	var unsub func()
	unsub = m.Subscribe(func(Event) {
		unsub()
		m.Subscribe(func(Event) {})
	})

	_, err := m.Open(ctx, testProfile())
	require.NoError(t, err)
}

func TestManager_Shutdown(t *testing.T) {
	ctx := context.Background()
	m := newStartedManager(t)
	rec := &recorder{}
	m.Subscribe(rec.listen)

	m.Shutdown()
	m.Shutdown()

	_, err := m.Open(ctx, testProfile())
	assert.ErrorIs(t, err, ErrShutdown)
	assert.Empty(t, rec.types())
}

func TestContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))

	sess := &Session{ID: "abc"}
	ctx := WithContext(context.Background(), sess)
	assert.Same(t, sess, FromContext(ctx))
}
