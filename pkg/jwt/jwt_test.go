package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("test-secret")

	token, err := m.GenerateAccessToken("user-1", "sess-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "sess-1", claims.SessionID)
}

func TestManager_RejectsExpired(t *testing.T) {
	m := NewManager("test-secret")

	token, err := m.GenerateAccessToken("user-1", "sess-1", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsForeignSecret(t *testing.T) {
	token, err := NewManager("a").GenerateAccessToken("user-1", "sess-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = NewManager("b").ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsGarbage(t *testing.T) {
	_, err := NewManager("a").ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
