package session

import (
	"time"

	"github.com/google/uuid"

	"bloghub-backend/internal/domains/auth/model"
)

// Session is the signed-in state of one user agent.
type Session struct {
	ID        string        `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	Profile   model.Profile `json:"profile"`
	CreatedAt time.Time     `json:"created_at"`
	ExpiresAt time.Time     `json:"expires_at"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Profile.IsAdmin
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type EventType string

const (
	EventSignedIn       EventType = "signed_in"
	EventSignedOut      EventType = "signed_out"
	EventProfileChanged EventType = "profile_changed"
)

// Event is delivered to subscribers. Session is a copy.
type Event struct {
	Type    EventType
	Session Session
}

type Listener func(Event)
