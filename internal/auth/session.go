package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/smartclin/clinic-api/internal/cache"
	"github.com/smartclin/clinic-api/internal/rbac"
)

// ErrSessionNotFound is returned when a session id resolves to nothing,
// either never issued or expired out of the store.
var ErrSessionNotFound = errors.New("auth: session not found")

// Session is the stored binding between a token and a user. Issuance happens
// in the external auth service; this service only reads and refreshes.
type Session struct {
	ID        string    `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      rbac.Role `json:"role"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionStore keeps sessions in a cache backend with a sliding TTL
type SessionStore struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewSessionStore creates a session store over the given cache
func NewSessionStore(c cache.Cache, ttl time.Duration) *SessionStore {
	return &SessionStore{cache: c, ttl: ttl}
}

// Get loads a session by id. A hit refreshes the TTL so active sessions
// slide forward. Absent or expired sessions return ErrSessionNotFound.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	raw, err := s.cache.Get(ctx, cache.SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	if !session.ExpiresAt.IsZero() && time.Now().After(session.ExpiresAt) {
		_ = s.cache.Delete(ctx, cache.SessionKey(sessionID))
		return nil, ErrSessionNotFound
	}

	// Sliding expiry
	session.ExpiresAt = time.Now().Add(s.ttl)
	if refreshed, err := json.Marshal(&session); err == nil {
		_ = s.cache.Set(ctx, cache.SessionKey(sessionID), refreshed, s.ttl)
	}

	return &session, nil
}

// Put stores a session under its id
func (s *SessionStore) Put(ctx context.Context, session *Session) error {
	if session.ExpiresAt.IsZero() {
		session.ExpiresAt = time.Now().Add(s.ttl)
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.cache.Set(ctx, cache.SessionKey(session.ID), raw, s.ttl); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Delete removes a session
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, cache.SessionKey(sessionID))
}
