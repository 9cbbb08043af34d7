package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/smartclin/clinic-api/internal/cache"
	"github.com/smartclin/clinic-api/internal/rbac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := &Session{
		ID:     "sess-rt",
		UserID: uuid.New(),
		Role:   rbac.RoleNurse,
		Email:  "nurse@clinic.test",
	}
	require.NoError(t, store.Put(ctx, session))

	got, err := store.Get(ctx, "sess-rt")
	require.NoError(t, err)
	assert.Equal(t, session.UserID, got.UserID)
	assert.Equal(t, rbac.RoleNurse, got.Role)
	assert.False(t, got.ExpiresAt.IsZero())
}

func TestGetUnknownSession(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExpiredSessionIsEvicted(t *testing.T) {
	mem := cache.NewMemoryCache()
	t.Cleanup(mem.Close)
	store := NewSessionStore(mem, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &Session{
		ID:        "sess-old",
		UserID:    uuid.New(),
		Role:      rbac.RoleMember,
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := store.Get(ctx, "sess-old")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// The stale entry is gone from the backend too
	exists, err := mem.Exists(ctx, cache.SessionKey("sess-old"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetSlidesExpiry(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	near := time.Now().Add(time.Minute)
	require.NoError(t, store.Put(ctx, &Session{
		ID:        "sess-slide",
		UserID:    uuid.New(),
		Role:      rbac.RoleDoctor,
		ExpiresAt: near,
	}))

	got, err := store.Get(ctx, "sess-slide")
	require.NoError(t, err)
	assert.True(t, got.ExpiresAt.After(near), "an active session should slide forward")

	again, err := store.Get(ctx, "sess-slide")
	require.NoError(t, err)
	assert.False(t, again.ExpiresAt.Before(got.ExpiresAt))
}

func TestDeleteSession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &Session{ID: "sess-del", UserID: uuid.New(), Role: rbac.RoleAdmin}))
	require.NoError(t, store.Delete(ctx, "sess-del"))

	_, err := store.Get(ctx, "sess-del")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
