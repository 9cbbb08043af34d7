package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache()
	t.Cleanup(mc.Close)
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "session:abc", []byte(`{"role":"doctor"}`), time.Minute))

	value, err := mc.Get(ctx, "session:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"role":"doctor"}`), value)
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	t.Cleanup(mc.Close)

	_, err := mc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	t.Cleanup(mc.Close)
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "fleeting", []byte("x"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := mc.Get(ctx, "fleeting")
	assert.ErrorIs(t, err, ErrCacheMiss)

	exists, err := mc.Exists(ctx, "fleeting")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryCacheDelete(t *testing.T) {
	mc := NewMemoryCache()
	t.Cleanup(mc.Close)
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "key", []byte("v"), time.Minute))
	require.NoError(t, mc.Delete(ctx, "key"))

	exists, err := mc.Exists(ctx, "key")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryCacheExists(t *testing.T) {
	mc := NewMemoryCache()
	t.Cleanup(mc.Close)
	ctx := context.Background()

	exists, err := mc.Exists(ctx, "key")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, mc.Set(ctx, "key", []byte("v"), time.Minute))
	exists, err = mc.Exists(ctx, "key")
	require.NoError(t, err)
	assert.True(t, exists)
}
