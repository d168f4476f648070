package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value", 0))

	got, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}

func TestMemoryCacheMissingKey(t *testing.T) {
	cache := NewMemoryCache()

	got, err := cache.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryCacheExpiration(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	got, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.Empty(t, got, "expired entries must read as missing")

	exists, err := cache.Exists(ctx, "key")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryCacheDel(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", "1", 0))
	require.NoError(t, cache.Set(ctx, "b", "2", 0))
	require.NoError(t, cache.Del(ctx, "a", "b"))

	exists, err := cache.Exists(ctx, "a", "b")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryCacheExists(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value", 0))

	exists, err := cache.Exists(ctx, "other", "key")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemoryCacheStringifiesValues(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "bytes", []byte("raw"), 0))
	got, err := cache.Get(ctx, "bytes")
	require.NoError(t, err)
	assert.Equal(t, "raw", got)

	require.NoError(t, cache.Set(ctx, "number", 42, 0))
	got, err = cache.Get(ctx, "number")
	require.NoError(t, err)
	assert.Equal(t, "42", got)
}

func TestMemoryCachePingAndClose(t *testing.T) {
	cache := NewMemoryCache()
	assert.NoError(t, cache.Ping(context.Background()))
	assert.NoError(t, cache.Close())
}
