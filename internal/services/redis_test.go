package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisService(t *testing.T) (*RedisService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	svc, err := NewRedisService(mr.Addr(), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	return svc, mr
}

func TestRedisServicePing(t *testing.T) {
	svc, _ := newTestRedisService(t)
	assert.NoError(t, svc.Ping(context.Background()))
}

func TestRedisServiceSetGet(t *testing.T) {
	svc, _ := newTestRedisService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "key", "value", 0))

	got, err := svc.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}

func TestRedisServiceGetMissingKey(t *testing.T) {
	svc, _ := newTestRedisService(t)

	got, err := svc.Get(context.Background(), "absent")
	require.NoError(t, err, "missing keys are not an error")
	assert.Empty(t, got)
}

func TestRedisServiceExpiration(t *testing.T) {
	svc, mr := newTestRedisService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "key", "value", time.Minute))

	mr.FastForward(2 * time.Minute)

	got, err := svc.Get(ctx, "key")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisServiceDel(t *testing.T) {
	svc, _ := newTestRedisService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "a", "1", 0))
	require.NoError(t, svc.Set(ctx, "b", "2", 0))
	require.NoError(t, svc.Del(ctx, "a", "b"))

	exists, err := svc.Exists(ctx, "a", "b")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisServiceExists(t *testing.T) {
	svc, _ := newTestRedisService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "key", "value", 0))

	exists, err := svc.Exists(ctx, "key")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.Exists(ctx, "other")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisServiceParsesURL(t *testing.T) {
	mr := miniredis.RunT(t)

	svc, err := NewRedisService("redis://"+mr.Addr(), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	assert.NoError(t, svc.Ping(context.Background()))
}
