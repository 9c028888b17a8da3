package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client, ttl), server
}

func TestRedisCache_MarkerLifecycle(t *testing.T) {
	cache, _ := setupCache(t, time.Hour)
	ctx := context.Background()

	key := cache.ReviewMarkerKey(uuid.New())

	exists, err := cache.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, cache.SetMarker(ctx, key))

	exists, err = cache.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRedisCache_MarkerExpires(t *testing.T) {
	cache, server := setupCache(t, time.Minute)
	ctx := context.Background()

	key := cache.ReviewMarkerKey(uuid.New())
	require.NoError(t, cache.SetMarker(ctx, key))

	server.FastForward(2 * time.Minute)

	exists, err := cache.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisCache_KeysAreScopedPerOrder(t *testing.T) {
	cache, _ := setupCache(t, time.Hour)

	first := uuid.New()
	second := uuid.New()

	assert.NotEqual(t, cache.ReviewMarkerKey(first), cache.ReviewMarkerKey(second))
	assert.Contains(t, cache.ReviewMarkerKey(first), first.String())
}
