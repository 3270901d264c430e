package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*TokenCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenCache(client, time.Minute), mr
}

func TestTokenCache_RoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "missing")
	require.False(t, ok)

	cache.Set(ctx, "some-key", 42)
	id, ok := cache.Get(ctx, "some-key")
	require.True(t, ok)
	require.EqualValues(t, 42, id)

	cache.Delete(ctx, "some-key")
	_, ok = cache.Get(ctx, "some-key")
	require.False(t, ok)
}

func TestTokenCache_EntriesExpire(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "some-key", 42)
	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get(ctx, "some-key")
	require.False(t, ok)
}

func TestTokenCache_NilIsSafe(t *testing.T) {
	t.Parallel()

	var cache *TokenCache
	ctx := context.Background()

	_, ok := cache.Get(ctx, "key")
	require.False(t, ok)
	cache.Set(ctx, "key", 1)
	cache.Delete(ctx, "key")
	require.Nil(t, NewTokenCache(nil, time.Minute))
}
