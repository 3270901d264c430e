package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const tokenCachePrefix = "device_token:"

// TokenCache memoizes persisted-token lookups in Redis so the common path
// skips a database round trip. Cache failures are treated as misses.
type TokenCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenCache wraps a Redis client. A nil client yields a nil cache,
// which every method tolerates.
func NewTokenCache(client *redis.Client, ttl time.Duration) *TokenCache {
	if client == nil {
		return nil
	}
	return &TokenCache{client: client, ttl: ttl}
}

// Get returns the cached account id for a token key.
func (c *TokenCache) Get(ctx context.Context, key string) (int64, bool) {
	if c == nil {
		return 0, false
	}
	val, err := c.client.Get(ctx, tokenCachePrefix+key).Result()
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Set stores the account id for a token key.
func (c *TokenCache) Set(ctx context.Context, key string, accountID int64) {
	if c == nil {
		return
	}
	c.client.Set(ctx, tokenCachePrefix+key, strconv.FormatInt(accountID, 10), c.ttl)
}

// Delete drops a cached token, used on logout.
func (c *TokenCache) Delete(ctx context.Context, key string) {
	if c == nil {
		return
	}
	c.client.Del(ctx, tokenCachePrefix+key)
}
