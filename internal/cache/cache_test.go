package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewRedisCache(client, logger.NewNopLogger())
}

func TestGenerateKey(t *testing.T) {
	assert.Equal(t, "revoked_token:v1::abc", GenerateKey(PrefixRevokedToken, "abc"))
	assert.Equal(t, "p:1:two", GenerateKey("p", 1, "two"))
}

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache()

	c.Set(ctx, "a:1", "x", time.Minute)
	c.Set(ctx, "a:2", "y", 0)
	c.Set(ctx, "b:1", "z", time.Minute)

	v, ok := c.Get(ctx, "a:1")
	require.True(t, ok)
	assert.Equal(t, "x", v)

	c.DeleteByPrefix(ctx, "a:")
	_, ok = c.Get(ctx, "a:2")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "b:1")
	assert.True(t, ok)

	c.Flush(ctx)
	_, ok = c.Get(ctx, "b:1")
	assert.False(t, ok)
}

func TestInMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache()

	c.Set(ctx, "short", "x", time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get(ctx, "short")
	assert.False(t, ok)
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	mr, c := setupTestRedis(t)

	require.NoError(t, c.Ping(ctx))

	c.Set(ctx, GenerateKey(PrefixRevokedToken, "jti1"), true, time.Hour)
	v, ok := c.Get(ctx, GenerateKey(PrefixRevokedToken, "jti1"))
	require.True(t, ok)
	assert.Equal(t, "true", v)

	ttl := mr.TTL(GenerateKey(PrefixRevokedToken, "jti1"))
	assert.Equal(t, time.Hour, ttl)

	_, ok = c.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestRedisCacheExpiryAndPrefixDelete(t *testing.T) {
	ctx := context.Background()
	mr, c := setupTestRedis(t)

	c.Set(ctx, "a:1", "x", time.Minute)
	c.Set(ctx, "a:2", "y", time.Minute)
	c.Set(ctx, "b:1", "z", time.Minute)

	c.DeleteByPrefix(ctx, "a:")
	assert.False(t, mr.Exists("a:1"))
	assert.False(t, mr.Exists("a:2"))
	assert.True(t, mr.Exists("b:1"))

	mr.FastForward(2 * time.Minute)
	_, ok := c.Get(ctx, "b:1")
	assert.False(t, ok)
}
