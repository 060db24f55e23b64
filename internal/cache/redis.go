package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/betulabla/foundation/internal/config"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/go-redis/redis/v8"
)

// RedisCache implements Cache on a shared redis so every API instance sees the same entries.
// Values are stored in their string form.
type RedisCache struct {
	client *redis.Client
	logger *logger.Logger
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisCache(client *redis.Client, logger *logger.Logger) *RedisCache {
	return &RedisCache{client: client, logger: logger}
}

// Ping checks the connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (interface{}, bool) {
	span := StartCacheSpan(ctx, "redis", "get", map[string]interface{}{"key": key})
	defer FinishSpan(span)

	value, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		SetSpanSuccess(span)
		return nil, false
	}
	if err != nil {
		SetSpanError(span, err)
		c.logger.Errorw("redis get failed", "key", key, "error", err)
		return nil, false
	}
	SetSpanSuccess(span)
	return value, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	span := StartCacheSpan(ctx, "redis", "set", map[string]interface{}{"key": key})
	defer FinishSpan(span)

	if err := c.client.Set(ctx, key, fmt.Sprintf("%v", value), expiration).Err(); err != nil {
		SetSpanError(span, err)
		c.logger.Errorw("redis set failed", "key", key, "error", err)
		return
	}
	SetSpanSuccess(span)
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Errorw("redis delete failed", "key", key, "error", err)
	}
}

// DeleteByPrefix walks matching keys with SCAN so large keyspaces do not block redis
func (c *RedisCache) DeleteByPrefix(ctx context.Context, prefix string) {
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Errorw("redis delete failed", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Errorw("redis scan failed", "prefix", prefix, "error", err)
	}
}

func (c *RedisCache) Flush(ctx context.Context) {
	if err := c.client.FlushDB(ctx).Err(); err != nil {
		c.logger.Errorw("redis flush failed", "error", err)
	}
}
