package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/betulabla/foundation/internal/config"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/betulabla/foundation/internal/types"
)

// Cache defines the interface for caching operations
type Cache interface {
	// Get retrieves a value from the cache
	// Returns the value and a boolean indicating whether the key was found
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set adds a value to the cache with the specified expiration
	// If expiration is 0, the item never expires (but may be evicted)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)

	// Delete removes a key from the cache
	Delete(ctx context.Context, key string)

	// DeleteByPrefix removes all keys with the given prefix
	DeleteByPrefix(ctx context.Context, prefix string)

	// Flush removes all items from the cache
	Flush(ctx context.Context)
}

// Predefined cache key prefixes
const (
	PrefixRevokedToken = "revoked_token:v1:"
)

// GenerateKey creates a cache key from a prefix and a set of parameters
// It joins all parameters with a colon and appends them to the prefix
func GenerateKey(prefix string, params ...interface{}) string {
	parts := make([]string, len(params)+1)
	parts[0] = prefix

	for i, param := range params {
		parts[i+1] = fmt.Sprintf("%v", param)
	}

	return strings.Join(parts, ":")
}

// NewCache builds the backend selected by cache.type
func NewCache(cfg *config.Configuration, log *logger.Logger) Cache {
	switch cfg.Cache.Type {
	case types.CacheTypeRedis:
		log.Infow("initializing redis cache", "addr", cfg.Cache.Redis.Addr)
		return NewRedisCache(NewRedisClient(cfg.Cache.Redis), log)
	default:
		log.Info("initializing in-memory cache")
		return NewInMemoryCache()
	}
}
