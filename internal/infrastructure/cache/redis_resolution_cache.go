package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/orderdesk/backend/internal/domain/shipping"
)

// unassignedMarker is the stored value for the "no zone applies" outcome,
// which is distinct from a cache miss
const unassignedMarker = "none"

// RedisResolutionCache implements shipping.ResolutionCache using Redis.
// Suitable for distributed deployments where multiple instances share
// resolution state. Redis failures degrade to cache misses rather than
// failing the resolution.
type RedisResolutionCache struct {
	client    *redis.Client
	keyPrefix string
	logger    *zap.Logger
}

// RedisCacheConfig holds Redis connection configuration
type RedisCacheConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisResolutionCache creates a new Redis-based resolution cache
func NewRedisResolutionCache(cfg RedisCacheConfig, logger *zap.Logger) (*RedisResolutionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisResolutionCacheWithClient(client, logger), nil
}

// NewRedisResolutionCacheWithClient creates a cache with an existing Redis
// client. Useful for testing or when sharing a client across components.
func NewRedisResolutionCacheWithClient(client *redis.Client, logger *zap.Logger) *RedisResolutionCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisResolutionCache{
		client:    client,
		keyPrefix: "shipping:resolution:",
		logger:    logger,
	}
}

// cacheKey builds the Redis key for one resolution query. The store ID comes
// first so a store's entries share a scannable prefix.
func (c *RedisResolutionCache) cacheKey(key shipping.ResolutionKey) string {
	return fmt.Sprintf("%s%s:%s:%s:%d", c.keyPrefix, key.StoreID, key.CountryID, key.StateID, key.ZipCode)
}

// storePrefix returns the key prefix shared by all of a store's entries
func (c *RedisResolutionCache) storePrefix(storeID uuid.UUID) string {
	return fmt.Sprintf("%s%s:", c.keyPrefix, storeID)
}

// Get retrieves a cached resolution outcome
func (c *RedisResolutionCache) Get(ctx context.Context, key shipping.ResolutionKey) (*uuid.UUID, bool) {
	value, err := c.client.Get(ctx, c.cacheKey(key)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Resolution cache read failed", zap.Error(err))
		}
		return nil, false
	}

	if value == unassignedMarker {
		return nil, true
	}

	zoneID, err := uuid.Parse(value)
	if err != nil {
		c.logger.Warn("Resolution cache holds malformed zone ID",
			zap.String("value", value))
		return nil, false
	}
	return &zoneID, true
}

// Set stores a resolution outcome with a TTL
func (c *RedisResolutionCache) Set(ctx context.Context, key shipping.ResolutionKey, zoneID *uuid.UUID, ttl time.Duration) {
	value := unassignedMarker
	if zoneID != nil {
		value = zoneID.String()
	}

	if err := c.client.Set(ctx, c.cacheKey(key), value, ttl).Err(); err != nil {
		c.logger.Warn("Resolution cache write failed", zap.Error(err))
	}
}

// InvalidateStore drops every cached resolution for a store
func (c *RedisResolutionCache) InvalidateStore(ctx context.Context, storeID uuid.UUID) {
	iter := c.client.Scan(ctx, 0, c.storePrefix(storeID)+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn("Resolution cache invalidation failed",
				zap.String("key", iter.Val()),
				zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("Resolution cache scan failed",
			zap.String("store_id", storeID.String()),
			zap.Error(err))
	}
}

// Close closes the Redis client
func (c *RedisResolutionCache) Close() error {
	return c.client.Close()
}

// Ensure RedisResolutionCache implements ResolutionCache
var _ shipping.ResolutionCache = (*RedisResolutionCache)(nil)
