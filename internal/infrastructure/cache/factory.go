package cache

import (
	"go.uber.org/zap"

	"github.com/orderdesk/backend/internal/domain/shipping"
	"github.com/orderdesk/backend/internal/infrastructure/config"
)

// ResolutionCacheFactory creates resolution caches based on configuration
type ResolutionCacheFactory struct {
	redisConfig config.RedisConfig
	logger      *zap.Logger
}

// NewResolutionCacheFactory creates a new factory
func NewResolutionCacheFactory(cfg config.RedisConfig, logger *zap.Logger) *ResolutionCacheFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResolutionCacheFactory{
		redisConfig: cfg,
		logger:      logger,
	}
}

// CreateCache creates a resolution cache. When Redis is enabled and
// reachable it backs the cache; otherwise the in-memory implementation is
// used, which does not share state across instances.
func (f *ResolutionCacheFactory) CreateCache() shipping.ResolutionCache {
	if f.redisConfig.Enabled {
		cache, err := NewRedisResolutionCache(RedisCacheConfig{
			Host:     f.redisConfig.Host,
			Port:     f.redisConfig.Port,
			Password: f.redisConfig.Password,
			DB:       f.redisConfig.DB,
		}, f.logger)
		if err == nil {
			f.logger.Info("using Redis resolution cache")
			return cache
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory resolution cache",
			zap.Error(err))
	}

	return NewInMemoryResolutionCache()
}
