package cache

import (
	"github.com/meditrack/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// New creates a query cache from configuration. When Redis is enabled
// but unreachable it falls back to the in-memory cache so the app can
// still start.
func New(cfg config.RedisConfig, logger *zap.Logger) QueryCache {
	if !cfg.Enabled {
		return NewInMemoryCache()
	}

	redisCache, err := NewRedisCache(RedisOptions{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory cache",
			zap.String("addr", cfg.Addr()),
			zap.Error(err))
		return NewInMemoryCache()
	}

	logger.Info("connected to Redis cache", zap.String("addr", cfg.Addr()))
	return redisCache
}
