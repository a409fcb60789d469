package bootstrap

import (
	"context"
	"log/slog"

	"vitrine-engine/internal/infra/cache"
	"vitrine-engine/internal/infra/storehouse"
	"vitrine-engine/internal/pkg/config"

	"go.uber.org/fx"
)

var StorehouseModule = fx.Module("storehouse",
	fx.Provide(
		NewStorehouseClient,
		NewRedis,
		NewCatalogCache,
	),
)

func NewStorehouseClient(cfg config.Config) *storehouse.Client {
	return storehouse.NewClient(cfg.Storehouse)
}

// NewRedis hands out a nil client when Redis is disabled; the caches treat
// nil as cache-off and fall through to the storehouse.
func NewRedis(lc fx.Lifecycle, cfg config.Config) (*cache.RedisClient, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}

	client, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		// A dead Redis must not keep the store offline.
		slog.Warn("redis unavailable, catalog cache disabled", "error", err)
		return nil, nil
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}

func NewCatalogCache(redis *cache.RedisClient, cfg config.Config) *cache.CatalogCache {
	return cache.NewCatalogCache(redis, cfg.Catalog.CacheTTL)
}
