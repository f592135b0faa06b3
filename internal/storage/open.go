package storage

import (
	"context"
	"fmt"

	"github.com/garrettladley/sugang/internal/config"
	"github.com/garrettladley/sugang/internal/paths"
	"github.com/garrettladley/sugang/internal/redis"
)

// Open returns the backend selected by cfg.Store.
func Open(ctx context.Context, cfg config.Config) (Backend, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return NewMemoryBackend(), nil
	case config.StoreRedis:
		client, err := redis.New(ctx, redis.Config{URL: cfg.Redis.URL, Prefix: cfg.Redis.Prefix})
		if err != nil {
			return nil, err
		}
		return NewRedisBackend(RedisConfig{Client: client}), nil
	}

	if _, err := paths.EnsureDir(); err != nil {
		return nil, err
	}

	switch cfg.Store {
	case config.StoreVault:
		dir, err := paths.Vault()
		if err != nil {
			return nil, err
		}
		keyFile, err := paths.MasterKey()
		if err != nil {
			return nil, err
		}
		return NewVaultBackend(dir, keyFile, cfg.MasterKey)
	case config.StoreSQLite:
		path, err := paths.DB()
		if err != nil {
			return nil, err
		}
		return NewSQLiteBackend(ctx, path)
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
