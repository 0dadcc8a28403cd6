package kv

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/config"
)

// Open builds the Store selected by cfg.Storage.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	var (
		s   Store
		err error
	)

	switch cfg.Storage {
	case config.StorageSQLite:
		s, err = OpenSQLite(ctx, cfg.DatabasePath)
	case config.StorageRedis:
		s, err = OpenRedis(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case config.StorageMemory:
		s = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
	if err != nil {
		return nil, err
	}

	return WithTimeout(WithPrefix(s, cfg.KeyPrefix), cfg.StorageTimeout), nil
}
