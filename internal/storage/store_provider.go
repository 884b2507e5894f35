package storage

import (
	"context"
	"fmt"
	"reviewreminder/internal/providers"
	"reviewreminder/internal/services/interfaces"
	storageInterfaces "reviewreminder/internal/storage/interfaces"
	"reviewreminder/internal/structures"
)

// NewStoreProvider builds the settings store selected by storage.driver and
// puts the settings cache in front of it when caching is enabled.
func NewStoreProvider(conf *structures.Config, compressor storageInterfaces.CompressorInterface, cache providers.CacheProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) (interfaces.KeyValueStore, func(), error) {
	var (
		store   interfaces.KeyValueStore
		cleanup = func() {}
	)

	switch conf.Storage.Driver {
	case "file":
		fs, err := NewFileStore(conf.Storage.FilePath, compressor, logger, metrics)
		if err != nil {
			return nil, nil, err
		}
		store = fs
		cleanup = func() {
			if err := fs.Flush(); err != nil {
				logger.Errorf(providers.TypeApp, "Final flush of %s failed: %s", conf.Storage.FilePath, err)
			}
		}
	case "redis":
		rs, err := NewRedisStore(context.Background(), conf.Storage.RedisURL, HashKey(conf.Storage.KeyPrefix, conf.AppID), logger)
		if err != nil {
			return nil, nil, err
		}
		store = rs
		cleanup = func() {
			if err := rs.Flush(); err != nil {
				logger.Errorf(providers.TypeApp, "Final redis flush failed: %s", err)
			}
			_ = rs.Close()
		}
	case "memory", "":
		store = NewMemoryStore()
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}

	logger.Infof(providers.TypeApp, "Settings store: %s", driverName(conf.Storage.Driver))

	if conf.Cache.Enabled && conf.Cache.Size > 0 {
		store = NewCachedStore(store, cache)
	}
	return store, cleanup, nil
}

// HashKey names the Redis hash holding one app's settings.
func HashKey(prefix, appID string) string {
	if prefix == "" {
		prefix = structures.DefaultKeyPrefix
	}
	return prefix + ":" + appID
}

func driverName(driver string) string {
	if driver == "" {
		return "memory"
	}
	return driver
}
