package main

import (
	"fmt"
	"log/slog"

	"github.com/sagarc03/lakegate"
	"github.com/sagarc03/lakegate/azure"
	"github.com/sagarc03/lakegate/config"
	"github.com/sagarc03/lakegate/filesystem"
	"github.com/sagarc03/lakegate/gcs"
)

// newStorageFactory builds the factory for the configured backend. The
// returned close function releases shared backend resources.
func newStorageFactory(cfg *config.Config) (lakegate.StorageClientFactory, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Backend {
	case config.BackendAzure:
		f := azure.NewFactory(azure.Config{
			EndpointSuffix: cfg.Storage.EndpointSuffix,
			Endpoint:       cfg.Storage.Endpoint,
		})
		return f, noop, nil
	case config.BackendGCS:
		f := gcs.NewFactory(gcs.Config{Endpoint: cfg.Storage.Endpoint})
		return f, f.Close, nil
	case config.BackendFilesystem:
		f, err := filesystem.Open(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		return f, f.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func newHealthChecker(cfg *config.Config, factory lakegate.StorageClientFactory, logger *slog.Logger) *lakegate.HealthChecker {
	probe := lakegate.NewConnectivityProbe(factory, cfg.Storage.Account, logger)
	return lakegate.NewHealthChecker(probe, lakegate.HealthConfig{
		Version:     cfg.Version,
		Environment: cfg.Environment,
		Logger:      logger,
	})
}
