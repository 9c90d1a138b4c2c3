package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/LootVault_Go/internal/config"
	"github.com/osse101/LootVault_Go/internal/database"
	"github.com/osse101/LootVault_Go/internal/database/memory"
	"github.com/osse101/LootVault_Go/internal/database/postgres"
	"github.com/osse101/LootVault_Go/internal/repository"
)

// Store is the configured persistence backend
type Store struct {
	repository.Store
	close func()
}

// Close releases the backend's connections
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// InitializeStore opens the backend named by cfg.StoreBackend. The postgres
// backend is migrated to the latest schema before it is returned.
func InitializeStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		slog.Info(LogMsgStoreInitialized, "backend", cfg.StoreBackend)
		return &Store{Store: memory.NewStore()}, nil

	case config.StoreBackendPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, DBMaxConnIdleTime, DBMaxConnLifetime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDatabase, err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateDatabase, err)
		}
		slog.Info(LogMsgStoreInitialized,
			"backend", cfg.StoreBackend,
			"db_host", cfg.DBHost,
			"db_name", cfg.DBName,
			"max_conns", cfg.DBMaxConns)
		return &Store{Store: postgres.NewStore(pool), close: pool.Close}, nil
	}

	return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStoreBackend, cfg.StoreBackend)
}
