package app

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"persona-tracker/internal/config"
	"persona-tracker/internal/pkg/db"
	"persona-tracker/internal/repository"
)

// OpenStore opens the configured backend and prepares its schema. The
// returned close func releases the underlying connections.
func OpenStore(ctx context.Context, cfg *config.Config, clock clockwork.Clock) (repository.Store, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		log.Warn().Msg("Using in-memory store, data will not persist")
		return repository.NewMemoryStore(), func() {}, nil

	case config.DriverPostgres:
		pool, err := db.NewPool(ctx, &cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		store := repository.NewPostgresStore(pool.Pool)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to migrate postgres store: %w", err)
		}
		return store, pool.Close, nil

	case config.DriverSQLite:
		sqlDB, err := db.OpenSQLite(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		store := repository.NewSQLiteStore(sqlDB, clock)
		if err := store.Migrate(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("failed to migrate sqlite store: %w", err)
		}
		return store, func() { _ = sqlDB.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
