// Package store opens the task store backend selected by configuration.
package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/tasks/internal/config"
	"github.com/fastygo/tasks/internal/infrastructure/boltdb"
	pgInfra "github.com/fastygo/tasks/internal/infrastructure/postgres"
	"github.com/fastygo/tasks/repository"
	boltRepo "github.com/fastygo/tasks/repository/bolt"
	"github.com/fastygo/tasks/repository/jsonfile"
	pgRepo "github.com/fastygo/tasks/repository/postgres"
)

// CloseFunc releases the resources held by an opened store.
type CloseFunc func(ctx context.Context) error

// Open creates the backing store if needed and returns a repository over it.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.TaskRepository, CloseFunc, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		if err := pgInfra.RunMigrations(cfg, logger); err != nil {
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		return pgRepo.NewTaskRepository(pool), func(context.Context) error {
			pool.Close()
			return nil
		}, nil

	case config.DriverBolt:
		db, err := boltdb.Open(cfg.Store.Path, boltRepo.Bucket, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("bolt: %w", err)
		}
		return boltRepo.NewTaskRepository(db), func(context.Context) error {
			return db.Close()
		}, nil

	case config.DriverJSONFile:
		repo, err := jsonfile.Open(cfg.Store.Path, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("jsonfile: %w", err)
		}
		return repo, func(context.Context) error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
