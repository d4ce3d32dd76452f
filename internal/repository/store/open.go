// Package store opens the document-store backend selected in configuration.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"volunteer-backend/internal/config"
	"volunteer-backend/internal/logger"
	"volunteer-backend/internal/repository"
	"volunteer-backend/internal/repository/mongodb"
	"volunteer-backend/internal/repository/postgres"
)

// CloseFunc releases the connections behind a Store
type CloseFunc func(ctx context.Context) error

// Open connects to the configured backend and returns its repositories
func Open(ctx context.Context, cfg *config.Config) (*repository.Store, CloseFunc, error) {
	switch cfg.Database.Driver {
	case config.DriverMongoDB:
		return openMongo(ctx, cfg)
	case config.DriverPostgres, "":
		return openPostgres(ctx, cfg)
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config) (*repository.Store, CloseFunc, error) {
	logger.Info("Connecting to postgres...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping postgres: %w", err)
	}
	logger.Info("Database connection established", "driver", config.DriverPostgres)

	if cfg.Database.Migrate {
		if err := postgres.Migrate(cfg.GetDatabaseConnectionString()); err != nil {
			db.Close()
			return nil, nil, err
		}
	}

	closeFn := func(context.Context) error { return db.Close() }
	return postgres.NewStore(db), closeFn, nil
}

func openMongo(ctx context.Context, cfg *config.Config) (*repository.Store, CloseFunc, error) {
	logger.Info("Connecting to mongodb...", "database", cfg.Database.Database)
	client, err := mongodb.Connect(ctx, cfg.Database.URI)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Database connection established", "driver", config.DriverMongoDB)

	if err := mongodb.EnsureIndexes(ctx, client, cfg.Database.Database); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, err
	}

	return mongodb.NewStore(client, cfg.Database.Database), client.Disconnect, nil
}
