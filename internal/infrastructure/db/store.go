// Package db opens the configured persistence backend and exposes its
// repositories behind the ports interfaces.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/notifeed/notification-service/internal/core/ports"
	"github.com/notifeed/notification-service/internal/infrastructure/config"
	"github.com/notifeed/notification-service/internal/infrastructure/db/mongo"
	"github.com/notifeed/notification-service/internal/infrastructure/db/mysql"
	"github.com/notifeed/notification-service/internal/infrastructure/db/postgres"
	"github.com/notifeed/notification-service/internal/infrastructure/db/sqlite"
)

// Store bundles the repositories of one backend with its lifecycle hooks.
type Store struct {
	Driver        string
	Users         ports.UserRepository
	Notifications ports.NotificationRepository

	ping  func(context.Context) error
	close func(context.Context) error
}

// Ping checks the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases the backend's connections.
func (s *Store) Close(ctx context.Context) error {
	return s.close(ctx)
}

// Open connects to the backend named by cfg.Store.Driver and brings its
// schema up to date.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		return openSQLite(ctx, cfg.Store.SQLitePath)
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.Store.PostgresDSN())
	case config.DriverMySQL:
		return openMySQL(ctx, cfg.Store.MySQLDSN)
	case config.DriverMongo:
		return openMongo(ctx, cfg.Mongo)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func openSQLite(ctx context.Context, path string) (*Store, error) {
	db, err := sqlite.New(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite migrate: %w", err)
	}
	return &Store{
		Driver:        config.DriverSQLite,
		Users:         sqlite.NewUserRepository(db),
		Notifications: sqlite.NewNotificationRepository(db),
		ping:          db.Ping,
		close:         func(context.Context) error { return db.Close() },
	}, nil
}

func openPostgres(ctx context.Context, dsn string) (*Store, error) {
	pool, err := postgres.NewPool(ctx, postgres.Config{DSN: dsn})
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres migrate: %w", err)
	}
	return &Store{
		Driver:        config.DriverPostgres,
		Users:         postgres.NewUserRepository(pool),
		Notifications: postgres.NewNotificationRepository(pool),
		ping:          pool.Ping,
		close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}, nil
}

func openMySQL(ctx context.Context, dsn string) (*Store, error) {
	gdb, err := mysql.NewMySQL(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("mysql: %w", err)
	}
	if err := mysql.Migrate(ctx, gdb); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("mysql migrate: %w", err)
	}
	return &Store{
		Driver:        config.DriverMySQL,
		Users:         mysql.NewUserRepository(gdb),
		Notifications: mysql.NewNotificationRepository(gdb),
		ping:          sqlDB.PingContext,
		close:         func(context.Context) error { return sqlDB.Close() },
	}, nil
}

func openMongo(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.URI,
		Database: cfg.Database,
		Timeout:  10 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo indexes: %w", err)
	}
	return &Store{
		Driver:        config.DriverMongo,
		Users:         mongo.NewUserRepository(db),
		Notifications: mongo.NewNotificationRepository(db),
		ping:          func(ctx context.Context) error { return client.Ping(ctx, nil) },
		close:         client.Disconnect,
	}, nil
}
