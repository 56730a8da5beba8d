package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonMunkholm/resdir/internal/config"
	"github.com/JonMunkholm/resdir/internal/directory"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Open builds the loader selected by cfg.Driver.
// The returned close function releases any connections the loader holds and
// is always safe to call.
func Open(ctx context.Context, cfg config.SourceConfig) (directory.Loader, func(), error) {
	noop := func() {}

	switch strings.ToLower(cfg.Driver) {
	case config.DriverFile:
		return NewFile(cfg.Path), noop, nil

	case config.DriverHTTP:
		return NewHTTP(cfg.URL), noop, nil

	case config.DriverPostgres:
		poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("parse database URL: %w", err)
		}
		poolConfig.MaxConns = int32(cfg.MaxConns)

		// Connecting is deferred to the first query so that an unreachable
		// database surfaces as a load failure rather than a startup error.
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, noop, fmt.Errorf("create database pool: %w", err)
		}
		loader, err := NewPostgres(pool, cfg.Table)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		return loader, pool.Close, nil

	case config.DriverSQLite:
		db, err := OpenSQLite(cfg.Path)
		if err != nil {
			return nil, noop, err
		}
		loader, err := NewSQLite(db, cfg.Table)
		if err != nil {
			db.Close()
			return nil, noop, err
		}
		return loader, func() { db.Close() }, nil

	case config.DriverS3:
		loader, err := NewS3(ctx, S3Config{
			Bucket:    cfg.Bucket,
			Key:       cfg.Key,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			PathStyle: cfg.PathStyle,
		})
		if err != nil {
			return nil, noop, err
		}
		return loader, noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown source driver: %s", cfg.Driver)
	}
}
