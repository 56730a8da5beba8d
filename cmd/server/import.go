package main

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/resdir/internal/config"
	"github.com/JonMunkholm/resdir/internal/directory"
	"github.com/JonMunkholm/resdir/internal/source"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	records, err := source.NewFile(c.File).Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", directory.FormatUserError(err))
		return err
	}

	cfg := deps.Config.Source
	opts := source.ImportOptions{Table: cfg.Table, Replace: c.Replace}

	var res source.ImportResult
	switch strings.ToLower(cfg.Driver) {
	case config.DriverSQLite:
		db, err := source.OpenSQLiteWritable(cfg.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		res, err = source.ImportSQLite(deps.Ctx, db, records, opts)
		if err != nil {
			return fmt.Errorf("import into %s: %w", cfg.Path, err)
		}

	case config.DriverPostgres:
		pool, err := pgxpool.New(deps.Ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("create database pool: %w", err)
		}
		defer pool.Close()
		res, err = source.ImportPostgres(deps.Ctx, pool, records, opts)
		if err != nil {
			return fmt.Errorf("import into postgres: %w", err)
		}

	default:
		fmt.Fprintln(deps.Stderr, "Hint: set SOURCE_DRIVER=sqlite or SOURCE_DRIVER=postgres")
		return fmt.Errorf("import needs a SQL source, got %q", cfg.Driver)
	}

	deps.Logger.Info("dataset imported",
		"table", res.Table,
		"records", res.Inserted,
		"replaced", res.Replaced,
		"duration", res.Duration,
	)
	fmt.Fprintf(deps.Stdout, "Imported %d records into %s\n", res.Inserted, res.Table)
	return nil
}
