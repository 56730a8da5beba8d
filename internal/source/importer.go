package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/JonMunkholm/resdir/internal/directory"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// contextCheckInterval is how many rows are written between cancellation checks.
const contextCheckInterval = 500

// ImportResult summarizes one import.
type ImportResult struct {
	Table    string
	Inserted int
	Replaced bool
	Duration time.Duration
}

// ImportOptions controls how records are written.
type ImportOptions struct {
	// Table defaults to DefaultTable.
	Table string

	// Replace empties the table before writing. Without it, rows whose
	// position already exists make the import fail.
	Replace bool
}

func (o ImportOptions) table() (string, error) {
	table := o.Table
	if table == "" {
		table = DefaultTable
	}
	return table, validateTable(table)
}

// recordValues returns r's column values in recordColumns order.
func recordValues(r directory.Record) []any {
	return []any{
		r.Organization, r.Description, r.Address, r.City, r.Zip,
		r.Phone, r.Website, r.Categories, r.Subcategories, r.SearchBlock,
	}
}

// OpenSQLiteWritable opens the database file at path for writing, creating
// it if needed. The caller must close the returned *sql.DB.
func OpenSQLiteWritable(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=rwc", path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return db, nil
}

// ImportSQLite writes records to a SQLite table in one transaction, creating
// the table if it does not exist. Record order becomes the position column.
func ImportSQLite(ctx context.Context, db *sql.DB, records []directory.Record, opts ImportOptions) (ImportResult, error) {
	start := time.Now()
	table, err := opts.table()
	if err != nil {
		return ImportResult{}, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return ImportResult{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, SchemaSQL(table)); err != nil {
		return ImportResult{}, fmt.Errorf("create table: %w", err)
	}
	if opts.Replace {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return ImportResult{}, fmt.Errorf("clear table: %w", err)
		}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(recordColumns)+1), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (position, %s) VALUES (%s)",
		table, strings.Join(recordColumns, ", "), placeholders))
	if err != nil {
		return ImportResult{}, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if i%contextCheckInterval == 0 && ctx.Err() != nil {
			return ImportResult{}, ctx.Err()
		}
		args := append([]any{i}, recordValues(r)...)
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return ImportResult{}, fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return ImportResult{}, fmt.Errorf("commit: %w", err)
	}

	return ImportResult{
		Table:    table,
		Inserted: len(records),
		Replaced: opts.Replace,
		Duration: time.Since(start),
	}, nil
}

// ImportPostgres writes records to a PostgreSQL table in one transaction
// using COPY, creating the table if it does not exist.
func ImportPostgres(ctx context.Context, pool *pgxpool.Pool, records []directory.Record, opts ImportOptions) (ImportResult, error) {
	start := time.Now()
	table, err := opts.table()
	if err != nil {
		return ImportResult{}, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, SchemaSQL(table)); err != nil {
		return ImportResult{}, fmt.Errorf("create table: %w", err)
	}
	if opts.Replace {
		if _, err := tx.Exec(ctx, "TRUNCATE "+table); err != nil {
			return ImportResult{}, fmt.Errorf("clear table: %w", err)
		}
	}

	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = append([]any{int32(i)}, recordValues(r)...)
	}

	columns := append([]string{"position"}, recordColumns...)
	n, err := tx.CopyFrom(ctx, pgx.Identifier(strings.Split(table, ".")), columns, pgx.CopyFromRows(rows))
	if err != nil {
		return ImportResult{}, fmt.Errorf("copy records: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return ImportResult{}, fmt.Errorf("commit: %w", err)
	}

	return ImportResult{
		Table:    table,
		Inserted: int(n),
		Replaced: opts.Replace,
		Duration: time.Since(start),
	}, nil
}
