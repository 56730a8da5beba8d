package source

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JonMunkholm/resdir/internal/directory"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

var _ directory.Loader = (*SQLite)(nil)

// SQLite loads records from a SQLite table.
type SQLite struct {
	db    *sql.DB
	table string
}

// OpenSQLite opens the database file at path read-only.
// The caller must close the returned *sql.DB.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return db, nil
}

// NewSQLite returns a SQLite source reading table from db.
func NewSQLite(db *sql.DB, table string) (*SQLite, error) {
	if table == "" {
		table = DefaultTable
	}
	if err := validateTable(table); err != nil {
		return nil, err
	}
	return &SQLite{db: db, table: table}, nil
}

// Name describes the source.
func (s *SQLite) Name() string {
	return "sqlite " + s.table
}

// Load reads every row in position order. NULL columns become "".
func (s *SQLite) Load(ctx context.Context) ([]directory.Record, error) {
	rows, err := s.db.QueryContext(ctx, selectRecordsSQL(s.table))
	if err != nil {
		return nil, directory.NewLoadError(s.Name(), directory.ErrTransport, err)
	}
	defer rows.Close()

	records := make([]directory.Record, 0)
	for rows.Next() {
		var cols [10]sql.NullString
		if err := rows.Scan(
			&cols[0], &cols[1], &cols[2], &cols[3], &cols[4],
			&cols[5], &cols[6], &cols[7], &cols[8], &cols[9],
		); err != nil {
			return nil, directory.NewLoadError(s.Name(), directory.ErrMalformed, err)
		}
		records = append(records, directory.Record{
			Organization:  cols[0].String,
			Description:   cols[1].String,
			Address:       cols[2].String,
			City:          cols[3].String,
			Zip:           cols[4].String,
			Phone:         cols[5].String,
			Website:       cols[6].String,
			Categories:    cols[7].String,
			Subcategories: cols[8].String,
			SearchBlock:   cols[9].String,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, directory.NewLoadError(s.Name(), directory.ErrTransport, err)
	}

	return records, nil
}
