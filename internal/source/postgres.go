package source

import (
	"context"

	"github.com/JonMunkholm/resdir/internal/directory"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ directory.Loader = (*Postgres)(nil)

// Postgres loads records from a PostgreSQL table.
type Postgres struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgres returns a Postgres source reading table through pool.
func NewPostgres(pool *pgxpool.Pool, table string) (*Postgres, error) {
	if table == "" {
		table = DefaultTable
	}
	if err := validateTable(table); err != nil {
		return nil, err
	}
	return &Postgres{pool: pool, table: table}, nil
}

// Name describes the source.
func (p *Postgres) Name() string {
	return "postgres " + p.table
}

// Load reads every row in position order. NULL columns become "".
func (p *Postgres) Load(ctx context.Context) ([]directory.Record, error) {
	rows, err := p.pool.Query(ctx, selectRecordsSQL(p.table))
	if err != nil {
		return nil, directory.NewLoadError(p.Name(), directory.ErrTransport, err)
	}
	defer rows.Close()

	records := make([]directory.Record, 0)
	for rows.Next() {
		var cols [10]pgtype.Text
		if err := rows.Scan(
			&cols[0], &cols[1], &cols[2], &cols[3], &cols[4],
			&cols[5], &cols[6], &cols[7], &cols[8], &cols[9],
		); err != nil {
			return nil, directory.NewLoadError(p.Name(), directory.ErrMalformed, err)
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
		return nil, directory.NewLoadError(p.Name(), directory.ErrTransport, err)
	}

	return records, nil
}
