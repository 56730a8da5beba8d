package source_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/JonMunkholm/resdir/internal/directory"
	"github.com/JonMunkholm/resdir/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLite_Load(t *testing.T) {
	t.Parallel()

	t.Run("reads rows in position order with NULLs as empty", func(t *testing.T) {
		t.Parallel()

		db := openMemoryDB(t)
		_, err := db.Exec(source.SchemaSQL(source.DefaultTable))
		require.NoError(t, err)
		_, err = db.Exec(`INSERT INTO directory_records (position, organization, categories, search_block, website)
			VALUES (2, 'City Library', 'Education', 'city library education', NULL),
			       (1, 'Acme Foodbank', 'Food, Housing', 'acme foodbank food housing', 'https://acme.example')`)
		require.NoError(t, err)

		src, err := source.NewSQLite(db, "")
		require.NoError(t, err)

		records, err := src.Load(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Acme Foodbank", records[0].Organization)
		assert.Equal(t, "https://acme.example", records[0].Website)
		assert.Equal(t, "City Library", records[1].Organization)
		assert.Empty(t, records[1].Website)
		assert.Empty(t, records[1].Description)
	})

	t.Run("empty table is a valid empty dataset", func(t *testing.T) {
		t.Parallel()

		db := openMemoryDB(t)
		_, err := db.Exec(source.SchemaSQL("records"))
		require.NoError(t, err)

		src, err := source.NewSQLite(db, "records")
		require.NoError(t, err)

		records, err := src.Load(context.Background())
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("missing table is a transport failure", func(t *testing.T) {
		t.Parallel()

		src, err := source.NewSQLite(openMemoryDB(t), "absent")
		require.NoError(t, err)

		_, err = src.Load(context.Background())
		assert.ErrorIs(t, err, directory.ErrTransport)
	})

	t.Run("rejects unsafe table names", func(t *testing.T) {
		t.Parallel()

		_, err := source.NewSQLite(openMemoryDB(t), "records; DROP TABLE x")
		assert.Error(t, err)
	})
}
