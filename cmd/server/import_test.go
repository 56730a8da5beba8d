package main_test

import (
	"os"
	"path/filepath"
	"testing"

	main "github.com/JonMunkholm/resdir/cmd/server"
	"github.com/JonMunkholm/resdir/internal/config"
	"github.com/JonMunkholm/resdir/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("imports into sqlite", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		dataPath := filepath.Join(dir, "data.json")
		dbPath := filepath.Join(dir, "dir.db")
		require.NoError(t, os.WriteFile(dataPath, []byte(`[
			{"Organization": "Food Bank", "Categories": "Food"},
			{"Organization": "Art House", "Categories": null}
		]`), 0o600))

		deps, stdout, _ := newDeps(nil)
		deps.Config = &config.Config{Source: config.SourceConfig{
			Driver: config.DriverSQLite,
			Path:   dbPath,
			Table:  source.DefaultTable,
		}}

		require.NoError(t, (&main.ImportCmd{File: dataPath}).Run(deps))
		assert.Contains(t, stdout.String(), "Imported 2 records into directory_records")

		db, err := source.OpenSQLite(dbPath)
		require.NoError(t, err)
		defer db.Close()
		src, err := source.NewSQLite(db, "")
		require.NoError(t, err)

		records, err := src.Load(deps.Ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Art House", records[1].Organization)
		assert.Empty(t, records[1].Categories)
	})

	t.Run("rejects non SQL drivers", func(t *testing.T) {
		t.Parallel()

		dataPath := filepath.Join(t.TempDir(), "data.json")
		require.NoError(t, os.WriteFile(dataPath, []byte(`[]`), 0o600))

		deps, _, stderr := newDeps(nil)
		deps.Config = &config.Config{Source: config.SourceConfig{Driver: config.DriverHTTP}}

		require.Error(t, (&main.ImportCmd{File: dataPath}).Run(deps))
		assert.Contains(t, stderr.String(), "SOURCE_DRIVER")
	})

	t.Run("malformed file", func(t *testing.T) {
		t.Parallel()

		dataPath := filepath.Join(t.TempDir(), "data.json")
		require.NoError(t, os.WriteFile(dataPath, []byte(`{"not": "an array"}`), 0o600))

		deps, _, stderr := newDeps(nil)
		deps.Config = &config.Config{Source: config.SourceConfig{Driver: config.DriverSQLite}}

		require.Error(t, (&main.ImportCmd{File: dataPath}).Run(deps))
		assert.Contains(t, stderr.String(), "SRC003")
	})
}
