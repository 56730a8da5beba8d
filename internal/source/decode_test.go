package source_test

import (
	"strings"
	"testing"

	"github.com/JonMunkholm/resdir/internal/directory"
	"github.com/JonMunkholm/resdir/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `[
  {"Organization": "Acme Foodbank", "Categories": "Food, Housing", "SearchBlock": "acme foodbank food housing"},
  {"Organization": "City Library", "Categories": "Education", "SearchBlock": "city library education", "Website": null}
]`

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("parses records verbatim", func(t *testing.T) {
		t.Parallel()

		records, err := source.Decode("test", strings.NewReader(sampleJSON))
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Acme Foodbank", records[0].Organization)
		assert.Equal(t, "Food, Housing", records[0].Categories)
		assert.Empty(t, records[1].Website)
		assert.Empty(t, records[1].Description)
	})

	t.Run("empty array is a valid empty dataset", func(t *testing.T) {
		t.Parallel()

		records, err := source.Decode("test", strings.NewReader(" [ ] "))
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("ignores unknown fields", func(t *testing.T) {
		t.Parallel()

		records, err := source.Decode("test", strings.NewReader(`[{"Organization":"A","Extra":1}]`))
		require.NoError(t, err)
		assert.Equal(t, "A", records[0].Organization)
	})

	t.Run("stringifies non-string field values", func(t *testing.T) {
		t.Parallel()

		body := `[
		  {"Organization":"Acme","Zip":98101,"Phone":5550100,"Website":false,"City":["Seattle"]},
		  {"Organization":"Library"}
		]`
		records, err := source.Decode("test", strings.NewReader(body))
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Acme", records[0].Organization)
		assert.Equal(t, "98101", records[0].Zip)
		assert.Equal(t, "5550100", records[0].Phone)
		assert.Equal(t, "false", records[0].Website)
		assert.Equal(t, `["Seattle"]`, records[0].City)
		assert.Equal(t, "Library", records[1].Organization)
		assert.Empty(t, records[1].Zip)
	})

	malformed := map[string]string{
		"empty body":       "",
		"null":             "null",
		"object":           `{"Organization":"A"}`,
		"not json":         "<html>oops</html>",
		"truncated":        `[{"Organization":"A"`,
		"non-object items": `[1, 2]`,
		"trailing data":    `[] x`,
	}
	for name, body := range malformed {
		t.Run("rejects "+name, func(t *testing.T) {
			t.Parallel()

			_, err := source.Decode("test", strings.NewReader(body))
			require.Error(t, err)
			assert.ErrorIs(t, err, directory.ErrMalformed)
		})
	}
}
