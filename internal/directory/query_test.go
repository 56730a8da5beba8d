package directory_test

import (
	"testing"

	"github.com/JonMunkholm/resdir/internal/directory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []directory.Record {
	return []directory.Record{
		{Organization: "Acme Foodbank", Categories: "Food, Housing", SearchBlock: "acme foodbank food housing"},
		{Organization: "City Library", Categories: "Education", SearchBlock: "city library education"},
	}
}

func orgs(records []directory.Record) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Organization
	}
	return names
}

func TestFilter(t *testing.T) {
	t.Parallel()

	t.Run("default criteria returns every record", func(t *testing.T) {
		t.Parallel()

		records := sampleRecords()
		got := directory.Filter(records, directory.DefaultCriteria())
		assert.Equal(t, records, got)
	})

	t.Run("category filter returns matching record only", func(t *testing.T) {
		t.Parallel()

		got := directory.Filter(sampleRecords(), directory.Criteria{Category: "Food", Subcategory: "all"})
		assert.Equal(t, []string{"Acme Foodbank"}, orgs(got))
	})

	t.Run("text filter returns matching record only", func(t *testing.T) {
		t.Parallel()

		got := directory.Filter(sampleRecords(), directory.Criteria{Text: "library", Category: "all", Subcategory: "all"})
		assert.Equal(t, []string{"City Library"}, orgs(got))
	})

	t.Run("text is trimmed and lowercased", func(t *testing.T) {
		t.Parallel()

		got := directory.Filter(sampleRecords(), directory.Criteria{Text: "  LIBRARY ", Category: "all", Subcategory: "all"})
		assert.Equal(t, []string{"City Library"}, orgs(got))
	})

	t.Run("text matches substrings inside words", func(t *testing.T) {
		t.Parallel()

		records := []directory.Record{{Organization: "Wood Workshop", SearchBlock: "wood workshop"}}
		got := directory.Filter(records, directory.Criteria{Text: "shop"})
		assert.Len(t, got, 1)
	})

	t.Run("blank text matches records without search block", func(t *testing.T) {
		t.Parallel()

		records := []directory.Record{{Organization: "Bare"}}
		got := directory.Filter(records, directory.Criteria{Text: "   "})
		assert.Len(t, got, 1)
	})

	t.Run("missing search block never matches text", func(t *testing.T) {
		t.Parallel()

		records := []directory.Record{{Organization: "Bare"}}
		got := directory.Filter(records, directory.Criteria{Text: "bare"})
		assert.Empty(t, got)
	})

	t.Run("missing categories match only the all sentinel", func(t *testing.T) {
		t.Parallel()

		records := []directory.Record{{Organization: "Bare"}}
		assert.Len(t, directory.Filter(records, directory.Criteria{Category: "all"}), 1)
		assert.Empty(t, directory.Filter(records, directory.Criteria{Category: "Food"}))
		assert.Empty(t, directory.Filter(records, directory.Criteria{Subcategory: "Pantry"}))
	})

	t.Run("empty category and subcategory behave like all", func(t *testing.T) {
		t.Parallel()

		got := directory.Filter(sampleRecords(), directory.Criteria{})
		assert.Len(t, got, 2)
	})

	t.Run("substring category match includes longer labels", func(t *testing.T) {
		t.Parallel()

		records := []directory.Record{
			{Organization: "Painters", Categories: "Arts & Crafts"},
			{Organization: "Gallery", Categories: "Art"},
		}
		got := directory.Filter(records, directory.Criteria{Category: "Art"})
		assert.Equal(t, []string{"Painters", "Gallery"}, orgs(got))
	})

	t.Run("subcategory uses the raw subcategory string", func(t *testing.T) {
		t.Parallel()

		records := []directory.Record{
			{Organization: "Pantry", Subcategories: "Food Pantry,Meals"},
			{Organization: "Shelter", Subcategories: "Emergency Shelter"},
		}
		got := directory.Filter(records, directory.Criteria{Subcategory: "Meals"})
		assert.Equal(t, []string{"Pantry"}, orgs(got))
	})

	t.Run("all predicates must hold", func(t *testing.T) {
		t.Parallel()

		got := directory.Filter(sampleRecords(), directory.Criteria{Text: "library", Category: "Food"})
		assert.Empty(t, got)
	})

	t.Run("preserves input order", func(t *testing.T) {
		t.Parallel()

		records := []directory.Record{
			{Organization: "C", SearchBlock: "x c"},
			{Organization: "A", SearchBlock: "a"},
			{Organization: "B", SearchBlock: "x b"},
			{Organization: "D", SearchBlock: "x d"},
		}
		got := directory.Filter(records, directory.Criteria{Text: "x"})
		assert.Equal(t, []string{"C", "B", "D"}, orgs(got))
	})

	t.Run("does not modify input", func(t *testing.T) {
		t.Parallel()

		records := sampleRecords()
		before := sampleRecords()
		_ = directory.Filter(records, directory.Criteria{Text: "acme"})
		assert.Equal(t, before, records)
	})

	t.Run("empty dataset yields empty result", func(t *testing.T) {
		t.Parallel()

		got := directory.Filter(nil, directory.Criteria{Text: "anything"})
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestFilterWithMode_ExactToken(t *testing.T) {
	t.Parallel()

	records := []directory.Record{
		{Organization: "Painters", Categories: "Arts & Crafts"},
		{Organization: "Gallery", Categories: " Art , Culture"},
		{Organization: "None"},
	}

	got := directory.FilterWithMode(records, directory.Criteria{Category: "Art"}, directory.MatchExactToken)
	assert.Equal(t, []string{"Gallery"}, orgs(got))

	got = directory.FilterWithMode(records, directory.Criteria{Category: "all"}, directory.MatchExactToken)
	assert.Len(t, got, 3)
}

func TestFilter_ExcludedRecordsFailAPredicate(t *testing.T) {
	t.Parallel()

	records := []directory.Record{
		{Organization: "Acme Foodbank", Categories: "Food, Housing", Subcategories: "Pantry", SearchBlock: "acme foodbank"},
		{Organization: "City Library", Categories: "Education", Subcategories: "Books", SearchBlock: "city library"},
		{Organization: "Art House", Categories: "Arts & Crafts", SearchBlock: "art house"},
		{Organization: "Bare"},
	}
	criteria := []directory.Criteria{
		directory.DefaultCriteria(),
		{Text: "a", Category: "all", Subcategory: "all"},
		{Text: "", Category: "Food", Subcategory: "all"},
		{Text: "", Category: "all", Subcategory: "Books"},
		{Text: "house", Category: "Art", Subcategory: "all"},
		{Text: "zzz", Category: "Education", Subcategory: "Books"},
	}

	for _, mode := range []directory.MatchMode{directory.MatchSubstring, directory.MatchExactToken} {
		for _, c := range criteria {
			kept := make(map[string]bool)
			for _, r := range directory.FilterWithMode(records, c, mode) {
				kept[r.Organization] = true
			}
			for _, r := range records {
				m := directory.Explain(r, c, mode)
				assert.Equal(t, kept[r.Organization], m.OK(), "mode=%s criteria=%+v record=%s", mode, c, r.Organization)
			}
		}
	}
}

func TestCriteria(t *testing.T) {
	t.Parallel()

	assert.True(t, directory.DefaultCriteria().IsDefault())
	assert.True(t, directory.Criteria{Text: "  "}.IsDefault())
	assert.False(t, directory.Criteria{Category: "Food"}.IsDefault())

	n := directory.Criteria{Text: " x ", Category: " "}.Normalize()
	assert.Equal(t, directory.Criteria{Text: " x ", Category: "all", Subcategory: "all"}, n)
}
