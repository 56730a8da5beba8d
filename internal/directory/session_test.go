package directory_test

import (
	"testing"
	"time"

	"github.com/JonMunkholm/resdir/internal/directory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	t.Parallel()

	t.Run("starts with default criteria and no selection", func(t *testing.T) {
		t.Parallel()

		s := directory.NewSession("abc")
		assert.Equal(t, directory.DefaultCriteria(), s.Criteria())
		_, ok := s.Selected()
		assert.False(t, ok)
	})

	t.Run("criteria changes keep the selection", func(t *testing.T) {
		t.Parallel()

		s := directory.NewSession("abc")
		s.Select(directory.Record{ID: 1, Organization: "City Library"})
		s.SetCriteria(directory.Criteria{Category: "Food"})

		got, ok := s.Selected()
		require.True(t, ok)
		assert.Equal(t, "City Library", got.Organization)
		assert.Equal(t, directory.Criteria{Category: "Food", Subcategory: "all"}, s.Criteria())
	})

	t.Run("selection is replaced by the next selection", func(t *testing.T) {
		t.Parallel()

		s := directory.NewSession("abc")
		s.Select(directory.Record{ID: 0, Organization: "A"})
		s.Select(directory.Record{ID: 1, Organization: "B"})

		got, _ := s.Selected()
		assert.Equal(t, "B", got.Organization)
	})

	t.Run("stale filter mark is taken once", func(t *testing.T) {
		t.Parallel()

		s := directory.NewSession("abc")
		assert.False(t, s.TakeStaleFilters())

		s.MarkStaleFilters()
		assert.True(t, s.TakeStaleFilters())
		assert.False(t, s.TakeStaleFilters())
	})
}

func TestSessions(t *testing.T) {
	t.Parallel()

	t.Run("returns the same session for the same id", func(t *testing.T) {
		t.Parallel()

		ss := directory.NewSessions(10, time.Hour)
		a := ss.Get("one")
		a.SetCriteria(directory.Criteria{Text: "food"})

		assert.Same(t, a, ss.Get("one"))
		assert.NotSame(t, a, ss.Get("two"))
		assert.Equal(t, 2, ss.Len())
	})

	t.Run("evicts beyond capacity", func(t *testing.T) {
		t.Parallel()

		ss := directory.NewSessions(1, time.Hour)
		first := ss.Get("one")
		ss.Get("two")

		assert.Equal(t, 1, ss.Len())
		assert.NotSame(t, first, ss.Get("one"))
	})

	t.Run("access extends the lifetime", func(t *testing.T) {
		t.Parallel()

		ss := directory.NewSessions(10, 300*time.Millisecond)
		active := ss.Get("active")
		idle := ss.Get("idle")

		time.Sleep(200 * time.Millisecond)
		assert.Same(t, active, ss.Get("active"))
		time.Sleep(200 * time.Millisecond)

		assert.Same(t, active, ss.Get("active"))
		assert.NotSame(t, idle, ss.Get("idle"))
	})
}
