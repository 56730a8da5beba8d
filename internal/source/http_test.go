package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JonMunkholm/resdir/internal/directory"
	"github.com/JonMunkholm/resdir/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTP_Load(t *testing.T) {
	t.Parallel()

	t.Run("returns records from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			assert.Equal(t, "Bearer t", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(sampleJSON))
		}))
		defer server.Close()

		records, err := source.NewHTTP(server.URL, source.WithHeader("Authorization", "Bearer t")).Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("non-success status is a status failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusNotFound)
		}))
		defer server.Close()

		_, err := source.NewHTTP(server.URL).Load(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, directory.ErrStatus)
		assert.Contains(t, err.Error(), "HTTP 404")
	})

	t.Run("html payload is malformed", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html></html>"))
		}))
		defer server.Close()

		_, err := source.NewHTTP(server.URL).Load(context.Background())
		assert.ErrorIs(t, err, directory.ErrMalformed)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("[]"))
		}))
		defer server.Close()

		_, err := source.NewHTTP(server.URL, source.WithTimeout(10*time.Millisecond)).Load(context.Background())
		assert.ErrorIs(t, err, directory.ErrTransport)
	})

	t.Run("unreachable host is a transport failure", func(t *testing.T) {
		t.Parallel()

		_, err := source.NewHTTP("http://non-existent-host.invalid/data.json", source.WithTimeout(100*time.Millisecond)).
			Load(context.Background())
		assert.ErrorIs(t, err, directory.ErrTransport)
	})
}
