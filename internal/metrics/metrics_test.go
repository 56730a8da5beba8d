package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JonMunkholm/resdir/internal/directory"
	"github.com/JonMunkholm/resdir/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	m.ObserveLoad(directory.StateLoaded, 42, 250*time.Millisecond)
	m.ObserveFilter(directory.MatchSubstring, 3)
	m.ObserveFilter(directory.MatchSubstring, 0)
	m.ObserveRequest(http.MethodGet, "/results", http.StatusOK, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)

	assert.Contains(t, text, `resdir_loads_total{state="loaded"} 1`)
	assert.Contains(t, text, `resdir_records 42`)
	assert.Contains(t, text, `resdir_filter_passes_total{mode="substring"} 2`)
	assert.Contains(t, text, `resdir_http_requests_total{method="GET",route="/results",status="200"} 1`)

	n, err := testutil.GatherAndCount(m.Registry(), "resdir_filter_matched_records")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
