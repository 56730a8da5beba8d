package web_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/resdir/internal/config"
	"github.com/JonMunkholm/resdir/internal/directory"
	"github.com/JonMunkholm/resdir/internal/metrics"
	"github.com/JonMunkholm/resdir/internal/web"
	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			IdleTimeout:     5 * time.Second,
			ShutdownTimeout: time.Second,
			RequestTimeout:  5 * time.Second,
		},
		Session: config.SessionConfig{
			CookieName: "resdir_session",
			Capacity:   100,
			TTL:        time.Hour,
		},
		Rate:     config.RateLimitConfig{Enabled: false},
		Security: config.SecurityConfig{EnableCSP: true},
	}
}

func testRecords() []directory.Record {
	return []directory.Record{
		{
			Organization:  "Food Bank",
			Description:   "Free groceries",
			Website:       "https://food.example",
			Categories:    "Food, Basic Needs",
			Subcategories: "Pantry",
			SearchBlock:   "food bank free groceries pantry",
		},
		{
			Organization:  "Art House",
			Description:   "Community studio",
			Categories:    "Arts & Crafts",
			Subcategories: "Classes",
			SearchBlock:   "art house community studio classes",
		},
		{
			Description: "Clinic without a name",
			Categories:  "Health",
			SearchBlock: "clinic health",
		},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadedBrowser(t *testing.T, records []directory.Record) *directory.Browser {
	t.Helper()
	b := directory.NewBrowser(directory.WithLogger(quietLogger()))
	err := b.Load(context.Background(), directory.LoaderFunc(func(context.Context) ([]directory.Record, error) {
		return records, nil
	}))
	require.NoError(t, err)
	return b
}

func newServer(t *testing.T, cfg *config.Config, b *directory.Browser) *web.Server {
	t.Helper()
	sessions := directory.NewSessions(cfg.Session.Capacity, cfg.Session.TTL)
	return web.NewServer(cfg, b, sessions, metrics.New())
}

type client struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func (c *client) get(path string, headers ...string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rr := httptest.NewRecorder()
	c.handler.ServeHTTP(rr, req)
	if set := rr.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}
	return rr
}

func (c *client) htmx(path string) *httptest.ResponseRecorder {
	return c.get(path, "HX-Request", "true")
}

func parse(t *testing.T, rr *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rr.Body)
	require.NoError(t, err)
	return doc
}

func names(doc *goquery.Document) []string {
	var out []string
	doc.Find(".result-name").Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.Text())
	})
	return out
}

func TestIndex_Loaded(t *testing.T) {
	t.Parallel()

	srv := newServer(t, testConfig(), loadedBrowser(t, testRecords()))
	c := &client{t: t, handler: srv.Router()}

	rr := c.get("/")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotEmpty(t, c.cookies, "session cookie issued")

	doc := parse(t, rr)
	assert.Equal(t, []string{"Food Bank", "Art House", "No name"}, names(doc))

	var categories []string
	doc.Find("select#category option").Each(func(_ int, s *goquery.Selection) {
		v, _ := s.Attr("value")
		categories = append(categories, v)
	})
	assert.Equal(t, []string{"all", "Food", "Basic Needs", "Arts & Crafts", "Health"}, categories)
	assert.Equal(t, 1, doc.Find("#details .detail-empty").Length())
}

func TestIndex_SecurityHeaders(t *testing.T) {
	t.Parallel()

	srv := newServer(t, testConfig(), loadedBrowser(t, testRecords()))
	rr := (&client{t: t, handler: srv.Router()}).get("/")

	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Contains(t, rr.Header().Get("Content-Security-Policy"), "https://unpkg.com")
}

func TestResults_Filters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"text is lowercased and trimmed", "?q=+FOOD+", []string{"Food Bank"}},
		{"category substring", "?category=Art", []string{"Art House"}},
		{"subcategory", "?subcategory=Pantry", []string{"Food Bank"}},
		{"all sentinels", "?q=&category=all&subcategory=all", []string{"Food Bank", "Art House", "No name"}},
		{"conjunction", "?q=clinic&category=Food", nil},
	}

	srv := newServer(t, testConfig(), loadedBrowser(t, testRecords()))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := &client{t: t, handler: srv.Router()}
			rr := c.htmx("/results" + tt.query)
			require.Equal(t, http.StatusOK, rr.Code)

			doc := parse(t, rr)
			assert.Equal(t, tt.want, names(doc))
			if len(tt.want) == 0 {
				assert.Equal(t, "No results found.", doc.Find(".card.empty").Text())
			}
		})
	}
}

func TestResults_CriteriaPersistInSession(t *testing.T) {
	t.Parallel()

	srv := newServer(t, testConfig(), loadedBrowser(t, testRecords()))
	c := &client{t: t, handler: srv.Router()}

	c.htmx("/results?q=art")
	doc := parse(t, c.get("/"))

	q, _ := doc.Find("input#q").Attr("value")
	assert.Equal(t, "art", q)
	assert.Equal(t, []string{"Art House"}, names(doc))
}

func TestSelect_KeepsSelectionAcrossFilterChanges(t *testing.T) {
	t.Parallel()

	srv := newServer(t, testConfig(), loadedBrowser(t, testRecords()))
	c := &client{t: t, handler: srv.Router()}

	rr := c.htmx("/records/0")
	require.Equal(t, http.StatusOK, rr.Code)
	detail := parse(t, rr)
	assert.Equal(t, "Food Bank", detail.Find(".detail-name").Text())
	rel, _ := detail.Find("a.website").Attr("rel")
	assert.Equal(t, "noopener noreferrer", rel)

	// A filter that excludes the selected record leaves the detail alone.
	c.htmx("/results?category=Health")
	doc := parse(t, c.get("/"))
	assert.Equal(t, []string{"No name"}, names(doc))
	assert.Equal(t, "Food Bank", doc.Find("#details .detail-name").Text())

	// Only another selection replaces it.
	c.htmx("/records/2")
	doc = parse(t, c.get("/"))
	assert.Equal(t, "No name", doc.Find("#details .detail-name").Text())
}

func TestSelect_FullPage(t *testing.T) {
	t.Parallel()

	srv := newServer(t, testConfig(), loadedBrowser(t, testRecords()))
	c := &client{t: t, handler: srv.Router()}

	doc := parse(t, c.get("/records/1"))
	assert.Equal(t, "Art House", doc.Find("#details .detail-name").Text())
	assert.Len(t, names(doc), 3)
}

func TestSelect_NotFound(t *testing.T) {
	t.Parallel()

	srv := newServer(t, testConfig(), loadedBrowser(t, testRecords()))
	c := &client{t: t, handler: srv.Router()}

	for _, path := range []string{"/records/99", "/records/abc", "/records/-1"} {
		rr := c.htmx(path)
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
		assert.Contains(t, rr.Body.String(), "REC001", path)
	}
}

func TestLoading(t *testing.T) {
	t.Parallel()

	b := directory.NewBrowser(directory.WithLogger(quietLogger()))
	srv := newServer(t, testConfig(), b)
	c := &client{t: t, handler: srv.Router()}

	doc := parse(t, c.htmx("/results"))
	assert.Equal(t, directory.LoadingMessage, doc.Find(".loading").Text())

	rr := c.get("/api/records")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	rr = c.get("/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"state":"loading","records":0}`, rr.Body.String())
}

func TestLoading_FiltersRefreshAfterLoad(t *testing.T) {
	t.Parallel()

	b := directory.NewBrowser(directory.WithLogger(quietLogger()))
	srv := newServer(t, testConfig(), b)
	c := &client{t: t, handler: srv.Router()}

	page := parse(t, c.get("/"))
	assert.Equal(t, 1, page.Find("select#category option").Length())
	assert.Equal(t, 1, page.Find("#results .loading").Length())

	// A poll that is still loading keeps the stale mark for later.
	doc := parse(t, c.htmx("/results"))
	assert.Equal(t, 0, doc.Find("[hx-swap-oob]").Length())

	err := b.Load(context.Background(), directory.LoaderFunc(func(context.Context) ([]directory.Record, error) {
		return testRecords(), nil
	}))
	require.NoError(t, err)

	doc = parse(t, c.htmx("/results"))
	assert.Len(t, names(doc), 3)

	oob := doc.Find("#filter-region[hx-swap-oob=true]")
	require.Equal(t, 1, oob.Length())
	var categories []string
	oob.Find("select#category option").Each(func(_ int, s *goquery.Selection) {
		v, _ := s.Attr("value")
		categories = append(categories, v)
	})
	assert.Equal(t, []string{"all", "Food", "Basic Needs", "Arts & Crafts", "Health"}, categories)
	assert.Equal(t, 3, oob.Find("select#subcategory option").Length())

	// Later polls only carry results.
	doc = parse(t, c.htmx("/results"))
	assert.Len(t, names(doc), 3)
	assert.Equal(t, 0, doc.Find("[hx-swap-oob]").Length())
}

func TestResults_NoFilterRefreshWhenLoadedFirst(t *testing.T) {
	t.Parallel()

	srv := newServer(t, testConfig(), loadedBrowser(t, testRecords()))
	c := &client{t: t, handler: srv.Router()}

	c.get("/")
	doc := parse(t, c.htmx("/results?q=food"))
	assert.Equal(t, []string{"Food Bank"}, names(doc))
	assert.Equal(t, 0, doc.Find("[hx-swap-oob]").Length())
}

func TestLoadFailed(t *testing.T) {
	t.Parallel()

	b := directory.NewBrowser(directory.WithLogger(quietLogger()))
	err := b.Load(context.Background(), directory.LoaderFunc(func(context.Context) ([]directory.Record, error) {
		return nil, directory.NewLoadError("test", directory.ErrStatus, errors.New("HTTP 500"))
	}))
	require.Error(t, err)

	srv := newServer(t, testConfig(), b)
	c := &client{t: t, handler: srv.Router()}

	doc := parse(t, c.htmx("/results?q=food"))
	cards := doc.Find(".card")
	require.Equal(t, 1, cards.Length())
	assert.Equal(t, "Error loading resources.", cards.Text())
	assert.NotContains(t, doc.Text(), "HTTP 500")

	page := parse(t, c.get("/"))
	assert.Equal(t, "Error loading resources.", page.Find("#results .card.error").Text())
	assert.Equal(t, 1, page.Find("select#category option").Length())

	rr := c.get("/api/records")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), directory.LoadFailedMessage)
	assert.Contains(t, rr.Body.String(), "SRC002")

	rr = c.get("/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"state":"failed","records":0}`, rr.Body.String())
}

func TestAPIRecords(t *testing.T) {
	t.Parallel()

	srv := newServer(t, testConfig(), loadedBrowser(t, testRecords()))
	c := &client{t: t, handler: srv.Router()}

	rr := c.get("/api/records?category=Food")
	require.Equal(t, http.StatusOK, rr.Code)
	etag := rr.Header().Get("ETag")
	require.NotEmpty(t, etag)

	var body web.RecordsResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "substring", body.Mode)
	assert.Equal(t, "all", body.Criteria.Subcategory)

	rr = c.get("/api/records?category=Food", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, rr.Code)

	rr = c.get("/api/records?category=Health", "If-None-Match", etag)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEqual(t, etag, rr.Header().Get("ETag"))
}

func TestAPIRecord(t *testing.T) {
	t.Parallel()

	srv := newServer(t, testConfig(), loadedBrowser(t, testRecords()))
	c := &client{t: t, handler: srv.Router()}

	rr := c.get("/api/records/1")
	require.Equal(t, http.StatusOK, rr.Code)

	var got map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.EqualValues(t, 1, got["id"])
	assert.Equal(t, "Art House", got["Organization"])

	rr = c.get("/api/records/42")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "REC001")
}

func TestAPIVocabulary(t *testing.T) {
	t.Parallel()

	srv := newServer(t, testConfig(), loadedBrowser(t, testRecords()))
	rr := (&client{t: t, handler: srv.Router()}).get("/api/vocabulary")
	require.Equal(t, http.StatusOK, rr.Code)

	var v directory.Vocabulary
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v))
	assert.Equal(t, []string{"Food", "Basic Needs", "Arts & Crafts", "Health"}, v.Categories)
	assert.Equal(t, []string{"Pantry", "Classes"}, v.Subcategories)
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Rate = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 2}
	srv := newServer(t, cfg, loadedBrowser(t, testRecords()))
	c := &client{t: t, handler: srv.Router()}

	assert.Equal(t, http.StatusOK, c.get("/api/vocabulary").Code)
	assert.Equal(t, http.StatusOK, c.get("/api/vocabulary").Code)

	rr := c.get("/api/vocabulary")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
	assert.Contains(t, rr.Body.String(), "RATE001")
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	srv := newServer(t, testConfig(), loadedBrowser(t, testRecords()))
	c := &client{t: t, handler: srv.Router()}

	c.get("/api/vocabulary")
	rr := c.get("/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), `resdir_http_requests_total{method="GET",route="/api/vocabulary",status="200"}`))
}

func TestStatic(t *testing.T) {
	t.Parallel()

	srv := newServer(t, testConfig(), loadedBrowser(t, testRecords()))
	rr := (&client{t: t, handler: srv.Router()}).get("/static/app.css")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), ".result-list")
}
