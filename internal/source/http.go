package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/JonMunkholm/resdir/internal/directory"
)

// DefaultHTTPTimeout is the default timeout for fetching the dataset over HTTP.
const DefaultHTTPTimeout = 30 * time.Second

var _ directory.Loader = (*HTTP)(nil)

// HTTP loads records from a JSON document served over HTTP(S).
type HTTP struct {
	url     string
	client  *http.Client
	timeout time.Duration
	header  http.Header
}

// HTTPOption configures an HTTP source.
type HTTPOption func(*HTTP)

// WithTimeout sets the request timeout.
// Defaults to DefaultHTTPTimeout if not specified.
func WithTimeout(d time.Duration) HTTPOption {
	return func(h *HTTP) {
		h.timeout = d
	}
}

// WithClient replaces the HTTP client. The timeout option is ignored when a
// client is supplied.
func WithClient(c *http.Client) HTTPOption {
	return func(h *HTTP) {
		h.client = c
	}
}

// WithHeader adds a request header, e.g. an API token for a hosted sheet.
func WithHeader(key, value string) HTTPOption {
	return func(h *HTTP) {
		h.header.Add(key, value)
	}
}

// NewHTTP creates an HTTP source for url.
func NewHTTP(url string, opts ...HTTPOption) *HTTP {
	h := &HTTP{
		url:     url,
		timeout: DefaultHTTPTimeout,
		header:  make(http.Header),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.client == nil {
		h.client = &http.Client{Timeout: h.timeout}
	}
	return h
}

// Name describes the source.
func (h *HTTP) Name() string {
	return "http " + h.url
}

// Load fetches and decodes the document. Any non-2xx status is a failure.
func (h *HTTP) Load(ctx context.Context) ([]directory.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, directory.NewLoadError(h.Name(), directory.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	for k, vs := range h.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, directory.NewLoadError(h.Name(), directory.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, directory.NewLoadError(h.Name(), directory.ErrStatus, fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	return Decode(h.Name(), resp.Body)
}
