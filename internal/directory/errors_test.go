package directory_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/JonMunkholm/resdir/internal/directory"
	"github.com/stretchr/testify/assert"
)

type netTimeout struct{}

func (netTimeout) Error() string   { return "i/o deadline reached" }
func (netTimeout) Timeout() bool   { return true }
func (netTimeout) Temporary() bool { return true }

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"transport", directory.NewLoadError("http x", directory.ErrTransport, errors.New("connection refused")), "SRC001"},
		{"bad status", directory.NewLoadError("http x", directory.ErrStatus, errors.New("HTTP 500")), "SRC002"},
		{"malformed", directory.NewLoadError("file x", directory.ErrMalformed, errors.New("unexpected EOF")), "SRC003"},
		{"timeout wins over transport", directory.NewLoadError("http x", directory.ErrTransport, context.DeadlineExceeded), "SRC004"},
		{"record not found", fmt.Errorf("select 9: %w", directory.ErrRecordNotFound), "REC001"},
		{"rate limit", errors.New("rate limit exceeded"), "RATE001"},
		{"rate limited sentinel", fmt.Errorf("10.0.0.1: %w", directory.ErrRateLimited), "RATE001"},
		{"unknown", errors.New("something odd"), "ERR000"},
		{
			"kind wins over source text",
			directory.NewLoadError("http https://example.org/timeout/data.json", directory.ErrMalformed, errors.New("invalid character")),
			"SRC003",
		},
		{
			"status from a source named like a transport failure",
			directory.NewLoadError("file /srv/transport/data.json", directory.ErrStatus, nil),
			"SRC002",
		},
		{
			"network timeout",
			directory.NewLoadError("http x", directory.ErrTransport, &url.Error{Op: "Get", URL: "http://x", Err: netTimeout{}}),
			"SRC004",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, directory.MapError(tt.err).Code)
		})
	}
}

func TestLoadError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := directory.NewLoadError("file data.json", directory.ErrMalformed, cause)

	assert.ErrorIs(t, err, directory.ErrMalformed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, directory.ErrStatus)
	assert.Equal(t, "load file data.json: malformed payload: boom", err.Error())

	bare := directory.NewLoadError("s3 b/k", directory.ErrStatus, nil)
	assert.Equal(t, "load s3 b/k: bad status", bare.Error())
}

func TestFormatUserError(t *testing.T) {
	t.Parallel()

	err := directory.NewLoadError("http x", directory.ErrStatus, nil)
	assert.Equal(t,
		"The data source returned an error response (Code: SRC002). Check that the data source is published",
		directory.FormatUserError(err),
	)
	assert.Empty(t, directory.FormatUserError(nil))
}
