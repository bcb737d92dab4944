package lookup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
)

// ErrNotFound is returned by Fetcher.Get when the service has no record for
// the requested URL (HTTP 404 or an empty body).
var ErrNotFound = errors.New("record not found")

// FetchOptions configures a Fetcher. Zero values select the defaults.
type FetchOptions struct {
	Timeout  time.Duration // per attempt; default 30s
	RetryMax int           // retries after the first attempt; default 3, negative disables
	WaitMin  time.Duration // default 500ms
	WaitMax  time.Duration // default 10s
	Logger   *slog.Logger
}

// Fetcher performs GET requests with retries on transport errors and 5xx
// responses. It never retries a 4xx.
type Fetcher struct {
	c        *retryablehttp.Client
	failures atomic.Int64
}

func NewFetcher(o FetchOptions) *Fetcher {
	c := retryablehttp.NewClient()
	c.HTTPClient.Timeout = 30 * time.Second
	if o.Timeout > 0 {
		c.HTTPClient.Timeout = o.Timeout
	}
	switch {
	case o.RetryMax > 0:
		c.RetryMax = o.RetryMax
	case o.RetryMax < 0:
		c.RetryMax = 0
	default:
		c.RetryMax = 3
	}
	c.RetryWaitMin = 500 * time.Millisecond
	if o.WaitMin > 0 {
		c.RetryWaitMin = o.WaitMin
	}
	c.RetryWaitMax = 10 * time.Second
	if o.WaitMax > 0 {
		c.RetryWaitMax = o.WaitMax
	}
	if o.Logger != nil {
		c.Logger = o.Logger
	} else {
		c.Logger = nil
	}
	return &Fetcher{c: c}
}

// Get returns the body of url. ctx cancellation aborts pending retries and is
// returned as ctx.Err().
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	b, err := f.get(ctx, url)
	if err != nil && !errors.Is(err, ErrNotFound) && ctx.Err() == nil {
		f.failures.Add(1)
	}
	return b, err
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.c.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", url, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %s", url, resp.Status)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, fmt.Errorf("%s: empty body: %w", url, ErrNotFound)
	}
	return b, nil
}

// Failures is the number of requests that failed for reasons other than
// "not found" or cancellation.
func (f *Fetcher) Failures() int64 { return f.failures.Load() }
