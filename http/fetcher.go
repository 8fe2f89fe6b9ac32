// Package http provides the HTTP implementations of sitegrab.Fetcher and
// sitegrab.SeedDiscoverer.
package http

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"

	"github.com/sitegrab/sitegrab"
)

// Ensure Fetcher implements sitegrab.Fetcher at compile time.
var _ sitegrab.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page content from URLs using plain HTTP GET requests.
// It does not execute JavaScript.
//
// Failures carry distinguishable error codes: ETIMEOUT when the deadline
// expires, ESTATUS for non-2xx responses, EUNAVAILABLE for network errors.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient sets the underlying HTTP client.
// Defaults to http.DefaultClient. Timeouts are controlled per-request by
// the caller's context, not by the client.
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the body at the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", sitegrab.Errorf(sitegrab.EINVALID, "invalid request for %s: %v", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", classify(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", sitegrab.Errorf(sitegrab.ESTATUS, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classify(url, err)
	}

	return string(body), nil
}

// Close releases resources. The HTTP fetcher holds none.
func (f *Fetcher) Close() error {
	return nil
}

// classify maps transport errors to domain error codes so the engine's
// error log can distinguish timeouts from unreachable hosts.
func classify(url string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return sitegrab.Errorf(sitegrab.ETIMEOUT, "timeout fetching %s", url)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return sitegrab.Errorf(sitegrab.ETIMEOUT, "timeout fetching %s", url)
	}
	return sitegrab.Errorf(sitegrab.EUNAVAILABLE, "fetching %s: %v", url, err)
}
