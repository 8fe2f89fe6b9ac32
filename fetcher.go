package sitegrab

import "context"

// Fetcher retrieves raw page content from URLs.
type Fetcher interface {
	// Fetch performs one HTTP GET and returns the response body.
	// The context controls timeout and cancellation. Implementations must
	// return distinguishable errors for network failure (EUNAVAILABLE),
	// timeout expiry (ETIMEOUT), and non-2xx status (ESTATUS).
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
