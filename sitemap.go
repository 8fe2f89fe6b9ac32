package sitegrab

import "context"

// SeedDiscoverer expands a site URL into crawlable seed URLs, typically by
// reading the site's sitemap.
type SeedDiscoverer interface {
	// Discover returns the URLs advertised by the site at baseURL.
	// Returns an empty slice (not nil) when the site advertises none.
	Discover(ctx context.Context, baseURL string) ([]string, error)
}
