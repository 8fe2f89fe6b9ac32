package mock

import (
	"context"

	"github.com/sitegrab/sitegrab"
)

var _ sitegrab.SeedDiscoverer = (*SeedDiscoverer)(nil)

// SeedDiscoverer is a mock implementation of sitegrab.SeedDiscoverer.
type SeedDiscoverer struct {
	DiscoverFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (d *SeedDiscoverer) Discover(ctx context.Context, baseURL string) ([]string, error) {
	return d.DiscoverFn(ctx, baseURL)
}
