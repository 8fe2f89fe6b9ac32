package sitegrab

import (
	"net/url"
	"time"
)

// Defaults for crawl configuration.
const (
	DefaultMaxPages = 100
	DefaultDelay    = time.Second
)

// Config holds the parameters for a single crawl run.
// It is immutable once the run starts.
type Config struct {
	// Seeds are the absolute URLs the crawl starts from. Required.
	Seeds []string

	// AllowedDomains restricts the crawl to URLs whose host is an exact
	// member of this list. Empty means all domains are allowed.
	AllowedDomains []string

	// MaxPages caps the number of successfully processed pages.
	MaxPages int

	// Delay is the politeness pause charged before every fetch attempt.
	Delay time.Duration
}

// Validate returns an error if the configuration cannot start a crawl.
func (c *Config) Validate() error {
	if len(c.Seeds) == 0 {
		return Errorf(EINVALID, "at least one seed URL required")
	}
	for _, seed := range c.Seeds {
		u, err := url.Parse(seed)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return Errorf(EINVALID, "seed URL %q must be absolute", seed)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return Errorf(EINVALID, "seed URL %q must use http or https", seed)
		}
	}
	if c.MaxPages < 0 {
		return Errorf(EINVALID, "max pages must not be negative")
	}
	if c.Delay < 0 {
		return Errorf(EINVALID, "delay must not be negative")
	}
	return nil
}

// Scope returns the domain scope filter derived from AllowedDomains.
func (c *Config) Scope() *DomainScope {
	return NewDomainScope(c.AllowedDomains)
}
