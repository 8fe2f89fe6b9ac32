package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/sitegrab/sitegrab"
	"golang.org/x/time/rate"
)

// Compile-time interface verification.
var (
	_ sitegrab.Pacer         = (*Pacer)(nil)
	_ sitegrab.DomainLimiter = (*DomainLimiter)(nil)
)

// Pacer serializes fetch attempts with a fixed politeness pause using a
// token bucket. The pause is charged before every fetch, including the very
// first one of the run.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a Pacer that spaces requests delay apart.
// A zero or negative delay never blocks.
func NewPacer(delay time.Duration) *Pacer {
	if delay <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	limiter := rate.NewLimiter(rate.Every(delay), 1)
	// Drain the initial token so the first Wait pays the full pause too.
	limiter.Allow()
	return &Pacer{limiter: limiter}
}

// Wait blocks until the pause has elapsed.
// Returns an error if the context is canceled before the wait completes.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// DomainLimiter provides per-domain rate limiting using token buckets.
// It creates a separate limiter for each domain, allowing concurrent
// requests to different domains while enforcing the pause within each
// domain.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	delay    time.Duration
}

// NewDomainLimiter creates a DomainLimiter that spaces requests to each
// domain delay apart. Each domain gets its own limiter with a burst of 1.
func NewDomainLimiter(delay time.Duration) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		delay:    delay,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		if d.delay <= 0 {
			limiter = rate.NewLimiter(rate.Inf, 1)
		} else {
			limiter = rate.NewLimiter(rate.Every(d.delay), 1)
			// First request to a domain pays the pause as well.
			limiter.Allow()
		}
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
