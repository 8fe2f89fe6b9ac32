package sitegrab

import "context"

// Frontier is the ordered queue of URLs awaiting a visit, first discovered
// first visited. It may contain duplicates at enqueue time; deduplication is
// enforced at dequeue time against the crawl engine's visited set, not here.
type Frontier interface {
	// Push appends a URL to the tail of the queue.
	Push(url string)

	// Pop removes and returns the head of the queue.
	// Returns false if the frontier is empty.
	Pop() (string, bool)

	// Len returns the number of URLs in the queue.
	Len() int
}

// Pacer enforces the politeness pause between fetch attempts.
type Pacer interface {
	// Wait blocks until the next fetch may proceed.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context) error
}

// DomainLimiter provides per-domain rate limiting for concurrent crawls.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
