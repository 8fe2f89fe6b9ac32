package crawl

import (
	"sync"

	"github.com/sitegrab/sitegrab"
)

// Compile-time interface verification.
var _ sitegrab.Frontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO URL queue: first discovered, first visited.
// It performs no deduplication; the same URL may sit in the queue more than
// once when discovered from multiple pages. Duplicates collapse at dequeue
// time against the engine's visited set.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	queue []string
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{}
}

// Push appends a URL to the tail of the queue.
func (f *Frontier) Push(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, url)
}

// Pop removes and returns the head of the queue.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue = f.queue[1:]
	return url, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}
