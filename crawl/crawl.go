// Package crawl implements the breadth-first crawl engine. It owns the
// frontier queue and the visited set, drives the fetch, extract, enqueue
// loop, enforces the page budget and politeness pause, and isolates
// per-page failures.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sitegrab/sitegrab"
	"golang.org/x/sync/errgroup"
)

// DefaultFetchTimeout bounds each fetch attempt.
const DefaultFetchTimeout = 10 * time.Second

// Crawler drives one crawl run. A Crawler is single-use: a fresh run
// requires a fresh instance with fresh frontier, visited, and sink state.
type Crawler struct {
	Config    sitegrab.Config
	Fetcher   sitegrab.Fetcher
	Parser    sitegrab.Parser
	Processor sitegrab.Processor
	Links     sitegrab.LinkExtractor
	Sink      sitegrab.ResultSink

	// Logger receives the run's observable events: one info entry per
	// crawl attempt, one error entry per page failure, and a completion
	// summary. Nil discards all output.
	Logger *slog.Logger

	// FetchTimeout bounds each fetch attempt.
	// Defaults to DefaultFetchTimeout.
	FetchTimeout time.Duration

	// RetryDelays, when non-empty, enables backoff retries on fetch
	// failure. The default is a single attempt per dequeue: a failed URL
	// is only retried if rediscovered via another page's links.
	RetryDelays []time.Duration

	// Workers greater than one enables concurrent fetching in batched
	// breadth-first rounds. The politeness pause then becomes a
	// per-domain rate limit rather than a global serializer. Sink order
	// stays dequeue order either way.
	Workers int

	// Pacer overrides the politeness pacer. Defaults to a pacer built
	// from Config.Delay.
	Pacer sitegrab.Pacer

	// Limiter overrides the per-domain limiter used in concurrent mode.
	// Defaults to a limiter built from Config.Delay.
	Limiter sitegrab.DomainLimiter
}

// Summary holds the outcome of a crawl run.
type Summary struct {
	RunID   string
	Visited int
	Failed  int
}

// Run executes the crawl loop until the frontier is exhausted or the page
// budget is reached. Per-page failures never abort the run; the returned
// error only reflects invalid configuration.
func (c *Crawler) Run(ctx context.Context) (*Summary, error) {
	if err := c.Config.Validate(); err != nil {
		return nil, err
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := &run{
		c:        c,
		id:       uuid.NewString(),
		logger:   logger,
		scope:    c.Config.Scope(),
		frontier: NewFrontier(),
		visited:  make(map[string]struct{}),
	}

	for _, seed := range c.Config.Seeds {
		if !r.scope.Allowed(seed) {
			logger.Warn("seed out of scope", "url", seed)
			continue
		}
		r.frontier.Push(seed)
	}

	if c.Workers > 1 {
		r.concurrent(ctx)
	} else {
		r.sequential(ctx)
	}

	logger.Info("crawl complete",
		"run", r.id,
		"visited", len(r.visited),
		"failed", r.failed,
	)

	return &Summary{
		RunID:   r.id,
		Visited: len(r.visited),
		Failed:  r.failed,
	}, nil
}

// run holds the mutable state of one crawl.
type run struct {
	c        *Crawler
	id       string
	logger   *slog.Logger
	scope    *sitegrab.DomainScope
	frontier sitegrab.Frontier
	visited  map[string]struct{}
	failed   int
}

// sequential is the reference crawl loop: one fetch in flight at a time,
// a global politeness pause charged before every fetch attempt including
// the first.
func (r *run) sequential(ctx context.Context) {
	pacer := r.c.Pacer
	if pacer == nil {
		pacer = NewPacer(r.c.Config.Delay)
	}

	for r.frontier.Len() > 0 && len(r.visited) < r.c.Config.MaxPages {
		url, ok := r.frontier.Pop()
		if !ok {
			break
		}

		// Dedup short-circuit: no pause charged, no fetch attempted.
		if _, seen := r.visited[url]; seen {
			continue
		}

		r.logger.Info("crawling", "url", url)

		if err := pacer.Wait(ctx); err != nil {
			break // context canceled
		}

		body, err := r.fetch(ctx, url)
		if err != nil {
			r.fail(url, err)
			continue
		}

		r.process(url, body)
	}
}

// concurrent fetches batches of up to Workers distinct unvisited URLs in
// parallel, then processes them in dequeue order so the sink stays
// deterministic given deterministic fetch responses.
func (r *run) concurrent(ctx context.Context) {
	limiter := r.c.Limiter
	if limiter == nil {
		limiter = NewDomainLimiter(r.c.Config.Delay)
	}

	for r.frontier.Len() > 0 && len(r.visited) < r.c.Config.MaxPages {
		batch := r.nextBatch()
		if len(batch) == 0 {
			break
		}

		bodies := make([]string, len(batch))
		errs := make([]error, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.c.Workers)
		for i, u := range batch {
			r.logger.Info("crawling", "url", u)
			g.Go(func() error {
				if err := limiter.Wait(gctx, hostOf(u)); err != nil {
					errs[i] = err
					return nil
				}
				bodies[i], errs[i] = r.fetch(gctx, u)
				return nil
			})
		}
		_ = g.Wait()

		for i, u := range batch {
			if len(r.visited) >= r.c.Config.MaxPages {
				break
			}
			if errs[i] != nil {
				r.fail(u, errs[i])
				continue
			}
			r.process(u, bodies[i])
		}

		if ctx.Err() != nil {
			break
		}
	}
}

// nextBatch dequeues up to Workers distinct unvisited URLs, bounded by the
// remaining page budget. Duplicate frontier entries collapse here, at
// dequeue time.
func (r *run) nextBatch() []string {
	size := min(r.c.Workers, r.c.Config.MaxPages-len(r.visited))
	batch := make([]string, 0, size)
	inBatch := make(map[string]struct{}, size)

	for len(batch) < size {
		url, ok := r.frontier.Pop()
		if !ok {
			break
		}
		if _, seen := r.visited[url]; seen {
			continue
		}
		if _, dup := inBatch[url]; dup {
			continue
		}
		inBatch[url] = struct{}{}
		batch = append(batch, url)
	}
	return batch
}

// fetch performs one bounded fetch attempt, with optional backoff retries.
func (r *run) fetch(ctx context.Context, url string) (string, error) {
	timeout := r.c.FetchTimeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	attempt := func(ctx context.Context, url string) (string, error) {
		fctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return r.c.Fetcher.Fetch(fctx, url)
	}

	if len(r.c.RetryDelays) == 0 {
		return attempt(ctx, url)
	}
	return FetchWithRetryDelays(ctx, url, attempt, r.logger, r.c.RetryDelays)
}

// process parses a fetched body, builds the result record, marks the URL
// visited, and enqueues the page's in-scope links. Parse and processor
// failures are isolated exactly like fetch failures: the URL is not marked
// visited and the crawl continues.
func (r *run) process(url, body string) {
	doc, err := r.c.Parser.Parse(body)
	if err != nil {
		r.fail(url, err)
		return
	}

	result, err := r.c.Processor.Process(url, doc)
	if err != nil {
		r.fail(url, err)
		return
	}

	r.c.Sink.Append(result)

	// The only insertion point for the visited set: strictly after a
	// successful process step, never on failure, never pre-fetch.
	r.visited[url] = struct{}{}

	links, err := r.c.Links.ExtractLinks(doc, url)
	if err != nil {
		// The page itself was processed; losing its out-links is not a
		// page failure.
		r.logger.Warn("link extraction failed", "url", url, "err", err)
		return
	}
	for _, link := range links {
		if _, seen := r.visited[link]; !seen {
			r.frontier.Push(link)
		}
	}
}

func (r *run) fail(url string, err error) {
	r.failed++
	r.logger.Error("page failed", "url", url, "err", err)
}

// hostOf extracts the hostname for per-domain rate limiting.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
