package crawl_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sitegrab/sitegrab"
	"github.com/sitegrab/sitegrab/crawl"
	"github.com/sitegrab/sitegrab/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// site is a fake web: a URL maps to its outbound links, or to an error.
// Fetches return the URL itself as the body; the parser turns it back into
// a document carrying the page's links.
type site struct {
	mu      sync.Mutex
	pages   map[string][]string
	errs    map[string]error
	fetches map[string]int
}

func newSite(pages map[string][]string) *site {
	return &site{
		pages:   pages,
		errs:    make(map[string]error),
		fetches: make(map[string]int),
	}
}

func (s *site) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.fetches[url]++
			if err, ok := s.errs[url]; ok {
				return "", err
			}
			if _, ok := s.pages[url]; !ok {
				return "", sitegrab.Errorf(sitegrab.ESTATUS, "HTTP 404 for %s", url)
			}
			return url, nil
		},
	}
}

func (s *site) parser() *mock.Parser {
	return &mock.Parser{
		ParseFn: func(body string) (sitegrab.Document, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return &mock.Document{
				TitleValue: "Title of " + body,
				HasTitle:   true,
				TextValue:  "text of " + body,
				LinkValues: s.pages[body],
			}, nil
		},
	}
}

func (s *site) fetchCount(url string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches[url]
}

func (s *site) totalFetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.fetches {
		total += n
	}
	return total
}

func newTestCrawler(config sitegrab.Config, s *site) (*crawl.Crawler, *mock.ResultSink) {
	sink := &mock.ResultSink{}
	return &crawl.Crawler{
		Config:    config,
		Fetcher:   s.fetcher(),
		Parser:    s.parser(),
		Processor: crawl.NewSnippetProcessor(),
		Links:     crawl.NewLinkExtractor(config.Scope()),
		Sink:      sink,
	}, sink
}

func TestCrawler_single_page_crawl_with_domain_scope(t *testing.T) {
	t.Parallel()

	// Seed page has 5 links: 3 in-scope, 2 out.
	s := newSite(map[string][]string{
		"https://a.test/": {
			"https://a.test/1", "https://a.test/2", "https://a.test/3",
			"https://b.test/x", "https://b.test/y",
		},
	})
	c, sink := newTestCrawler(sitegrab.Config{
		Seeds:          []string{"https://a.test/"},
		AllowedDomains: []string{"a.test"},
		MaxPages:       1,
	}, s)

	summary, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Visited)
	require.Len(t, sink.Results(), 1)
	assert.Equal(t, "https://a.test/", sink.Results()[0].URL)

	// Out-of-scope links were never fetched.
	assert.Zero(t, s.fetchCount("https://b.test/x"))
	assert.Zero(t, s.fetchCount("https://b.test/y"))
}

func TestCrawler_seed_fetch_failure(t *testing.T) {
	t.Parallel()

	s := newSite(map[string][]string{})
	s.errs["https://a.test/"] = sitegrab.Errorf(sitegrab.ETIMEOUT, "timeout fetching https://a.test/")

	c, sink := newTestCrawler(sitegrab.Config{
		Seeds:    []string{"https://a.test/"},
		MaxPages: 10,
	}, s)

	summary, err := c.Run(context.Background())
	require.NoError(t, err, "a page failure never aborts the run")

	assert.Equal(t, 0, summary.Visited)
	assert.Equal(t, 1, summary.Failed)
	assert.Empty(t, sink.Results())
}

func TestCrawler_duplicate_discovery_fetches_once(t *testing.T) {
	t.Parallel()

	// Two separate pages link to the same third URL before it is
	// dequeued; it must be fetched exactly once.
	s := newSite(map[string][]string{
		"https://a.test/1":      {"https://a.test/shared"},
		"https://a.test/2":      {"https://a.test/shared"},
		"https://a.test/shared": {},
	})
	c, sink := newTestCrawler(sitegrab.Config{
		Seeds:    []string{"https://a.test/1", "https://a.test/2"},
		MaxPages: 10,
	}, s)

	summary, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Visited)
	assert.Len(t, sink.Results(), 3)
	assert.Equal(t, 1, s.fetchCount("https://a.test/shared"))
}

func TestCrawler_zero_max_pages_never_fetches(t *testing.T) {
	t.Parallel()

	s := newSite(map[string][]string{
		"https://a.test/": {},
	})
	c, sink := newTestCrawler(sitegrab.Config{
		Seeds:    []string{"https://a.test/"},
		MaxPages: 0,
	}, s)

	summary, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Visited)
	assert.Empty(t, sink.Results())
	assert.Zero(t, s.totalFetches())
}

func TestCrawler_isolates_page_failures(t *testing.T) {
	t.Parallel()

	s := newSite(map[string][]string{
		"https://a.test/":     {"https://a.test/bad", "https://a.test/good"},
		"https://a.test/good": {},
	})
	s.errs["https://a.test/bad"] = sitegrab.Errorf(sitegrab.ESTATUS, "HTTP 500 for https://a.test/bad")

	c, sink := newTestCrawler(sitegrab.Config{
		Seeds:    []string{"https://a.test/"},
		MaxPages: 10,
	}, s)

	summary, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Visited)
	assert.Equal(t, 1, summary.Failed)

	// The failed page never appears in the results.
	for _, r := range sink.Results() {
		assert.NotEqual(t, "https://a.test/bad", r.URL)
	}
}

func TestCrawler_budget_strictly_bounds_visited_pages(t *testing.T) {
	t.Parallel()

	// A chain longer than the budget.
	s := newSite(map[string][]string{
		"https://a.test/1": {"https://a.test/2"},
		"https://a.test/2": {"https://a.test/3"},
		"https://a.test/3": {"https://a.test/4"},
		"https://a.test/4": {"https://a.test/5"},
		"https://a.test/5": {},
	})
	c, sink := newTestCrawler(sitegrab.Config{
		Seeds:    []string{"https://a.test/1"},
		MaxPages: 2,
	}, s)

	summary, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Visited)
	require.Len(t, sink.Results(), 2)
	assert.Equal(t, "https://a.test/1", sink.Results()[0].URL)
	assert.Equal(t, "https://a.test/2", sink.Results()[1].URL)
}

func TestCrawler_dedup_short_circuit_charges_no_pause(t *testing.T) {
	t.Parallel()

	s := newSite(map[string][]string{
		"https://a.test/": {},
	})

	var waits int
	c, _ := newTestCrawler(sitegrab.Config{
		// The same seed queued twice: the second dequeue is discarded
		// without a pause or a fetch.
		Seeds:    []string{"https://a.test/", "https://a.test/"},
		MaxPages: 10,
	}, s)
	c.Pacer = &mock.Pacer{WaitFn: func(context.Context) error {
		waits++
		return nil
	}}

	summary, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Visited)
	assert.Equal(t, 1, waits, "pause is charged once per fetch attempt")
	assert.Equal(t, 1, s.fetchCount("https://a.test/"))
}

func TestCrawler_failed_URL_is_retryable_via_rediscovery(t *testing.T) {
	t.Parallel()

	// flaky fails on its first fetch. It is not marked visited, so a
	// later rediscovery gets to retry it.
	s := newSite(map[string][]string{
		"https://a.test/":      {"https://a.test/flaky", "https://a.test/next"},
		"https://a.test/next":  {"https://a.test/flaky"},
		"https://a.test/flaky": {},
	})
	failed := false
	base := s.fetcher().FetchFn
	c, sink := newTestCrawler(sitegrab.Config{
		Seeds:    []string{"https://a.test/"},
		MaxPages: 10,
	}, s)
	c.Fetcher = &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			if url == "https://a.test/flaky" && !failed {
				failed = true
				return "", sitegrab.Errorf(sitegrab.EUNAVAILABLE, "connection refused")
			}
			return base(ctx, url)
		},
	}

	summary, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Visited)
	assert.Equal(t, 1, summary.Failed)

	var urls []string
	for _, r := range sink.Results() {
		urls = append(urls, r.URL)
	}
	assert.Contains(t, urls, "https://a.test/flaky")
}

func TestCrawler_retries_when_configured(t *testing.T) {
	t.Parallel()

	s := newSite(map[string][]string{
		"https://a.test/": {},
	})
	attempts := 0
	c, sink := newTestCrawler(sitegrab.Config{
		Seeds:    []string{"https://a.test/"},
		MaxPages: 1,
	}, s)
	c.RetryDelays = []time.Duration{0}
	c.Fetcher = &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			attempts++
			if attempts == 1 {
				return "", sitegrab.Errorf(sitegrab.EUNAVAILABLE, "connection reset")
			}
			return url, nil
		},
	}

	summary, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, attempts)
	assert.Equal(t, 1, summary.Visited)
	assert.Equal(t, 0, summary.Failed)
	assert.Len(t, sink.Results(), 1)
}

func TestCrawler_skips_out_of_scope_seeds(t *testing.T) {
	t.Parallel()

	s := newSite(map[string][]string{
		"https://a.test/": {},
	})
	c, sink := newTestCrawler(sitegrab.Config{
		Seeds:          []string{"https://a.test/", "https://b.test/"},
		AllowedDomains: []string{"a.test"},
		MaxPages:       10,
	}, s)

	summary, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Visited)
	assert.Len(t, sink.Results(), 1)
	assert.Zero(t, s.fetchCount("https://b.test/"))
}

func TestCrawler_rejects_invalid_configuration(t *testing.T) {
	t.Parallel()

	c, _ := newTestCrawler(sitegrab.Config{}, newSite(nil))

	_, err := c.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, sitegrab.EINVALID, sitegrab.ErrorCode(err))
}

func TestCrawler_concurrent_mode_never_duplicates_work(t *testing.T) {
	t.Parallel()

	// A two-level tree of 13 pages.
	pages := map[string][]string{
		"https://a.test/": {
			"https://a.test/b1", "https://a.test/b2", "https://a.test/b3",
		},
	}
	for _, b := range []string{"b1", "b2", "b3"} {
		var children []string
		for _, c := range []string{"x", "y", "z"} {
			children = append(children, "https://a.test/"+b+c)
			pages["https://a.test/"+b+c] = nil
		}
		pages["https://a.test/"+b] = children
	}
	s := newSite(pages)

	c, sink := newTestCrawler(sitegrab.Config{
		Seeds:    []string{"https://a.test/"},
		MaxPages: 10,
	}, s)
	c.Workers = 4
	c.Limiter = &mock.DomainLimiter{}

	summary, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, summary.Visited, "budget binds in concurrent mode")
	assert.Len(t, sink.Results(), 10)

	// Each URL appears at most once and was fetched at most once.
	seen := make(map[string]bool)
	for _, r := range sink.Results() {
		assert.False(t, seen[r.URL], "URL %s processed twice", r.URL)
		seen[r.URL] = true
		assert.True(t, strings.HasPrefix(r.URL, "https://a.test/"))
	}
	for url, n := range s.fetches {
		assert.LessOrEqual(t, n, 1, "URL %s fetched more than once", url)
	}
}

func TestCrawler_concurrent_mode_crawls_everything_under_budget(t *testing.T) {
	t.Parallel()

	s := newSite(map[string][]string{
		"https://a.test/":  {"https://a.test/1", "https://a.test/2"},
		"https://a.test/1": {"https://a.test/3"},
		"https://a.test/2": {"https://a.test/3"},
		"https://a.test/3": {},
	})
	c, sink := newTestCrawler(sitegrab.Config{
		Seeds:    []string{"https://a.test/"},
		MaxPages: 100,
	}, s)
	c.Workers = 3
	c.Limiter = &mock.DomainLimiter{}

	summary, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Visited)
	assert.Len(t, sink.Results(), 4)
	assert.Equal(t, 1, s.fetchCount("https://a.test/3"), "duplicates collapse at dequeue time")
}
