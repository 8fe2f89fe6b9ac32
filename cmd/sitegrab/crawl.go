package main

import (
	"fmt"
	"time"

	"github.com/sitegrab/sitegrab"
	"github.com/sitegrab/sitegrab/crawl"
	"github.com/sitegrab/sitegrab/fs"
	slogm "github.com/sitegrab/sitegrab/slog"
	"github.com/sitegrab/sitegrab/sqlite"
	"github.com/sitegrab/sitegrab/trafilatura"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	if c.MaxPages <= 0 {
		return sitegrab.Errorf(sitegrab.EINVALID, "max pages must be positive")
	}
	if c.MainContent && c.Hash {
		return sitegrab.Errorf(sitegrab.EINVALID, "--hash is only supported with raw text extraction")
	}

	seeds := c.Seeds
	if c.Sitemap {
		expanded, err := expandSeeds(deps, seeds)
		if err != nil {
			return err
		}
		seeds = expanded
	}

	config := sitegrab.Config{
		Seeds:          seeds,
		AllowedDomains: c.Domain,
		MaxPages:       c.MaxPages,
		Delay:          c.Delay,
	}
	if err := config.Validate(); err != nil {
		return err
	}

	var processor sitegrab.Processor
	if c.MainContent {
		processor = trafilatura.NewProcessor()
	} else {
		var opts []crawl.ProcessorOption
		if c.Hash {
			opts = append(opts, crawl.WithContentHash())
		}
		processor = crawl.NewSnippetProcessor(opts...)
	}

	var sink sitegrab.ResultSink
	switch c.Format {
	case "sqlite":
		sink = sqlite.NewStore()
	default:
		sink = fs.NewSink()
	}
	sink = slogm.NewLoggingSink(sink, deps.Logger)

	crawler := &crawl.Crawler{
		Config:       config,
		Fetcher:      deps.Fetcher,
		Parser:       deps.Parser,
		Processor:    processor,
		Links:        crawl.NewLinkExtractor(config.Scope()),
		Sink:         sink,
		Logger:       deps.Logger,
		FetchTimeout: c.Timeout,
		RetryDelays:  backoffDelays(c.Retries),
		Workers:      c.Workers,
	}

	summary, err := crawler.Run(deps.Ctx)
	if err != nil {
		return err
	}

	// An unwritable destination is the one failure that must surface.
	if err := sink.Save(deps.Ctx, c.Output); err != nil {
		return fmt.Errorf("saving results to %s: %w", c.Output, err)
	}

	fmt.Fprintf(deps.Stdout, "crawled %d pages (%d failed), saved %d records to %s\n",
		summary.Visited, summary.Failed, sink.Len(), c.Output)
	return nil
}

// expandSeeds adds each site's sitemap URLs after the seed itself.
func expandSeeds(deps *Dependencies, seeds []string) ([]string, error) {
	var expanded []string
	for _, seed := range seeds {
		expanded = append(expanded, seed)
		urls, err := deps.Discoverer.Discover(deps.Ctx, seed)
		if err != nil {
			return nil, fmt.Errorf("sitemap discovery for %s: %w", seed, err)
		}
		expanded = append(expanded, urls...)
	}
	return expanded, nil
}

// backoffDelays builds exponential retry delays: 1s, 2s, 4s, ...
func backoffDelays(retries int) []time.Duration {
	if retries <= 0 {
		return nil
	}
	delays := make([]time.Duration, retries)
	for i := range delays {
		delays[i] = time.Duration(1<<i) * time.Second
	}
	return delays
}
