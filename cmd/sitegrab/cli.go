package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/sitegrab/sitegrab"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Fetcher    sitegrab.Fetcher
	Parser     sitegrab.Parser
	Discoverer sitegrab.SeedDiscoverer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Crawl   CrawlCmd   `cmd:"" help:"Crawl from seed URLs and save extracted records"`
	Sitemap SitemapCmd `cmd:"" help:"List the URLs advertised by a site's sitemap"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Seeds []string `arg:"" name:"url" help:"Seed URLs to start from"`

	Domain      []string      `short:"d" help:"Restrict the crawl to these hostnames (repeatable); default allows all"`
	MaxPages    int           `short:"n" default:"100" help:"Maximum number of pages to crawl"`
	Delay       time.Duration `default:"1s" help:"Politeness pause before each fetch"`
	Output      string        `short:"o" default:"results.json" help:"Destination file"`
	Format      string        `enum:"json,sqlite" default:"json" help:"Output format"`
	Timeout     time.Duration `default:"10s" help:"Per-fetch timeout"`
	Workers     int           `short:"w" default:"1" help:"Concurrent fetch limit (1 = strictly sequential)"`
	Retries     int           `default:"0" help:"Fetch retries with exponential backoff"`
	Sitemap     bool          `help:"Expand seeds from each site's sitemap before crawling"`
	MainContent bool          `help:"Extract main page content instead of raw visible text"`
	Hash        bool          `help:"Record a content hash on each result (raw text extraction only)"`
}

// SitemapCmd is the "sitemap" subcommand.
type SitemapCmd struct {
	URL string `arg:"" help:"Site URL to discover"`
}
