package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	sitehttp "github.com/sitegrab/sitegrab/http"

	"github.com/sitegrab/sitegrab/goquery"
	slogm "github.com/sitegrab/sitegrab/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// userAgent identifies the crawler to remote servers.
const userAgent = "sitegrab/1.0 (+https://github.com/sitegrab/sitegrab)"

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitegrab"),
		kong.Description("Breadth-first web crawler: fetch pages, extract records, follow in-scope links."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sitegrab --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fetcher := sitehttp.NewFetcher(sitehttp.WithUserAgent(userAgent))

	deps := &Dependencies{
		Ctx:        ctx,
		Stdout:     stdout,
		Stderr:     stderr,
		Logger:     logger,
		Fetcher:    slogm.NewLoggingFetcher(fetcher, logger),
		Parser:     goquery.NewParser(),
		Discoverer: sitehttp.NewSeedDiscoverer(nil),
	}
	defer deps.Fetcher.Close()

	return kongCtx.Run(deps)
}
