// Package trafilatura provides a page processor that extracts the main
// content of a page with boilerplate (navigation, footers, ads) removed.
// It is an alternative to the engine's default snippet processor and
// exercises the injectable processing strategy.
package trafilatura

import (
	"net/url"
	"strings"
	"time"

	"github.com/markusmobius/go-trafilatura"
	"github.com/sitegrab/sitegrab"
)

// Compile-time interface verification.
var _ sitegrab.Processor = (*Processor)(nil)

// DefaultTextLimit is the rune cap of a result's text snippet.
const DefaultTextLimit = 500

// Processor builds result records whose text snippet comes from the page's
// main content. When extraction fails or finds nothing, it falls back to
// the raw visible text, so malformed or empty documents never produce an
// error.
type Processor struct {
	textLimit int
}

// Option configures a Processor.
type Option func(*Processor)

// WithTextLimit caps the text snippet at n runes instead of
// DefaultTextLimit.
func WithTextLimit(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.textLimit = n
		}
	}
}

// NewProcessor creates a Processor with the given options.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{textLimit: DefaultTextLimit}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process builds the result record for one page.
func (p *Processor) Process(pageURL string, doc sitegrab.Document) (*sitegrab.Result, error) {
	result := &sitegrab.Result{
		URL:       pageURL,
		Links:     len(doc.Links()),
		Timestamp: time.Now().Format(sitegrab.TimestampLayout),
	}
	if title, ok := doc.Title(); ok {
		result.Title = &title
	}

	text := doc.Text()

	opts := trafilatura.Options{EnableFallback: true}
	if u, err := url.Parse(pageURL); err == nil {
		opts.OriginalURL = u
	}
	if extract, err := trafilatura.Extract(strings.NewReader(doc.HTML()), opts); err == nil {
		if extract.ContentText != "" {
			text = extract.ContentText
		}
		if extract.Metadata.Title != "" {
			title := extract.Metadata.Title
			result.Title = &title
		}
	}

	result.TextContent = truncateRunes(text, p.textLimit)
	return result, nil
}

// truncateRunes caps s at limit runes, never splitting a multibyte
// character.
func truncateRunes(s string, limit int) string {
	count := 0
	for i := range s {
		count++
		if count > limit {
			return s[:i]
		}
	}
	return s
}
