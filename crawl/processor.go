package crawl

import (
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/sitegrab/sitegrab"
)

// DefaultTextLimit is the rune cap of a result's text snippet.
const DefaultTextLimit = 500

// Compile-time interface verification.
var _ sitegrab.Processor = (*SnippetProcessor)(nil)

// SnippetProcessor is the default page processor. It extracts the page
// title (nil when absent), a truncated visible-text snippet, the number of
// anchor elements, and a capture timestamp. It never fails, even on empty
// or malformed documents.
type SnippetProcessor struct {
	textLimit int
	hash      bool
	now       func() time.Time
}

// ProcessorOption configures a SnippetProcessor.
type ProcessorOption func(*SnippetProcessor)

// WithTextLimit caps the text snippet at n runes instead of
// DefaultTextLimit.
func WithTextLimit(n int) ProcessorOption {
	return func(p *SnippetProcessor) {
		if n > 0 {
			p.textLimit = n
		}
	}
}

// WithContentHash records an xxHash of the page's full visible text on each
// result. The hash field is omitted from serialized output when unset, so
// the default output format is unchanged.
func WithContentHash() ProcessorOption {
	return func(p *SnippetProcessor) {
		p.hash = true
	}
}

// NewSnippetProcessor creates a SnippetProcessor with the given options.
func NewSnippetProcessor(opts ...ProcessorOption) *SnippetProcessor {
	p := &SnippetProcessor{
		textLimit: DefaultTextLimit,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process builds the result record for one page.
func (p *SnippetProcessor) Process(url string, doc sitegrab.Document) (*sitegrab.Result, error) {
	result := &sitegrab.Result{
		URL:       url,
		Links:     len(doc.Links()),
		Timestamp: p.now().Format(sitegrab.TimestampLayout),
	}

	if title, ok := doc.Title(); ok {
		result.Title = &title
	}

	text := doc.Text()
	result.TextContent = truncateRunes(text, p.textLimit)

	if p.hash {
		result.ContentHash = hashContent(text)
	}

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

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}
