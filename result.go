package sitegrab

import "context"

// TimestampLayout is the wire format for Result capture timestamps,
// rendered in local time.
const TimestampLayout = "2006-01-02 15:04:05"

// Result is the record extracted from one successfully processed page.
// Field names and order are part of the persisted output's compatibility
// surface; downstream tooling parses them.
type Result struct {
	URL         string  `json:"url"`
	Title       *string `json:"title"` // nil when the page has no title element
	TextContent string  `json:"text_content"`
	Links       int     `json:"links"`
	Timestamp   string  `json:"timestamp"`

	// ContentHash is only set by hash-enabled processors and is omitted
	// from serialized output otherwise.
	ContentHash string `json:"content_hash,omitempty"`
}

// ResultSink accumulates result records during a run and serializes them to
// durable storage on demand. Append order is processing completion order.
// Implementations must be safe for concurrent use.
type ResultSink interface {
	// Append adds a record to the in-memory collection.
	Append(result *Result)

	// Results returns the accumulated records in append order.
	Results() []*Result

	// Len returns the number of accumulated records.
	Len() int

	// Save serializes the entire collection to the destination,
	// overwriting it if present. From the caller's perspective the write
	// is atomic; there is no partial or incremental flush.
	Save(ctx context.Context, destination string) error
}
