// Package fs provides the file-based JSON implementation of
// sitegrab.ResultSink.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/sitegrab/sitegrab"
)

// Ensure Sink implements sitegrab.ResultSink at compile time.
var _ sitegrab.ResultSink = (*Sink)(nil)

// Sink accumulates result records in memory and serializes them to a single
// pretty-printed JSON file on Save. Non-ASCII text is written verbatim.
// It is safe for concurrent use by multiple goroutines.
type Sink struct {
	mu      sync.Mutex
	results []*sitegrab.Result
}

// NewSink creates an empty Sink.
func NewSink() *Sink {
	return &Sink{}
}

// Append adds a record to the collection. Append order is preserved in the
// saved output.
func (s *Sink) Append(result *sitegrab.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
}

// Results returns the accumulated records in append order.
func (s *Sink) Results() []*sitegrab.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*sitegrab.Result(nil), s.results...)
}

// Len returns the number of accumulated records.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

// Save writes the entire collection as a JSON array to destination,
// overwriting it if present. The file appears atomically: content is
// written to a temporary file in the same directory and renamed over the
// destination, so readers never observe a partial write.
func (s *Sink) Save(ctx context.Context, destination string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	results := s.Results()
	if results == nil {
		results = []*sitegrab.Result{} // an empty run saves [], not null
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return sitegrab.Errorf(sitegrab.EINTERNAL, "encoding results: %v", err)
	}

	dir := filepath.Dir(destination)
	tmp, err := os.CreateTemp(dir, filepath.Base(destination)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, destination); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
