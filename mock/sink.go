package mock

import (
	"context"
	"sync"

	"github.com/sitegrab/sitegrab"
)

var _ sitegrab.ResultSink = (*ResultSink)(nil)

// ResultSink is a mock implementation of sitegrab.ResultSink. Appended
// records accumulate in Appended; SaveFn, when set, intercepts Save calls.
type ResultSink struct {
	mu       sync.Mutex
	Appended []*sitegrab.Result
	SaveFn   func(ctx context.Context, destination string) error
}

func (s *ResultSink) Append(result *sitegrab.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Appended = append(s.Appended, result)
}

func (s *ResultSink) Results() []*sitegrab.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*sitegrab.Result(nil), s.Appended...)
}

func (s *ResultSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Appended)
}

func (s *ResultSink) Save(ctx context.Context, destination string) error {
	if s.SaveFn == nil {
		return nil
	}
	return s.SaveFn(ctx, destination)
}
