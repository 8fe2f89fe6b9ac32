package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/sitegrab/sitegrab"
)

// Ensure LoggingSink implements sitegrab.ResultSink.
var _ sitegrab.ResultSink = (*LoggingSink)(nil)

// LoggingSink wraps a ResultSink with logging of save operations.
type LoggingSink struct {
	next   sitegrab.ResultSink
	logger *slog.Logger
}

// NewLoggingSink creates a new LoggingSink.
func NewLoggingSink(next sitegrab.ResultSink, logger *slog.Logger) *LoggingSink {
	return &LoggingSink{next: next, logger: logger}
}

// Append delegates to the wrapped sink.
func (s *LoggingSink) Append(result *sitegrab.Result) {
	s.next.Append(result)
}

// Results delegates to the wrapped sink.
func (s *LoggingSink) Results() []*sitegrab.Result {
	return s.next.Results()
}

// Len delegates to the wrapped sink.
func (s *LoggingSink) Len() int {
	return s.next.Len()
}

// Save delegates to the wrapped sink and logs the operation.
func (s *LoggingSink) Save(ctx context.Context, destination string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("results saved",
			"destination", destination,
			"count", s.next.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, destination)
}
