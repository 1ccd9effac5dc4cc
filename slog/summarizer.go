package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsdesk"
)

// Ensure LoggingSummarizer implements newsdesk.Summarizer.
var _ newsdesk.Summarizer = (*LoggingSummarizer)(nil)

// LoggingSummarizer wraps a Summarizer with logging.
type LoggingSummarizer struct {
	next   newsdesk.Summarizer
	logger *slog.Logger
}

// NewLoggingSummarizer creates a new LoggingSummarizer.
func NewLoggingSummarizer(next newsdesk.Summarizer, logger *slog.Logger) *LoggingSummarizer {
	return &LoggingSummarizer{next: next, logger: logger}
}

// Summarize delegates to the wrapped summarizer and logs whether the
// fallback was used.
func (s *LoggingSummarizer) Summarize(ctx context.Context, req newsdesk.SummaryRequest) (summary *newsdesk.Summary) {
	defer func(begin time.Time) {
		var fallback bool
		var err error
		if summary != nil {
			fallback = summary.Fallback
			err = summary.Err
		}
		s.logger.Info("summarize",
			"title", req.Title,
			"category", req.Category,
			"fallback", fallback,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Summarize(ctx, req)
}
