package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/newsdesk"
)

// Ensure LoggingExtractor implements newsdesk.Extractor.
var _ newsdesk.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   newsdesk.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next newsdesk.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the winning strategy.
func (e *LoggingExtractor) Extract(html string) (result *newsdesk.ExtractionResult, err error) {
	defer func(begin time.Time) {
		var strategy newsdesk.Strategy
		var chars int
		if result != nil {
			strategy = result.Strategy
			chars = newsdesk.CharCount(result.Content)
		}
		e.logger.Debug("extract",
			"bytes", len(html),
			"strategy", strategy,
			"chars", chars,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
