// Package slog provides log/slog decorators for newsdesk services. Each
// decorator logs one line per call.
package slog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/newsdesk"
)

var _ newsdesk.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging. Successful fetches log at
// Info and failures at Warn with the failure kind and error code.
type LoggingFetcher struct {
	next   newsdesk.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next newsdesk.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (result *newsdesk.FetchResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "duration", time.Since(begin)}
		if err != nil {
			var fe *newsdesk.FetchError
			if errors.As(err, &fe) {
				attrs = append(attrs, "kind", fe.Kind.String(), "status", fe.StatusCode)
			}
			attrs = append(attrs, "code", newsdesk.ErrorCode(err), "err", err)
			f.logger.Warn("fetch", attrs...)
			return
		}
		attrs = append(attrs, "status", result.StatusCode, "bytes", len(result.HTML))
		if result.URL != "" && result.URL != url {
			attrs = append(attrs, "final_url", result.URL)
		}
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
