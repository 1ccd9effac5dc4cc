package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsdesk"
)

// Ensure LoggingCompleter implements newsdesk.Completer.
var _ newsdesk.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with logging. Prompts and replies are
// logged by size only.
type LoggingCompleter struct {
	next   newsdesk.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next newsdesk.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Complete delegates to the wrapped completer and logs the call.
func (c *LoggingCompleter) Complete(ctx context.Context, req newsdesk.CompletionRequest) (reply string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("complete",
			"prompt_chars", newsdesk.CharCount(req.UserPrompt),
			"reply_chars", newsdesk.CharCount(reply),
			"json", req.JSON,
			"duration", time.Since(begin),
			"err", err,
			"code", newsdesk.ErrorCode(err),
		)
	}(time.Now())
	return c.next.Complete(ctx, req)
}
