package mock

import (
	"context"

	"github.com/fwojciec/newsdesk"
)

var _ newsdesk.Completer = (*Completer)(nil)

// Completer is a mock implementation of newsdesk.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, req newsdesk.CompletionRequest) (string, error)
}

func (c *Completer) Complete(ctx context.Context, req newsdesk.CompletionRequest) (string, error) {
	return c.CompleteFn(ctx, req)
}

var _ newsdesk.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of newsdesk.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, req newsdesk.SummaryRequest) *newsdesk.Summary
}

func (s *Summarizer) Summarize(ctx context.Context, req newsdesk.SummaryRequest) *newsdesk.Summary {
	return s.SummarizeFn(ctx, req)
}
