package pipeline

import (
	"context"
	"time"

	"github.com/fwojciec/newsdesk"
	"golang.org/x/time/rate"
)

// DefaultFetchInterval is the minimum spacing between outbound fetches.
const DefaultFetchInterval = 100 * time.Millisecond

var _ newsdesk.RateLimiter = (*IntervalLimiter)(nil)

// IntervalLimiter enforces a minimum interval between requests using a
// token bucket with a burst of 1. One limiter is shared by every fetch in
// the process; it gates only the permission to start a request.
type IntervalLimiter struct {
	limiter *rate.Limiter
}

// NewIntervalLimiter creates an IntervalLimiter. A non-positive interval
// uses DefaultFetchInterval.
func NewIntervalLimiter(interval time.Duration) *IntervalLimiter {
	if interval <= 0 {
		interval = DefaultFetchInterval
	}
	return &IntervalLimiter{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Wait blocks until the next request may start.
// Returns an error if the context is canceled before the wait completes.
func (l *IntervalLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
