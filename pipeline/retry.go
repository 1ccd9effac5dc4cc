package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/newsdesk"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (*newsdesk.FetchResult, error)

// LogFunc is the signature for a logging function.
type LogFunc func(url string, attempt int, err error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 500ms, 1s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{500 * time.Millisecond, 1 * time.Second}
}

// Retryable reports whether err is a transient fetch failure worth another
// attempt: a network error or an HTTP 5xx.
func Retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var fe *newsdesk.FetchError
	if !errors.As(err, &fe) {
		return false
	}
	return fe.Transient()
}

// FetchWithRetryDelays calls fetch up to len(delays)+1 times, sleeping
// delays[i] before retry i+1. Non-transient errors are returned at once.
// The logger, if provided, is called before each retry.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (*newsdesk.FetchResult, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		result, err := fetch(ctx, url)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || !Retryable(err) {
			break
		}

		if logger != nil {
			logger(url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
