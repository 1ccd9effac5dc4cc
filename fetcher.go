package newsdesk

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// FetchResult holds a successfully retrieved page.
type FetchResult struct {
	// URL is the final URL after redirects.
	URL        string
	HTML       string
	StatusCode int
	FetchedAt  time.Time
}

// FetchErrorKind classifies fetch failures.
type FetchErrorKind int

const (
	FetchNetworkError FetchErrorKind = iota
	FetchTimeout
	FetchHTTPError
)

// String returns the kind name used in logs.
func (k FetchErrorKind) String() string {
	switch k {
	case FetchTimeout:
		return "timeout"
	case FetchHTTPError:
		return "http"
	default:
		return "network"
	}
}

// FetchError describes why a page could not be retrieved.
type FetchError struct {
	Kind       FetchErrorKind
	StatusCode int
	URL        string
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchTimeout:
		return fmt.Sprintf("timeout fetching %s", e.URL)
	case FetchHTTPError:
		return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
	default:
		if e.Err != nil {
			return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
		}
		return fmt.Sprintf("fetching %s failed", e.URL)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Code maps the failure onto an application error code.
func (e *FetchError) Code() string {
	switch e.Kind {
	case FetchTimeout:
		return ETIMEOUT
	case FetchHTTPError:
		switch code := StatusErrorCode(e.StatusCode); code {
		case ENOTFOUND, ERATELIMIT, EUNAUTHORIZED:
			return code
		}
		return EUNAVAILABLE
	default:
		return EUNAVAILABLE
	}
}

// Transient reports whether retrying the request may succeed.
// Network failures and server errors are transient; timeouts and client
// errors are not.
func (e *FetchError) Transient() bool {
	switch e.Kind {
	case FetchNetworkError:
		return true
	case FetchHTTPError:
		return e.StatusCode >= 500
	}
	return false
}

// Fetcher retrieves raw HTML for a URL.
type Fetcher interface {
	// Fetch retrieves the page at url. Failures are reported as *FetchError.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Close releases resources held by the fetcher.
	Close() error
}

// StatusErrorCode maps an HTTP status returned by a remote service onto an
// application error code. Unlisted 4xx statuses map to EINVALID and
// everything else to EUNAVAILABLE.
func StatusErrorCode(status int) string {
	switch {
	case status == http.StatusNotFound, status == http.StatusGone:
		return ENOTFOUND
	case status == http.StatusTooManyRequests:
		return ERATELIMIT
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return EUNAUTHORIZED
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		return ETIMEOUT
	case status >= 400 && status < 500:
		return EINVALID
	default:
		return EUNAVAILABLE
	}
}
