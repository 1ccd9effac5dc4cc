// Package rod implements newsdesk.Fetcher on headless Chrome for pages
// that render their article body with JavaScript.
package rod

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fwojciec/newsdesk"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds one page render.
const DefaultFetchTimeout = 15 * time.Second

// Ensure Fetcher implements newsdesk.Fetcher at compile time.
var _ newsdesk.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browsers *BrowserManager
	timeout  time.Duration
	maxPages int
	now      func() time.Time
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page render timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxPages sets how many pages are rendered before the browser is
// relaunched.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}

	browsers, err := NewBrowserManager(f.maxPages)
	if err != nil {
		return nil, err
	}
	f.browsers = browsers
	return f, nil
}

// Fetch navigates to url, waits for the load event and returns the
// rendered HTML. Failures are reported as *newsdesk.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*newsdesk.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := f.browsers.Acquire()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, classify(url, err)
	}
	defer page.Close()
	page = page.Context(ctx)

	status := http.StatusOK
	waitResponse := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument {
			return false
		}
		status = e.Response.Status
		return true
	})

	if err := page.Navigate(url); err != nil {
		return nil, classify(url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, classify(url, err)
	}
	waitResponse()

	if status < 200 || status > 299 {
		return nil, &newsdesk.FetchError{Kind: newsdesk.FetchHTTPError, StatusCode: status, URL: url}
	}

	html, err := page.HTML()
	if err != nil {
		return nil, classify(url, err)
	}

	finalURL := url
	if info, err := page.Info(); err == nil && info.URL != "" {
		finalURL = info.URL
	}

	return &newsdesk.FetchResult{
		URL:        finalURL,
		HTML:       html,
		StatusCode: status,
		FetchedAt:  f.now(),
	}, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.browsers.Close()
}

func classify(url string, err error) error {
	kind := newsdesk.FetchNetworkError
	if errors.Is(err, context.DeadlineExceeded) {
		kind = newsdesk.FetchTimeout
	}
	return &newsdesk.FetchError{Kind: kind, URL: url, Err: err}
}
