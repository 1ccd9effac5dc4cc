package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/newsdesk"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages rendered before the browser is
// replaced with a fresh process.
const DefaultMaxPages = 50

// BrowserManager owns a headless Chrome process and relaunches it every
// maxPages pages, since Chrome's resident memory grows with use.
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    int
	maxPages int
	closed   bool
}

// NewBrowserManager launches a browser. A non-positive maxPages uses
// DefaultMaxPages. Close must be called when the manager is no longer
// needed.
func NewBrowserManager(maxPages int) (*BrowserManager, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	m := &BrowserManager{maxPages: maxPages}
	browser, l, err := launch()
	if err != nil {
		return nil, err
	}
	m.browser, m.launcher = browser, l
	return m, nil
}

// Acquire returns the browser to render the next page on and counts the
// page. The browser is relaunched first once the page budget is spent.
func (m *BrowserManager) Acquire() (*rod.Browser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "browser closed")
	}
	if m.pages >= m.maxPages {
		m.recycle()
	}
	m.pages++
	return m.browser, nil
}

// Close shuts the browser down. Close is safe to call multiple times.
func (m *BrowserManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	return shutdown(m.browser, m.launcher)
}

// recycle swaps in a fresh browser, keeping the old one when the launch
// fails. The caller must hold m.mu.
func (m *BrowserManager) recycle() {
	browser, l, err := launch()
	if err != nil {
		return
	}
	_ = shutdown(m.browser, m.launcher)
	m.browser, m.launcher = browser, l
	m.pages = 0
}

func launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return browser, l, nil
}

func shutdown(browser *rod.Browser, l *launcher.Launcher) error {
	var err error
	if browser != nil {
		err = browser.Close()
	}
	if l != nil {
		l.Kill()
	}
	return err
}
