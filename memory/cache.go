package memory

import (
	"sync"
	"time"

	"github.com/fwojciec/newsdesk"
)

// Cache defaults.
const (
	DefaultCacheSize = 500
	DefaultCacheTTL  = 30 * time.Minute
)

// Ensure ScrapeCache implements newsdesk.ScrapeCache at compile time.
var _ newsdesk.ScrapeCache = (*ScrapeCache)(nil)

// ScrapeCache holds recent scrape outcomes by URL. Entries expire after
// the TTL and the oldest insertion is evicted when the cache is full.
// ScrapeCache is safe for concurrent use.
type ScrapeCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	order   []string
	size    int
	ttl     time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

type cacheEntry struct {
	scrape   *newsdesk.Scrape
	storedAt time.Time
}

// NewScrapeCache creates a ScrapeCache. Zero values select the defaults.
func NewScrapeCache(size int, ttl time.Duration) *ScrapeCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ScrapeCache{
		entries: make(map[string]cacheEntry),
		size:    size,
		ttl:     ttl,
		Now:     time.Now,
	}
}

// Get returns the cached scrape for url if present and not expired.
func (c *ScrapeCache) Get(url string) (*newsdesk.Scrape, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[url]
	if !ok {
		return nil, false
	}
	if c.Now().Sub(e.storedAt) > c.ttl {
		c.remove(url)
		return nil, false
	}
	return e.scrape, true
}

// Put stores s for url, replacing any previous entry.
func (c *ScrapeCache) Put(url string, s *newsdesk.Scrape) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[url]; ok {
		c.remove(url)
	}
	for len(c.order) >= c.size {
		c.remove(c.order[0])
	}
	c.entries[url] = cacheEntry{scrape: s, storedAt: c.Now()}
	c.order = append(c.order, url)
}

// Len returns the number of entries, including expired ones not yet
// evicted.
func (c *ScrapeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// remove deletes url. The caller must hold c.mu.
func (c *ScrapeCache) remove(url string) {
	delete(c.entries, url)
	for i, u := range c.order {
		if u == url {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
