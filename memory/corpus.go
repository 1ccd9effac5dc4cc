// Package memory provides in-process implementations of the newsdesk
// corpus, search service and scrape cache. Nothing is persisted.
package memory

import (
	"sync"

	"github.com/fwojciec/newsdesk"
)

// Ensure Corpus implements newsdesk.Corpus at compile time.
var _ newsdesk.Corpus = (*Corpus)(nil)

// Corpus is a bounded, append-only article collection with FIFO eviction.
// Corpus is safe for concurrent use.
type Corpus struct {
	mu       sync.RWMutex
	articles []*newsdesk.ProcessedArticle
	ids      map[string]struct{}
	capacity int
}

// NewCorpus creates a Corpus holding at most capacity articles.
// A capacity of zero or less uses newsdesk.DefaultCorpusCapacity.
func NewCorpus(capacity int) *Corpus {
	if capacity <= 0 {
		capacity = newsdesk.DefaultCorpusCapacity
	}
	return &Corpus{
		ids:      make(map[string]struct{}),
		capacity: capacity,
	}
}

// AppendArticles inserts articles with unseen IDs and evicts the oldest
// entries beyond capacity, as one atomic step. The count excludes new
// articles evicted by the same call.
func (c *Corpus) AppendArticles(articles []*newsdesk.ProcessedArticle) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var added int
	for _, a := range articles {
		if a == nil || a.ID == "" {
			continue
		}
		if _, ok := c.ids[a.ID]; ok {
			continue
		}
		c.ids[a.ID] = struct{}{}
		c.articles = append(c.articles, a)
		added++
	}

	if over := len(c.articles) - c.capacity; over > 0 {
		for _, evicted := range c.articles[:over] {
			delete(c.ids, evicted.ID)
		}
		kept := make([]*newsdesk.ProcessedArticle, c.capacity, c.capacity)
		copy(kept, c.articles[over:])
		c.articles = kept
	}
	// New articles sit at the tail, so at most capacity of them survive.
	return min(added, c.capacity)
}

// Snapshot returns a copy of the articles in insertion order.
func (c *Corpus) Snapshot() []*newsdesk.ProcessedArticle {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*newsdesk.ProcessedArticle, len(c.articles))
	copy(out, c.articles)
	return out
}

// Len returns the number of articles held.
func (c *Corpus) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.articles)
}

// Contains reports whether an article with id is held.
func (c *Corpus) Contains(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.ids[id]
	return ok
}
