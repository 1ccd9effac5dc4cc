package newsdesk

import (
	"context"
	"time"
)

// DefaultCorpusCapacity is the number of articles a corpus holds before
// evicting the oldest.
const DefaultCorpusCapacity = 1000

// Corpus is the bounded collection of processed articles available for
// search. Implementations must be safe for concurrent use.
type Corpus interface {
	// AppendArticles inserts articles whose ID is not already present and
	// returns how many of them remain held. Oldest entries are evicted once
	// the capacity is exceeded.
	AppendArticles(articles []*ProcessedArticle) int

	// Snapshot returns the articles in insertion order. The returned slice
	// is owned by the caller.
	Snapshot() []*ProcessedArticle

	// Len returns the number of articles held.
	Len() int
}

// SearchScore pairs an article with its relevance score for a query.
type SearchScore struct {
	Article *ProcessedArticle
	Score   int
}

// SearchResponse is the result of a corpus search.
type SearchResponse struct {
	Query        string              `json:"query"`
	ResultsFound int                 `json:"resultsFound"`
	Articles     []*ProcessedArticle `json:"articles"`
}

// SearchService ranks corpus articles against free-text queries.
type SearchService interface {
	Search(ctx context.Context, query string, maxResults int) (*SearchResponse, error)
}

// Scrape is a cached fetch-and-extract outcome for one URL.
type Scrape struct {
	Extraction *ExtractionResult
	Preview    *Preview
	FetchedAt  time.Time
}

// ScrapeCache stores recent scrape outcomes by URL.
type ScrapeCache interface {
	Get(url string) (*Scrape, bool)
	Put(url string, s *Scrape)
}

// SeenFilter remembers URLs across pipeline runs.
type SeenFilter interface {
	// TestAndAdd records url and reports whether it was already present.
	TestAndAdd(url string) bool
}

// RateLimiter gates outbound requests.
type RateLimiter interface {
	// Wait blocks until a request may proceed or ctx is done.
	Wait(ctx context.Context) error
}
