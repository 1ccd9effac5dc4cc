package mock

import (
	"context"

	"github.com/fwojciec/newsdesk"
)

var _ newsdesk.ArticleSource = (*ArticleSource)(nil)

// ArticleSource is a mock implementation of newsdesk.ArticleSource.
type ArticleSource struct {
	FindArticlesFn func(ctx context.Context, category string) ([]*newsdesk.SourceArticle, error)
}

func (s *ArticleSource) FindArticles(ctx context.Context, category string) ([]*newsdesk.SourceArticle, error) {
	return s.FindArticlesFn(ctx, category)
}

var _ newsdesk.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of newsdesk.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, maxResults int) (*newsdesk.SearchResponse, error)
}

func (s *SearchService) Search(ctx context.Context, query string, maxResults int) (*newsdesk.SearchResponse, error) {
	return s.SearchFn(ctx, query, maxResults)
}

var _ newsdesk.RateLimiter = (*RateLimiter)(nil)

// RateLimiter is a mock implementation of newsdesk.RateLimiter.
type RateLimiter struct {
	WaitFn func(ctx context.Context) error
}

func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.WaitFn(ctx)
}

var _ newsdesk.SeenFilter = (*SeenFilter)(nil)

// SeenFilter is a mock implementation of newsdesk.SeenFilter.
type SeenFilter struct {
	TestAndAddFn func(url string) bool
}

func (f *SeenFilter) TestAndAdd(url string) bool {
	return f.TestAndAddFn(url)
}
