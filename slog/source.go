package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsdesk"
)

// Ensure LoggingArticleSource implements newsdesk.ArticleSource.
var _ newsdesk.ArticleSource = (*LoggingArticleSource)(nil)

// LoggingArticleSource wraps an ArticleSource with logging.
type LoggingArticleSource struct {
	next   newsdesk.ArticleSource
	logger *slog.Logger
}

// NewLoggingArticleSource creates a new LoggingArticleSource.
func NewLoggingArticleSource(next newsdesk.ArticleSource, logger *slog.Logger) *LoggingArticleSource {
	return &LoggingArticleSource{next: next, logger: logger}
}

// FindArticles delegates to the wrapped source and logs the operation.
func (s *LoggingArticleSource) FindArticles(ctx context.Context, category string) (articles []*newsdesk.SourceArticle, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find articles",
			"category", category,
			"count", len(articles),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindArticles(ctx, category)
}
