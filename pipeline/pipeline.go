// Package pipeline orchestrates article processing. It coordinates
// fetching, extraction, summarization and formatting of source articles
// and appends the results to the corpus.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/araddon/dateparse"
	"github.com/fwojciec/newsdesk"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Pipeline defaults.
const (
	DefaultConcurrency  = 4
	MaxConcurrency      = 8
	DefaultFetchTimeout = 15 * time.Second
)

// Pipeline turns source articles into processed articles. Source,
// Fetcher and Extractor are required; every other collaborator is
// optional.
type Pipeline struct {
	Source     newsdesk.ArticleSource
	Fetcher    newsdesk.Fetcher
	Extractor  newsdesk.Extractor
	Previewer  newsdesk.Previewer
	Sanitizer  newsdesk.Sanitizer
	Summarizer newsdesk.Summarizer
	Corpus     newsdesk.Corpus
	Cache      newsdesk.ScrapeCache
	Seen       newsdesk.SeenFilter
	Limiter    newsdesk.RateLimiter

	Concurrency      int
	FetchTimeout     time.Duration
	RetryDelays      []time.Duration
	MaxContentLength int

	// Progress, if set, receives events as a batch proceeds.
	Progress ProgressFunc

	Logger *slog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// BatchResult holds the outcome of processing one category.
type BatchResult struct {
	RunID    string
	Category string

	// Articles are in source order.
	Articles []*newsdesk.ProcessedArticle

	Skipped    int
	Duplicates int
	Inserted   int

	// SourceErr is set when the article source failed for the category.
	SourceErr error
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// articleResult holds the outcome of processing a single source article.
type articleResult struct {
	position  int
	url       string
	article   *newsdesk.ProcessedArticle
	duplicate bool
	err       error
}

// ProcessCategory finds the articles of category and processes them.
// A failing source is reported through BatchResult.SourceErr and the
// returned error stays nil.
func (p *Pipeline) ProcessCategory(ctx context.Context, category string) (*BatchResult, error) {
	srcs, err := p.Source.FindArticles(ctx, category)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.logger().Warn("article source failed", "category", category, "error", err)
		return &BatchResult{
			RunID:     uuid.NewString(),
			Category:  category,
			SourceErr: err,
		}, nil
	}
	return p.ProcessArticles(ctx, category, srcs)
}

// ProcessArticles processes srcs with bounded concurrency. The first
// processed article of the batch is marked as the top story. Malformed articles are
// skipped, repeated URLs count as duplicates of their first occurrence, and every
// other article yields a result, degraded if needed.
func (p *Pipeline) ProcessArticles(ctx context.Context, category string, srcs []*newsdesk.SourceArticle) (*BatchResult, error) {
	batch := &BatchResult{
		RunID:    uuid.NewString(),
		Category: category,
	}
	logger := p.logger().With("run_id", batch.RunID, "category", category)
	start := p.now()

	total := len(srcs)
	p.notify(ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan articleResult, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency())

	go func() {
		ids := make(map[string]struct{}, total)
		for i, src := range srcs {
			if src.Validate() == nil {
				id := newsdesk.ArticleID(src.URL)
				if _, ok := ids[id]; ok {
					resultCh <- articleResult{position: i, url: src.URL, duplicate: true}
					continue
				}
				ids[id] = struct{}{}
			}
			i, src := i, src
			g.Go(func() error {
				resultCh <- p.processSource(gctx, category, i, src)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]articleResult, total)
	var completed atomic.Int64
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			URL:       result.url,
		}
		if result.err != nil || result.duplicate {
			event.Type = ProgressSkipped
			event.Error = result.err
		}
		p.notify(event)
	}

	for _, result := range results {
		switch {
		case result.err != nil:
			batch.Skipped++
			logger.Warn("skipped article", "url", result.url, "error", result.err)
		case result.duplicate:
			batch.Duplicates++
		case result.article != nil:
			result.article.IsTopStory = len(batch.Articles) == 0
			batch.Articles = append(batch.Articles, result.article)
		}
	}

	if p.Corpus != nil && len(batch.Articles) > 0 {
		batch.Inserted = p.Corpus.AppendArticles(batch.Articles)
	}

	p.notify(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	logger.Info("processed batch",
		"articles", len(batch.Articles),
		"skipped", batch.Skipped,
		"duplicates", batch.Duplicates,
		"inserted", batch.Inserted,
		"duration", p.now().Sub(start),
	)

	if err := ctx.Err(); err != nil {
		return batch, err
	}
	return batch, nil
}

// processSource applies the seen filter and processes one batch entry.
func (p *Pipeline) processSource(ctx context.Context, category string, position int, src *newsdesk.SourceArticle) articleResult {
	result := articleResult{position: position}
	if src != nil {
		result.url = src.URL
	}

	if err := src.Validate(); err != nil {
		result.err = err
		return result
	}
	if p.Seen != nil && p.Seen.TestAndAdd(src.URL) {
		result.duplicate = true
		return result
	}

	result.article, result.err = p.process(ctx, category, src)
	return result
}

// ProcessArticle processes a single source article. It returns an
// EINVALID error only for malformed input.
func (p *Pipeline) ProcessArticle(ctx context.Context, category string, src *newsdesk.SourceArticle) (*newsdesk.ProcessedArticle, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	return p.process(ctx, category, src)
}

// ProcessURL processes a page without a source record. The corpus is
// updated when configured.
func (p *Pipeline) ProcessURL(ctx context.Context, category, rawURL string) (*newsdesk.ProcessedArticle, error) {
	article, err := p.ProcessArticle(ctx, category, &newsdesk.SourceArticle{URL: strings.TrimSpace(rawURL)})
	if err != nil {
		return nil, err
	}
	if p.Corpus != nil {
		p.Corpus.AppendArticles([]*newsdesk.ProcessedArticle{article})
	}
	return article, nil
}

// process runs Fetching, Extraction, Summarizing and Formatting for a
// validated source article.
func (p *Pipeline) process(ctx context.Context, category string, src *newsdesk.SourceArticle) (*newsdesk.ProcessedArticle, error) {
	logger := p.logger().With("url", src.URL)
	scrape := p.scrape(ctx, src.URL, logger)

	var extraction newsdesk.ExtractionResult
	var preview newsdesk.Preview
	if scrape != nil {
		if scrape.Extraction != nil {
			extraction = *scrape.Extraction
		}
		if scrape.Preview != nil {
			preview = *scrape.Preview
		}
	}

	maxLen := p.MaxContentLength
	if maxLen <= 0 {
		maxLen = newsdesk.DefaultMaxContentLength
	}

	contentSource := newsdesk.ContentScraped
	content := newsdesk.NormalizeText(extraction.Content, maxLen)
	if content == "" {
		contentSource = newsdesk.ContentSnippet
		content = newsdesk.NormalizeText(p.sanitize(src.Snippet), maxLen)
		if content == "" {
			content = newsdesk.NormalizeText(preview.Description, maxLen)
		}
	}

	title := firstNonEmpty(p.sanitize(src.Title), extraction.Title, src.URL)

	summary := p.summarize(ctx, newsdesk.SummaryRequest{
		Title:    title,
		Content:  content,
		Category: category,
	})
	summarySource := newsdesk.SummaryAI
	if summary.Fallback {
		summarySource = newsdesk.SummaryFallback
		if summary.Err != nil {
			logger.Warn("summary degraded to fallback", "error", summary.Err)
		}
	}

	now := p.now()
	publishedAt := p.publishedAt(src, &extraction, now)
	source := firstNonEmpty(p.sanitize(src.SourceName), preview.SiteName, hostOf(src.URL))

	article := &newsdesk.ProcessedArticle{
		ID:               newsdesk.ArticleID(src.URL),
		Title:            title,
		Summary:          summary.Text,
		Category:         category,
		TimestampDisplay: newsdesk.RelativeTime(publishedAt, now),
		ReadTime:         newsdesk.ReadTime(newsdesk.WordCount(content)),
		IsBreaking:       newsdesk.IsBreakingNews(title),
		ImageURL:         firstNonEmpty(src.ImageURL, preview.ImageURL),
		SourceURL:        src.URL,
		Source:           source,
		LinkedSources:    []newsdesk.LinkedSource{{Name: source, URL: src.URL}},
		Confidence:       newsdesk.ConfidenceFor(contentSource, summarySource),
		ContentSource:    contentSource,
		SummarySource:    summarySource,
		PublishedAt:      publishedAt,
		ProcessedAt:      now,
	}
	if contentSource == newsdesk.ContentScraped {
		article.Strategy = extraction.Strategy
	}
	return article, nil
}

// scrape returns the cached or freshly fetched extraction and preview of
// rawURL. It returns nil when the fetch fails.
func (p *Pipeline) scrape(ctx context.Context, rawURL string, logger *slog.Logger) *newsdesk.Scrape {
	if p.Cache != nil {
		if s, ok := p.Cache.Get(rawURL); ok {
			return s
		}
	}

	timeout := p.FetchTimeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	delays := p.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	fetchFn := func(ctx context.Context, url string) (*newsdesk.FetchResult, error) {
		if p.Limiter != nil {
			if err := p.Limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		return p.Fetcher.Fetch(ctx, url)
	}
	logRetry := func(url string, attempt int, err error) {
		logger.Debug("retrying fetch", "attempt", attempt, "error", err)
	}

	fetched, err := FetchWithRetryDelays(fetchCtx, rawURL, fetchFn, logRetry, delays)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			err = &newsdesk.FetchError{Kind: newsdesk.FetchTimeout, URL: rawURL, Err: err}
		}
		logger.Warn("fetch failed, using snippet", "error", err)
		return nil
	}

	s := &newsdesk.Scrape{FetchedAt: fetched.FetchedAt}
	extraction, err := p.Extractor.Extract(fetched.HTML)
	if err != nil {
		logger.Warn("extraction failed, using snippet", "error", err)
	} else {
		s.Extraction = extraction
		if !extraction.OK() {
			logger.Warn("no extraction strategy cleared the threshold", "strategy", extraction.Strategy)
		}
	}

	if p.Previewer != nil {
		pageURL := fetched.URL
		if pageURL == "" {
			pageURL = rawURL
		}
		if preview, err := p.Previewer.Preview(fetched.HTML, pageURL); err == nil {
			s.Preview = preview
		} else {
			logger.Debug("preview failed", "error", err)
		}
	}

	if p.Cache != nil {
		p.Cache.Put(rawURL, s)
	}
	return s
}

func (p *Pipeline) summarize(ctx context.Context, req newsdesk.SummaryRequest) *newsdesk.Summary {
	if p.Summarizer == nil {
		return &newsdesk.Summary{
			Text:     newsdesk.FallbackSummary(req.Title, req.Content, req.Category),
			Fallback: true,
		}
	}
	return p.Summarizer.Summarize(ctx, req)
}

// publishedAt picks the source date, then the extracted date, then now.
func (p *Pipeline) publishedAt(src *newsdesk.SourceArticle, extraction *newsdesk.ExtractionResult, now time.Time) time.Time {
	if !src.PublishedAt.IsZero() {
		return src.PublishedAt
	}
	if extraction.PublishDate != "" {
		if t, err := dateparse.ParseAny(extraction.PublishDate); err == nil {
			return t
		}
	}
	return now
}

func (p *Pipeline) sanitize(s string) string {
	if s == "" {
		return ""
	}
	if p.Sanitizer != nil {
		return p.Sanitizer.Sanitize(s)
	}
	return newsdesk.CollapseText(s)
}

func (p *Pipeline) notify(event ProgressEvent) {
	if p.Progress != nil {
		p.Progress(event)
	}
}

func (p *Pipeline) concurrency() int {
	switch {
	case p.Concurrency <= 0:
		return DefaultConcurrency
	case p.Concurrency > MaxConcurrency:
		return MaxConcurrency
	default:
		return p.Concurrency
	}
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}

func (p *Pipeline) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
