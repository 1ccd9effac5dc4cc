package newsdesk

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// SourceArticle is a record supplied by an article source. It seeds the
// pipeline with a URL and whatever the source already knows about the story.
type SourceArticle struct {
	URL         string
	Title       string
	Snippet     string
	PublishedAt time.Time
	ImageURL    string
	SourceName  string
}

// Validate returns an error if the record cannot be processed.
func (a *SourceArticle) Validate() error {
	if a == nil {
		return Errorf(EINVALID, "article required")
	}
	if strings.TrimSpace(a.URL) == "" {
		return Errorf(EINVALID, "article URL required")
	}
	u, err := url.Parse(a.URL)
	if err != nil {
		return Errorf(EINVALID, "invalid article URL %q", a.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "article URL %q has no host", a.URL)
	}
	return nil
}

// ArticleSource supplies candidate articles for a category.
type ArticleSource interface {
	FindArticles(ctx context.Context, category string) ([]*SourceArticle, error)
}

// Confidence indicates how much of the pipeline succeeded for an article.
type Confidence string

const (
	// ConfidenceHigh means full scraped content and an AI summary.
	ConfidenceHigh Confidence = "high"
	// ConfidenceMedium means exactly one of content or summary was degraded.
	ConfidenceMedium Confidence = "medium"
	// ConfidenceLow means snippet input and a fallback summary.
	ConfidenceLow Confidence = "low"
)

// ContentSource records where the summarized text came from.
type ContentSource string

const (
	ContentScraped ContentSource = "scraped"
	ContentSnippet ContentSource = "snippet"
)

// SummarySource records who wrote the summary.
type SummarySource string

const (
	SummaryAI       SummarySource = "ai"
	SummaryFallback SummarySource = "fallback"
)

// ConfidenceFor derives the confidence indicator from the stage outcomes.
func ConfidenceFor(content ContentSource, summary SummarySource) Confidence {
	switch {
	case content == ContentScraped && summary == SummaryAI:
		return ConfidenceHigh
	case content == ContentSnippet && summary == SummaryFallback:
		return ConfidenceLow
	default:
		return ConfidenceMedium
	}
}

// LinkedSource is a reference to a publication covering the story.
type LinkedSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ProcessedArticle is the formatted output of one pipeline run.
type ProcessedArticle struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Summary          string         `json:"summary"`
	Category         string         `json:"category"`
	TimestampDisplay string         `json:"timestamp"`
	ReadTime         string         `json:"readTime"`
	IsBreaking       bool           `json:"isBreaking"`
	IsTopStory       bool           `json:"isTopStory"`
	ImageURL         string         `json:"imageUrl,omitempty"`
	SourceURL        string         `json:"sourceUrl"`
	Source           string         `json:"source"`
	LinkedSources    []LinkedSource `json:"linkedSources"`

	Confidence    Confidence    `json:"confidence"`
	ContentSource ContentSource `json:"contentSource"`
	SummarySource SummarySource `json:"summarySource"`
	Strategy      Strategy      `json:"strategy,omitempty"`
	PublishedAt   time.Time     `json:"publishedAt"`
	ProcessedAt   time.Time     `json:"processedAt"`
}

// Validate returns an error if the article is missing required fields.
func (a *ProcessedArticle) Validate() error {
	if a.ID == "" {
		return Errorf(EINVALID, "article ID required")
	}
	if a.SourceURL == "" {
		return Errorf(EINVALID, "article source URL required")
	}
	if a.Title == "" {
		return Errorf(EINVALID, "article title required")
	}
	return nil
}

// ArticleID returns the corpus identifier for an article URL.
func ArticleID(rawURL string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(rawURL))
}

// breakingKeywords mark a headline as breaking news.
var breakingKeywords = []string{
	"breaking",
	"urgent",
	"alert",
	"just in",
	"developing",
}

// IsBreakingNews reports whether a headline contains a breaking-news keyword.
func IsBreakingNews(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range breakingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
