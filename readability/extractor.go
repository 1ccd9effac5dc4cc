// Package readability adapts go-readability to newsdesk.Extractor. It is
// used as the library fallback after the goquery strategy chain.
package readability

import (
	"strings"
	"time"

	"github.com/fwojciec/newsdesk"
	"github.com/go-shiori/go-readability"
)

var _ newsdesk.Extractor = (*Extractor)(nil)

// Extractor runs Mozilla's readability algorithm over a page.
type Extractor struct{}

// NewExtractor returns a readability extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the readable text of rawHTML along with the title, byline
// and published time readability found. Content is empty when readability
// could not identify an article body.
func (e *Extractor) Extract(rawHTML string) (*newsdesk.ExtractionResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "readability: %v", err)
	}
	return toResult(article), nil
}

func toResult(article readability.Article) *newsdesk.ExtractionResult {
	result := &newsdesk.ExtractionResult{
		Content:  newsdesk.CollapseText(article.TextContent),
		Title:    strings.TrimSpace(article.Title),
		Author:   newsdesk.StripByline(article.Byline),
		Strategy: newsdesk.StrategyReadability,
	}
	if article.PublishedTime != nil && !article.PublishedTime.IsZero() {
		result.PublishDate = article.PublishedTime.UTC().Format(time.RFC3339)
	}
	return result
}
