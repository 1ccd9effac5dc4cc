// Package trafilatura adapts go-trafilatura to newsdesk.Extractor. It is
// an alternative library fallback to readability with stronger date and
// author detection.
package trafilatura

import (
	"strings"
	"time"

	"github.com/fwojciec/newsdesk"
	"github.com/markusmobius/go-trafilatura"
)

var _ newsdesk.Extractor = (*Extractor)(nil)

// Extractor runs trafilatura with its readability and domdistiller
// fallbacks enabled. Comment sections are left out of the content.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor returns a trafilatura extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
		},
	}
}

// Extract returns the main text of rawHTML along with trafilatura's title,
// author and date metadata.
func (e *Extractor) Extract(rawHTML string) (*newsdesk.ExtractionResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "empty HTML input")
	}

	extracted, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "trafilatura: %v", err)
	}

	meta := extracted.Metadata
	result := &newsdesk.ExtractionResult{
		Content:  newsdesk.CollapseText(extracted.ContentText),
		Title:    strings.TrimSpace(meta.Title),
		Author:   newsdesk.StripByline(meta.Author),
		Strategy: newsdesk.StrategyTrafilatura,
	}
	if !meta.Date.IsZero() {
		result.PublishDate = meta.Date.UTC().Format(time.RFC3339)
	}
	return result, nil
}
