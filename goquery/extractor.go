// Package goquery implements article extraction on top of
// github.com/PuerkitoBio/goquery: noise stripping, a strategy chain for
// the main text, and metadata rules.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsdesk"
)

// Ensure Extractor implements newsdesk.Extractor at compile time.
var _ newsdesk.Extractor = (*Extractor)(nil)

// Extractor runs the extraction chain over a page. Metadata and the
// publishing platform are read before noise stripping, since bylines and
// platform scripts often sit in regions the stripper removes.
type Extractor struct {
	registry  *Registry
	minLength int
	fallback  newsdesk.Extractor
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMinContentLength sets the number of characters content must exceed.
// Defaults to newsdesk.DefaultMinContentLength.
func WithMinContentLength(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.minLength = n
		}
	}
}

// WithFallback sets an extractor consulted after every strategy in the
// chain has failed. Its content is held to the same threshold.
func WithFallback(fallback newsdesk.Extractor) Option {
	return func(e *Extractor) {
		e.fallback = fallback
	}
}

// NewExtractor creates an Extractor with the default strategy chain.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		registry:  DefaultRegistry(),
		minLength: newsdesk.DefaultMinContentLength,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses html and returns its article text and metadata.
func (e *Extractor) Extract(html string) (*newsdesk.ExtractionResult, error) {
	if strings.TrimSpace(html) == "" {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "empty HTML")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "failed to parse HTML: %v", err)
	}

	meta := ExtractMetadata(doc)
	result := &newsdesk.ExtractionResult{
		Title:       meta.Title,
		Author:      meta.Author,
		PublishDate: meta.PublishDate,
	}

	strategies := DefaultStrategies(e.registry.Selectors(e.registry.Detect(doc)))

	StripNoise(doc)
	for _, s := range strategies {
		result.Strategy = s.Name
		if text, ok := s.Fn(doc, e.minLength); ok {
			result.Content = text
			return result, nil
		}
	}

	if e.fallback != nil {
		e.applyFallback(html, result)
	}
	return result, nil
}

func (e *Extractor) applyFallback(html string, result *newsdesk.ExtractionResult) {
	fb, err := e.fallback.Extract(html)
	if err != nil || fb == nil {
		return
	}
	if content := newsdesk.CollapseText(fb.Content); newsdesk.CharCount(content) > e.minLength {
		result.Content = content
		result.Strategy = fb.Strategy
	}
	if result.Title == "" {
		result.Title = fb.Title
	}
	if result.Author == "" {
		result.Author = fb.Author
	}
	if result.PublishDate == "" {
		result.PublishDate = fb.PublishDate
	}
}
