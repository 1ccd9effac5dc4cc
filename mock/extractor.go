package mock

import "github.com/fwojciec/newsdesk"

var _ newsdesk.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of newsdesk.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*newsdesk.ExtractionResult, error)
}

func (e *Extractor) Extract(html string) (*newsdesk.ExtractionResult, error) {
	return e.ExtractFn(html)
}

var _ newsdesk.Previewer = (*Previewer)(nil)

// Previewer is a mock implementation of newsdesk.Previewer.
type Previewer struct {
	PreviewFn func(html, pageURL string) (*newsdesk.Preview, error)
}

func (p *Previewer) Preview(html, pageURL string) (*newsdesk.Preview, error) {
	return p.PreviewFn(html, pageURL)
}

var _ newsdesk.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of newsdesk.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(s string) string
}

func (s *Sanitizer) Sanitize(v string) string {
	return s.SanitizeFn(v)
}
