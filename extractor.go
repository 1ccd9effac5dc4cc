package newsdesk

// Strategy identifies the extraction strategy that produced content.
type Strategy string

const (
	StrategyNone         Strategy = ""
	StrategySelector     Strategy = "selector"
	StrategyLargestBlock Strategy = "largest-block"
	StrategyParagraphs   Strategy = "paragraphs"
	StrategyReadability  Strategy = "readability"
	StrategyTrafilatura  Strategy = "trafilatura"
)

// DefaultMinContentLength is the number of characters extracted text must
// exceed before a strategy is accepted.
const DefaultMinContentLength = 200

// ExtractionResult holds the main text and metadata of an article page.
// Empty fields mean the value could not be determined.
type ExtractionResult struct {
	// Content is the article text. Empty when no strategy cleared the
	// minimum content threshold.
	Content     string
	Title       string
	Author      string
	PublishDate string

	// Strategy is the strategy that produced Content, or the last one
	// attempted when Content is empty.
	Strategy Strategy
}

// OK reports whether extraction produced article content.
func (r *ExtractionResult) OK() bool {
	return r != nil && r.Content != ""
}

// Extractor isolates the main article text from an HTML page.
type Extractor interface {
	// Extract returns the article content and metadata. An error is
	// returned only when the HTML cannot be parsed; a page without
	// recognizable content yields a result with empty Content.
	Extract(html string) (*ExtractionResult, error)
}

// Preview holds page-level metadata that is not part of the article body.
type Preview struct {
	ImageURL    string
	SiteName    string
	Description string
}

// Previewer reads preview metadata such as Open Graph tags from a page.
// Relative image URLs are resolved against pageURL.
type Previewer interface {
	Preview(html, pageURL string) (*Preview, error)
}

// Sanitizer strips markup from untrusted text such as feed snippets.
type Sanitizer interface {
	Sanitize(s string) string
}
