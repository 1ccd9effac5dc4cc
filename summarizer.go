package newsdesk

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CompletionRequest is a provider-agnostic text generation request.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	MaxTokens    int

	// JSON asks the provider to reply with a single JSON object.
	JSON bool
}

// Completer is the capability boundary to an external text generation
// service. Implementations report rate limiting as ERATELIMIT, rejected
// credentials as EUNAUTHORIZED and transport failures as EUNAVAILABLE.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// SummaryRequest describes the article to summarize.
type SummaryRequest struct {
	Title    string
	Content  string
	Category string
}

// Summary is the outcome of summarization.
type Summary struct {
	Text string

	// Fallback is true when Text was produced locally by FallbackSummary.
	Fallback bool

	// Err is the capability failure that caused the fallback, if any.
	Err error
}

// Summarizer produces article summaries. Summarize always returns a
// summary; capability failures are recorded in Summary.Err.
type Summarizer interface {
	Summarize(ctx context.Context, req SummaryRequest) *Summary
}

const (
	fallbackMinContent  = 200
	fallbackHeadLength  = 150
	fallbackMinSentence = 50
)

// FallbackSummary builds a summary without any external service. Long
// content is cut to its leading sentences; short content yields a
// one-line summary built from the title and category.
func FallbackSummary(title, content, category string) string {
	text := strings.ReplaceAll(CollapseText(content), "\n", " ")
	runes := []rune(text)
	if len(runes) > fallbackMinContent {
		head := runes[:fallbackHeadLength]
		for i := len(head) - 1; i >= fallbackMinSentence; i-- {
			switch head[i] {
			case '.', '!', '?':
				return string(head[:i+1])
			}
		}
		return strings.TrimSpace(string(head)) + "..."
	}

	label := "Latest"
	if c := strings.TrimSpace(category); c != "" {
		label = cases.Title(language.English).String(c)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Sprintf("%s news update.", label)
	}
	return fmt.Sprintf("%s news: %s", label, title)
}
