package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/newsdesk"
)

// Summarizer defaults.
const (
	DefaultSummaryTimeout     = 20 * time.Second
	DefaultSummaryMaxTokens   = 300
	DefaultSummaryTemperature = 0.3
)

const summarySystemPrompt = `You are a news editor writing briefs for a news digest.
Summarize the article in two or three neutral, factual sentences.
Do not add information that is not in the article.
Respond with a JSON object of the form {"summary": "..."} and nothing else.`

var _ newsdesk.Summarizer = (*Summarizer)(nil)

// Summarizer produces article summaries through a completion capability
// and falls back to newsdesk.FallbackSummary whenever that fails.
// Summarize never returns an empty text.
type Summarizer struct {
	Completer        newsdesk.Completer
	Timeout          time.Duration
	MaxTokens        int
	Temperature      float32
	MaxContentLength int
}

// NewSummarizer creates a Summarizer with default limits.
// A nil completer makes every summary a fallback.
func NewSummarizer(c newsdesk.Completer) *Summarizer {
	return &Summarizer{
		Completer:        c,
		Timeout:          DefaultSummaryTimeout,
		MaxTokens:        DefaultSummaryMaxTokens,
		Temperature:      DefaultSummaryTemperature,
		MaxContentLength: newsdesk.DefaultMaxContentLength,
	}
}

// Summarize summarizes req.Content.
func (s *Summarizer) Summarize(ctx context.Context, req newsdesk.SummaryRequest) *newsdesk.Summary {
	maxLen := s.MaxContentLength
	if maxLen <= 0 {
		maxLen = newsdesk.DefaultMaxContentLength
	}
	content := newsdesk.NormalizeText(req.Content, maxLen)

	fallback := func(err error) *newsdesk.Summary {
		return &newsdesk.Summary{
			Text:     newsdesk.FallbackSummary(req.Title, content, req.Category),
			Fallback: true,
			Err:      err,
		}
	}

	if s.Completer == nil {
		return fallback(newsdesk.Errorf(newsdesk.EUNAVAILABLE, "no summarization provider configured"))
	}
	if content == "" {
		return fallback(newsdesk.Errorf(newsdesk.EINVALID, "no content to summarize"))
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultSummaryTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reply, err := s.Completer.Complete(ctx, newsdesk.CompletionRequest{
		SystemPrompt: summarySystemPrompt,
		UserPrompt:   summaryPrompt(req.Title, req.Category, content),
		Temperature:  s.Temperature,
		MaxTokens:    s.MaxTokens,
		JSON:         true,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = newsdesk.Errorf(newsdesk.ETIMEOUT, "summarization timed out after %s", timeout)
		}
		return fallback(fmt.Errorf("summarize: %w", err))
	}

	text := ParseSummary(reply)
	if text == "" {
		return fallback(newsdesk.Errorf(newsdesk.EINTERNAL, "empty summary reply"))
	}
	return &newsdesk.Summary{Text: text}
}

func summaryPrompt(title, category, content string) string {
	var b strings.Builder
	if category != "" {
		fmt.Fprintf(&b, "Category: %s\n", category)
	}
	if title != "" {
		fmt.Fprintf(&b, "Title: %s\n", title)
	}
	b.WriteString("\nArticle:\n")
	b.WriteString(content)
	return b.String()
}

// ParseSummary extracts the summary text from a completion reply. It
// accepts a JSON object with a "summary" field, optionally inside a code
// fence, and otherwise treats the reply as plain text. A JSON object
// without a usable summary yields "".
func ParseSummary(reply string) string {
	reply = strings.TrimSpace(reply)
	if strings.HasPrefix(reply, "```") {
		reply = strings.TrimPrefix(reply, "```json")
		reply = strings.TrimPrefix(reply, "```")
		reply = strings.TrimSuffix(reply, "```")
		reply = strings.TrimSpace(reply)
	}
	if reply == "" {
		return ""
	}

	if strings.HasPrefix(reply, "{") {
		var payload struct {
			Summary string `json:"summary"`
		}
		if err := json.Unmarshal([]byte(reply), &payload); err != nil {
			return ""
		}
		return newsdesk.CollapseText(payload.Summary)
	}
	return newsdesk.CollapseText(reply)
}
