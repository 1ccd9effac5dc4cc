package newsdesk

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaxContentLength is the character ceiling enforced on text handed
// to summarization.
const DefaultMaxContentLength = 8000

// TruncationMarker is appended to text cut at the length ceiling.
const TruncationMarker = " [truncated]"

var (
	lineBreaks     = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\u2028", "\n", "\u2029", "\n")
	extraNewlines  = regexp.MustCompile(`\n{3,}`)
	extraSpaces    = regexp.MustCompile(` {2,}`)
	markerRuneSize = utf8.RuneCountInString(TruncationMarker)
)

// CollapseText canonicalizes whitespace: lines are trimmed, runs of
// whitespace inside a line become a single space, and empty lines are
// dropped. It does not enforce a length ceiling.
func CollapseText(raw string) string {
	lines := strings.Split(lineBreaks.Replace(raw), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	s := strings.Join(kept, "\n")
	s = extraNewlines.ReplaceAllString(s, "\n\n")
	return extraSpaces.ReplaceAllString(s, " ")
}

// NormalizeText collapses whitespace and truncates the result to at most
// maxLen characters, ending truncated text with TruncationMarker.
// A maxLen of zero or less uses DefaultMaxContentLength.
// NormalizeText is idempotent.
func NormalizeText(raw string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxContentLength
	}
	return truncate(CollapseText(raw), maxLen)
}

func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	cut := maxLen - markerRuneSize
	if cut < 0 {
		cut = 0
	}
	head := strings.TrimSpace(string([]rune(s)[:cut]))
	if head == "" {
		return strings.TrimSpace(TruncationMarker)
	}
	return head + TruncationMarker
}

// CharCount returns the number of characters in s.
func CharCount(s string) int {
	return utf8.RuneCountInString(s)
}

// WordCount returns the number of whitespace-separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

var bylinePrefix = regexp.MustCompile(`(?i)^(?:written\s+by\b|author\s*:|by\b)\s*:?\s*`)

// StripByline removes a leading "By", "Written by" or "Author:" from an
// author line.
func StripByline(s string) string {
	return strings.TrimSpace(bylinePrefix.ReplaceAllString(strings.TrimSpace(s), ""))
}
