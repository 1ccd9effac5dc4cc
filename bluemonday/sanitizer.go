// Package bluemonday implements newsdesk.Sanitizer with a strict
// bluemonday policy.
package bluemonday

import (
	"html"

	"github.com/fwojciec/newsdesk"
	"github.com/microcosm-cc/bluemonday"
)

// Ensure Sanitizer implements newsdesk.Sanitizer at compile time.
var _ newsdesk.Sanitizer = (*Sanitizer)(nil)

// Sanitizer strips all markup from text, leaving plain characters.
// Sanitizer is safe for concurrent use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer using bluemonday's strict policy.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize removes tags and collapses whitespace. Entities escaped by the
// policy are decoded so the result is display text, not HTML.
func (s *Sanitizer) Sanitize(text string) string {
	if text == "" {
		return ""
	}
	return newsdesk.CollapseText(html.UnescapeString(s.policy.Sanitize(text)))
}
