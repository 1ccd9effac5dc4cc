package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsdesk"
)

// DefaultMinParagraphLength is the number of characters a paragraph must
// exceed to be aggregated.
const DefaultMinParagraphLength = 50

// containerSelector matches container-like elements for the largest-block
// heuristic.
const containerSelector = "div, section, article, main, td"

// StrategyFunc attempts to isolate article text from a cleaned document.
// It reports false when its best candidate does not exceed minLength
// characters.
type StrategyFunc func(doc *goquery.Document, minLength int) (string, bool)

// Strategy is a named step of the extraction chain.
type Strategy struct {
	Name newsdesk.Strategy
	Fn   StrategyFunc
}

// DefaultStrategies returns the chain in priority order: selector match
// over selectors, largest leaf block, paragraph aggregation.
func DefaultStrategies(selectors []string) []Strategy {
	return []Strategy{
		{Name: newsdesk.StrategySelector, Fn: SelectorStrategy(selectors)},
		{Name: newsdesk.StrategyLargestBlock, Fn: LargestBlock},
		{Name: newsdesk.StrategyParagraphs, Fn: ParagraphAggregation},
	}
}

// SelectorStrategy returns a strategy that tries selectors in order and
// takes the first matching element above the threshold.
func SelectorStrategy(selectors []string) StrategyFunc {
	return func(doc *goquery.Document, minLength int) (string, bool) {
		for _, selector := range selectors {
			var found string
			doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
				if text := blockText(s); newsdesk.CharCount(text) > minLength {
					found = text
					return false
				}
				return true
			})
			if found != "" {
				return found, true
			}
		}
		return "", false
	}
}

// LargestBlock picks the container without nested containers that holds
// the most text.
func LargestBlock(doc *goquery.Document, minLength int) (string, bool) {
	var best string
	var bestLen int
	doc.Find(containerSelector).Each(func(_ int, s *goquery.Selection) {
		if s.Find(containerSelector).Length() > 0 {
			return
		}
		text := blockText(s)
		if n := newsdesk.CharCount(text); n > bestLen {
			best, bestLen = text, n
		}
	})
	if bestLen > minLength {
		return best, true
	}
	return "", false
}

// ParagraphAggregation joins every paragraph longer than
// DefaultMinParagraphLength in document order, separated by blank lines.
func ParagraphAggregation(doc *goquery.Document, minLength int) (string, bool) {
	var paragraphs []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := blockText(s); newsdesk.CharCount(text) > DefaultMinParagraphLength {
			paragraphs = append(paragraphs, text)
		}
	})
	joined := strings.Join(paragraphs, "\n\n")
	if newsdesk.CharCount(joined) > minLength {
		return joined, true
	}
	return "", false
}
