package goquery

import "github.com/PuerkitoBio/goquery"

// noiseSelectors match regions that never carry article text.
var noiseSelectors = []string{
	// Scripts and embedded media.
	"script", "style", "noscript", "template", "iframe", "svg",

	// Page chrome.
	"nav", "header", "footer", "aside",
	"[role='navigation']", "[role='banner']", "[role='contentinfo']", "[role='complementary']",
	".breadcrumb", ".breadcrumbs", "[aria-label='breadcrumb']",

	// Advertising.
	".ad", ".ads", ".advert", ".advertisement", ".ad-container", ".ad-slot",
	"[id^='ad-']", "[data-ad-slot]", ".sponsored",

	// Social and comments.
	".share", ".sharing", ".social", ".social-share", ".share-buttons",
	".comments", "#comments", ".comment-section", "#disqus_thread",

	// Consent banners and overlays.
	".consent", "#consent",
	".popup", ".modal", ".overlay", "[role='dialog']", "[aria-modal='true']",

	// Story furniture.
	".author-bio", ".author-box", ".about-author",
	".tags", ".tag-list", ".post-tags",
	".newsletter", ".related", ".related-articles", ".recommended",
}

// fuzzyNoiseSelectors match on attribute substrings. Themes put such
// classes on wrappers too (body class="cookies-not-set"), so a match that
// holds article content is kept.
var fuzzyNoiseSelectors = []string{
	"[class*='advert']",
	"[class*='social-share']",
	"[class*='cookie']",
	"[id*='cookie']",
}

// articleSelector matches elements that carry the story itself.
const articleSelector = "article, main, [itemprop='articleBody']"

// protectedSelector is never removed, whatever its attributes.
const protectedSelector = "html, head, body"

// StripNoise removes navigation, advertising, social, comment and other
// non-article regions from doc in place. Running it again is a no-op.
func StripNoise(doc *goquery.Document) {
	for _, sel := range noiseSelectors {
		doc.Find(sel).Not(protectedSelector).Remove()
	}
	for _, sel := range fuzzyNoiseSelectors {
		doc.Find(sel).Not(protectedSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
			return !s.Is(articleSelector) && s.Find(articleSelector).Length() == 0
		}).Remove()
	}
}
