package goquery

import "github.com/PuerkitoBio/goquery"

// GenericSelectors are article container selectors tried on every page,
// after any platform-specific ones.
var GenericSelectors = []string{
	"article",
	"[role='main']",
	"main",
	".article-body",
	".article-content",
	".article__body",
	".story-body",
	".entry-content",
	".post-content",
	".post-body",
	".content-body",
	"#article-body",
	"[itemprop='articleBody']",
}

// Registry manages platform-specific article container selectors. It uses a
// Detector to identify the platform and returns that platform's selectors
// ahead of the generic ones.
type Registry struct {
	detector  *Detector
	generic   []string
	selectors map[CMS][]string
}

// NewRegistry creates an empty Registry with the given detector and
// generic selectors.
func NewRegistry(detector *Detector, generic []string) *Registry {
	return &Registry{
		detector:  detector,
		generic:   generic,
		selectors: make(map[CMS][]string),
	}
}

// DefaultRegistry returns a Registry with selectors for all known platforms.
func DefaultRegistry() *Registry {
	r := NewRegistry(NewDetector(), GenericSelectors)
	r.Register(CMSWordPress, ".entry-content", ".wp-block-post-content", ".post-entry")
	r.Register(CMSGhost, ".gh-content", ".post-full-content", ".post-content")
	r.Register(CMSDrupal, ".field--name-body", ".node__content", ".field-name-body")
	r.Register(CMSSubstack, ".available-content", ".body.markup")
	r.Register(CMSBlogger, ".post-body", ".entry-content")
	r.Register(CMSMedium, "article section", ".meteredContent")
	r.Register(CMSArc, ".article-body", "[class*='article-body']", "article")
	return r
}

// Get returns the selectors registered for a platform.
// Returns nil if no selectors are registered for the platform.
func (r *Registry) Get(cms CMS) []string {
	return r.selectors[cms]
}

// Detect returns the platform that rendered doc. Call it before noise
// stripping, since several platform markers are script elements.
func (r *Registry) Detect(doc *goquery.Document) CMS {
	return r.detector.Detect(doc)
}

// Selectors returns the selectors of cms followed by the generic
// selectors.
func (r *Registry) Selectors(cms CMS) []string {
	specific := r.selectors[cms]
	out := make([]string, 0, len(specific)+len(r.generic))
	out = append(out, specific...)
	return append(out, r.generic...)
}

// Register sets the selectors for a platform.
// If selectors are already registered for the platform, they are replaced.
func (r *Registry) Register(cms CMS, selectors ...string) {
	r.selectors[cms] = selectors
}
