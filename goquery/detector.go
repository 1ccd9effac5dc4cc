package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CMS identifies the publishing platform that rendered a page.
type CMS string

const (
	CMSUnknown   CMS = ""
	CMSWordPress CMS = "wordpress"
	CMSGhost     CMS = "ghost"
	CMSDrupal    CMS = "drupal"
	CMSSubstack  CMS = "substack"
	CMSBlogger   CMS = "blogger"
	CMSMedium    CMS = "medium"
	CMSArc       CMS = "arc"
)

// generators maps a fragment of the generator meta tag to its platform.
var generators = []struct {
	fragment string
	cms      CMS
}{
	{"wordpress", CMSWordPress},
	{"ghost", CMSGhost},
	{"drupal", CMSDrupal},
	{"substack", CMSSubstack},
	{"blogger", CMSBlogger},
}

// markers are structural selectors unique to a platform, checked in order.
var markers = []struct {
	cms       CMS
	selectors []string
}{
	{CMSWordPress, []string{"link[href*='/wp-content/']", "script[src*='/wp-includes/']", ".wp-block-post-content"}},
	{CMSGhost, []string{".gh-content", "script[src*='/ghost/']"}},
	{CMSDrupal, []string{"[data-drupal-selector]"}},
	{CMSSubstack, []string{"link[href*='substackcdn.com']", ".available-content"}},
	{CMSMedium, []string{"meta[property='al:ios:app_name'][content='Medium']"}},
	{CMSArc, []string{"#fusion-app", "script#fusion-metadata", "script[src*='arcpublishing.com']"}},
}

// Detector identifies publishing platforms from parsed HTML. The
// generator meta tag wins when present; otherwise the first platform with
// a matching structural marker is returned.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the platform that rendered doc, or CMSUnknown.
func (d *Detector) Detect(doc *goquery.Document) CMS {
	generator := strings.ToLower(doc.Find("meta[name='generator']").AttrOr("content", ""))
	if generator != "" {
		for _, g := range generators {
			if strings.Contains(generator, g.fragment) {
				return g.cms
			}
		}
	}

	for _, m := range markers {
		for _, selector := range m.selectors {
			if doc.Find(selector).Length() > 0 {
				return m.cms
			}
		}
	}
	return CMSUnknown
}
