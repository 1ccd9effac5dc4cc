// Package opengraph implements newsdesk.Previewer using Open Graph tags
// parsed by github.com/dyatlov/go-opengraph.
package opengraph

import (
	"net/url"
	"strings"

	"github.com/dyatlov/go-opengraph/opengraph"
	"github.com/fwojciec/newsdesk"
)

// Ensure Previewer implements newsdesk.Previewer at compile time.
var _ newsdesk.Previewer = (*Previewer)(nil)

// Previewer reads og:image, og:site_name and og:description from a page.
type Previewer struct{}

// NewPreviewer creates a new Previewer.
func NewPreviewer() *Previewer {
	return &Previewer{}
}

// Preview parses the Open Graph tags in html.
func (p *Previewer) Preview(html, pageURL string) (*newsdesk.Preview, error) {
	og := opengraph.NewOpenGraph()
	if err := og.ProcessHTML(strings.NewReader(html)); err != nil {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "failed to parse OpenGraph: %v", err)
	}

	preview := &newsdesk.Preview{
		SiteName:    strings.TrimSpace(og.SiteName),
		Description: strings.TrimSpace(og.Description),
	}
	for _, img := range og.Images {
		src := img.SecureURL
		if src == "" {
			src = img.URL
		}
		if src != "" {
			preview.ImageURL = resolve(pageURL, src)
			break
		}
	}
	return preview, nil
}

// resolve makes ref absolute relative to base. ref is returned unchanged
// when either URL is unusable.
func resolve(base, ref string) string {
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ref
	}
	if r.IsAbs() {
		return r.String()
	}
	b, err := url.Parse(base)
	if err != nil || base == "" {
		return ref
	}
	return b.ResolveReference(r).String()
}
