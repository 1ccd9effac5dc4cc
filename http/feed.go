package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/beevik/etree"
	"github.com/fwojciec/newsdesk"
)

// DefaultMaxItems is the number of items read from each feed.
const DefaultMaxItems = 10

// Ensure FeedSource implements newsdesk.ArticleSource.
var _ newsdesk.ArticleSource = (*FeedSource)(nil)

// FeedSource finds articles by reading the RSS and Atom feeds configured
// for each category.
type FeedSource struct {
	client    *http.Client
	feeds     map[string][]string
	maxItems  int
	timeout   time.Duration
	userAgent string
}

// FeedOption configures a FeedSource.
type FeedOption func(*FeedSource)

// WithFeedClient sets the HTTP client used to download feeds.
func WithFeedClient(c *http.Client) FeedOption {
	return func(s *FeedSource) {
		s.client = c
	}
}

// WithMaxItems limits how many items are taken from each feed.
func WithMaxItems(n int) FeedOption {
	return func(s *FeedSource) {
		if n > 0 {
			s.maxItems = n
		}
	}
}

// WithFeedTimeout bounds each feed download.
func WithFeedTimeout(d time.Duration) FeedOption {
	return func(s *FeedSource) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewFeedSource creates a FeedSource reading the given category to feed
// URL mapping.
func NewFeedSource(feeds map[string][]string, opts ...FeedOption) *FeedSource {
	s := &FeedSource{
		client:    http.DefaultClient,
		feeds:     feeds,
		maxItems:  DefaultMaxItems,
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindArticles downloads every feed configured for category and returns
// their items, deduplicated by URL. Feeds that fail are skipped as long as
// at least one succeeds.
func (s *FeedSource) FindArticles(ctx context.Context, category string) ([]*newsdesk.SourceArticle, error) {
	urls := s.feeds[category]
	if len(urls) == 0 {
		return nil, newsdesk.Errorf(newsdesk.ENOTFOUND, "no feeds configured for category %q", category)
	}

	var (
		articles []*newsdesk.SourceArticle
		errs     []error
		seen     = make(map[string]bool)
		okFeeds  int
	)
	for _, feedURL := range urls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		items, err := s.fetchFeed(ctx, feedURL)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", feedURL, err))
			continue
		}
		okFeeds++

		if len(items) > s.maxItems {
			items = items[:s.maxItems]
		}
		for _, item := range items {
			if seen[item.URL] {
				continue
			}
			seen[item.URL] = true
			articles = append(articles, item)
		}
	}

	if okFeeds == 0 {
		return nil, fmt.Errorf("reading feeds for %q: %w", category, errors.Join(errs...))
	}
	return articles, nil
}

func (s *FeedSource) fetchFeed(ctx context.Context, feedURL string) ([]*newsdesk.SourceArticle, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, classify(feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &newsdesk.FetchError{Kind: newsdesk.FetchHTTPError, StatusCode: resp.StatusCode, URL: feedURL}
	}

	return ParseFeed(io.LimitReader(resp.Body, maxBodySize))
}

// ParseFeed reads an RSS 2.0, RSS 1.0 or Atom document.
// Items without a link are dropped.
func ParseFeed(r io.Reader) ([]*newsdesk.SourceArticle, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "parsing feed XML: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "empty feed XML")
	}

	switch root.Tag {
	case "rss":
		channel := root.SelectElement("channel")
		if channel == nil {
			return nil, newsdesk.Errorf(newsdesk.EINVALID, "rss feed has no channel")
		}
		return parseRSSItems(channel.SelectElements("item"), childText(channel, "title")), nil
	case "RDF":
		var name string
		if channel := root.SelectElement("channel"); channel != nil {
			name = childText(channel, "title")
		}
		return parseRSSItems(root.SelectElements("item"), name), nil
	case "feed":
		return parseAtomEntries(root), nil
	}
	return nil, newsdesk.Errorf(newsdesk.EINVALID, "unsupported feed root element %q", root.Tag)
}

func parseRSSItems(items []*etree.Element, sourceName string) []*newsdesk.SourceArticle {
	articles := make([]*newsdesk.SourceArticle, 0, len(items))
	for _, item := range items {
		link := childText(item, "link")
		if link == "" {
			if guid := item.SelectElement("guid"); guid != nil && guid.SelectAttrValue("isPermaLink", "true") == "true" {
				link = strings.TrimSpace(guid.Text())
			}
		}
		if link == "" {
			continue
		}

		name := sourceName
		if src := childText(item, "source"); src != "" {
			name = src
		}

		articles = append(articles, &newsdesk.SourceArticle{
			URL:         link,
			Title:       childText(item, "title"),
			Snippet:     childText(item, "description"),
			PublishedAt: parseDate(firstText(item, "pubDate", "dc:date")),
			ImageURL:    rssImage(item),
			SourceName:  name,
		})
	}
	return articles
}

func parseAtomEntries(feed *etree.Element) []*newsdesk.SourceArticle {
	sourceName := childText(feed, "title")
	entries := feed.SelectElements("entry")
	articles := make([]*newsdesk.SourceArticle, 0, len(entries))
	for _, entry := range entries {
		link := atomLink(entry)
		if link == "" {
			continue
		}
		articles = append(articles, &newsdesk.SourceArticle{
			URL:         link,
			Title:       childText(entry, "title"),
			Snippet:     firstText(entry, "summary", "content"),
			PublishedAt: parseDate(firstText(entry, "published", "updated")),
			ImageURL:    rssImage(entry),
			SourceName:  sourceName,
		})
	}
	return articles
}

// atomLink returns the entry's alternate link. A link without rel counts
// as alternate.
func atomLink(entry *etree.Element) string {
	for _, l := range entry.SelectElements("link") {
		if l.SelectAttrValue("rel", "alternate") == "alternate" {
			if href := strings.TrimSpace(l.SelectAttrValue("href", "")); href != "" {
				return href
			}
		}
	}
	return ""
}

// rssImage looks for an image in enclosure and Media RSS elements.
func rssImage(item *etree.Element) string {
	for _, enc := range item.SelectElements("enclosure") {
		if strings.HasPrefix(enc.SelectAttrValue("type", ""), "image/") {
			if u := enc.SelectAttrValue("url", ""); u != "" {
				return u
			}
		}
	}
	for _, tag := range []string{"media:content", "media:thumbnail"} {
		for _, el := range item.SelectElements(tag) {
			medium := el.SelectAttrValue("medium", "image")
			if medium != "image" {
				continue
			}
			if u := el.SelectAttrValue("url", ""); u != "" {
				return u
			}
		}
	}
	return ""
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

func firstText(el *etree.Element, tags ...string) string {
	for _, tag := range tags {
		if s := childText(el, tag); s != "" {
			return s
		}
	}
	return ""
}

// parseDate returns the zero time when s is empty or not a recognizable date.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}
	}
	return t
}
