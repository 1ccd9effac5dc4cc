package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsdesk"
)

// maxBylineLength rejects byline candidates that are really bio boxes.
const maxBylineLength = 100

// bylineClasses are class fragments that mark an author byline.
var bylineClasses = []string{"byline", "by-line", "author", "writer"}

// Metadata holds article metadata read from the document. Empty fields
// mean no rule matched.
type Metadata struct {
	Title       string
	Author      string
	PublishDate string
}

// ExtractMetadata reads title, author and publish date from doc. Each
// field is resolved independently.
func ExtractMetadata(doc *goquery.Document) Metadata {
	return Metadata{
		Title:       extractTitle(doc),
		Author:      extractAuthor(doc),
		PublishDate: extractPublishDate(doc),
	}
}

func extractTitle(doc *goquery.Document) string {
	var title string
	doc.Find("h1").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title = inlineText(s)
		return title == ""
	})
	if title != "" {
		return title
	}
	if og := metaContent(doc, "meta[property='og:title']"); og != "" {
		return og
	}
	return inlineText(doc.Find("title").First())
}

func extractAuthor(doc *goquery.Document) string {
	if author := metaContent(doc, "meta[name='author']"); author != "" {
		return author
	}

	var author string
	doc.Find("[class]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class := strings.ToLower(s.AttrOr("class", ""))
		if !containsAny(class, bylineClasses) {
			return true
		}
		text := inlineText(s)
		if text == "" || newsdesk.CharCount(text) > maxBylineLength {
			return true
		}
		author = newsdesk.StripByline(text)
		return author == ""
	})
	if author != "" {
		return author
	}

	doc.Find("[itemprop='author']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if name := s.Find("[itemprop='name']").First(); name.Length() > 0 {
			author = name.AttrOr("content", "")
			if author == "" {
				author = inlineText(name)
			}
		}
		if author == "" {
			author = strings.TrimSpace(s.AttrOr("content", ""))
		}
		if author == "" {
			author = newsdesk.StripByline(inlineText(s))
		}
		return author == ""
	})
	return author
}

func extractPublishDate(doc *goquery.Document) string {
	if dt := strings.TrimSpace(doc.Find("time[datetime]").First().AttrOr("datetime", "")); dt != "" {
		return dt
	}
	if published := metaContent(doc, "meta[property='article:published_time']"); published != "" {
		return published
	}
	s := doc.Find("[itemprop='datePublished']").First()
	if dt := strings.TrimSpace(s.AttrOr("datetime", "")); dt != "" {
		return dt
	}
	return strings.TrimSpace(s.AttrOr("content", ""))
}


func metaContent(doc *goquery.Document, selector string) string {
	var content string
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		content = strings.TrimSpace(s.AttrOr("content", ""))
		return content == ""
	})
	return content
}

func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}
