package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsdesk/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) *gq.Document {
	t.Helper()
	doc, err := gq.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractMetadata_Title(t *testing.T) {
	t.Parallel()

	t.Run("prefers first non-empty heading", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><head><title>Site | Story</title>
<meta property="og:title" content="OG Story"></head>
<body><h1> </h1><h1>Storm   Hits Coast</h1></body></html>`)

		assert.Equal(t, "Storm Hits Coast", goquery.ExtractMetadata(doc).Title)
	})

	t.Run("falls back to Open Graph title", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><head><title>Site | Story</title>
<meta property="og:title" content="OG Story"></head><body></body></html>`)

		assert.Equal(t, "OG Story", goquery.ExtractMetadata(doc).Title)
	})

	t.Run("falls back to title tag", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><head><title>Site | Story</title></head><body></body></html>`)

		assert.Equal(t, "Site | Story", goquery.ExtractMetadata(doc).Title)
	})

	t.Run("returns empty when nothing matches", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body><p>text</p></body></html>`)

		assert.Empty(t, goquery.ExtractMetadata(doc).Title)
	})
}

func TestExtractMetadata_Author(t *testing.T) {
	t.Parallel()

	t.Run("prefers author meta tag", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><head><meta name="author" content="Meta Writer"></head>
<body><span class="byline">By Someone Else</span></body></html>`)

		assert.Equal(t, "Meta Writer", goquery.ExtractMetadata(doc).Author)
	})

	t.Run("matches byline class case-insensitively and strips prefix", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body><div class="Article-ByLine">By   Jane Doe</div></body></html>`)

		assert.Equal(t, "Jane Doe", goquery.ExtractMetadata(doc).Author)
	})

	t.Run("skips long author bio boxes", func(t *testing.T) {
		t.Parallel()

		bio := strings.Repeat("Jane has covered politics for many years. ", 5)
		doc := parse(t, `<html><body>
<div class="author-bio">`+bio+`</div>
<p class="writer">Written by John Roe</p>
</body></html>`)

		assert.Equal(t, "John Roe", goquery.ExtractMetadata(doc).Author)
	})

	t.Run("falls back to schema.org author", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body>
<span itemprop="author" itemscope><span itemprop="name">Ada Lovelace</span></span>
</body></html>`)

		assert.Equal(t, "Ada Lovelace", goquery.ExtractMetadata(doc).Author)
	})

	t.Run("reads schema.org author content attribute", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><head><meta itemprop="author" content="Grace Hopper"></head><body></body></html>`)

		assert.Equal(t, "Grace Hopper", goquery.ExtractMetadata(doc).Author)
	})
}

func TestExtractMetadata_PublishDate(t *testing.T) {
	t.Parallel()

	t.Run("prefers time datetime attribute", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><head><meta property="article:published_time" content="2024-01-01T00:00:00Z"></head>
<body><time datetime="2024-03-04T10:00:00Z">March 4</time></body></html>`)

		assert.Equal(t, "2024-03-04T10:00:00Z", goquery.ExtractMetadata(doc).PublishDate)
	})

	t.Run("falls back to article published time meta", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><head><meta property="article:published_time" content="2024-01-01T00:00:00Z"></head><body></body></html>`)

		assert.Equal(t, "2024-01-01T00:00:00Z", goquery.ExtractMetadata(doc).PublishDate)
	})

	t.Run("falls back to schema.org datePublished", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><head><meta itemprop="datePublished" content="2023-12-31"></head><body></body></html>`)

		assert.Equal(t, "2023-12-31", goquery.ExtractMetadata(doc).PublishDate)
	})

	t.Run("fields are independent", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body><h1>Only A Title</h1></body></html>`)
		meta := goquery.ExtractMetadata(doc)

		assert.Equal(t, "Only A Title", meta.Title)
		assert.Empty(t, meta.Author)
		assert.Empty(t, meta.PublishDate)
	})
}

