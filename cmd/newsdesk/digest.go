package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/newsdesk"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Run executes the digest command.
func (c *DigestCmd) Run(deps *Dependencies) error {
	categories := categoriesOrAll(c.Categories, deps.Config)
	if len(categories) == 0 {
		err := newsdesk.Errorf(newsdesk.EINVALID, "no categories configured")
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsdesk.ErrorMessage(err))
		return err
	}

	digest := make(map[string][]*newsdesk.ProcessedArticle, len(categories))
	var failed int
	for _, category := range categories {
		batch, err := deps.Processor.ProcessCategory(deps.Ctx, category)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newsdesk.ErrorMessage(err))
			return err
		}
		if batch.SourceErr != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "warning: %s: %s\n", category, newsdesk.ErrorMessage(batch.SourceErr))
		}
		digest[category] = batch.Articles
	}

	if failed == len(categories) {
		err := newsdesk.Errorf(newsdesk.EUNAVAILABLE, "no category could be fetched")
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsdesk.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, digest)
	}
	for _, category := range categories {
		printCategory(deps.Stdout, category, digest[category])
	}
	return nil
}

func printCategory(w io.Writer, category string, articles []*newsdesk.ProcessedArticle) {
	fmt.Fprintf(w, "== %s ==\n", cases.Title(language.English).String(category))
	if len(articles) == 0 {
		fmt.Fprintln(w, "  (no articles)")
	}
	for _, a := range articles {
		printArticle(w, a)
	}
	fmt.Fprintln(w)
}

func printArticle(w io.Writer, a *newsdesk.ProcessedArticle) {
	var flags []string
	if a.IsBreaking {
		flags = append(flags, "BREAKING")
	}
	if a.IsTopStory {
		flags = append(flags, "TOP")
	}
	prefix := ""
	if len(flags) > 0 {
		prefix = "[" + strings.Join(flags, ", ") + "] "
	}

	fmt.Fprintf(w, "• %s%s\n", prefix, a.Title)
	fmt.Fprintf(w, "  %s · %s · %s · %s confidence\n", a.Source, a.TimestampDisplay, a.ReadTime, a.Confidence)
	fmt.Fprintf(w, "  %s\n", a.Summary)
	fmt.Fprintf(w, "  %s\n", a.SourceURL)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
