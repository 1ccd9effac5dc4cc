package main

import (
	"fmt"

	"github.com/fwojciec/newsdesk"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	src := &newsdesk.SourceArticle{URL: c.URL}
	if err := src.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsdesk.ErrorMessage(err))
		return err
	}

	fetched, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsdesk.ErrorMessage(err))
		return err
	}

	result, err := deps.Extractor.Extract(fetched.HTML)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsdesk.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "URL:       %s\n", fetched.URL)
	fmt.Fprintf(deps.Stdout, "Strategy:  %s\n", result.Strategy)
	fmt.Fprintf(deps.Stdout, "Title:     %s\n", orDash(result.Title))
	fmt.Fprintf(deps.Stdout, "Author:    %s\n", orDash(result.Author))
	fmt.Fprintf(deps.Stdout, "Published: %s\n", orDash(result.PublishDate))
	fmt.Fprintf(deps.Stdout, "Length:    %d characters\n", newsdesk.CharCount(result.Content))
	fmt.Fprintln(deps.Stdout)

	if !result.OK() {
		fmt.Fprintln(deps.Stderr, "warning: no extraction strategy found enough content")
		return nil
	}
	fmt.Fprintln(deps.Stdout, result.Content)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
