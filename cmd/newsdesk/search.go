package main

import (
	"fmt"

	"github.com/fwojciec/newsdesk"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	if c.Query == "" {
		err := newsdesk.Errorf(newsdesk.EINVALID, "query required")
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsdesk.ErrorMessage(err))
		return err
	}

	for _, category := range categoriesOrAll(c.Categories, deps.Config) {
		batch, err := deps.Processor.ProcessCategory(deps.Ctx, category)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newsdesk.ErrorMessage(err))
			return err
		}
		if batch.SourceErr != nil {
			fmt.Fprintf(deps.Stderr, "warning: %s: %s\n", category, newsdesk.ErrorMessage(batch.SourceErr))
		}
	}

	resp, err := deps.Search.Search(deps.Ctx, c.Query, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsdesk.ErrorMessage(err))
		return err
	}
	return writeJSON(deps.Stdout, resp)
}
