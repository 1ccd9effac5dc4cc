package main

import (
	"fmt"

	"github.com/fwojciec/newsdesk"
)

// Run executes the summarize command.
func (c *SummarizeCmd) Run(deps *Dependencies) error {
	article, err := deps.Processor.ProcessURL(deps.Ctx, c.Category, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsdesk.ErrorMessage(err))
		return err
	}
	return writeJSON(deps.Stdout, article)
}
