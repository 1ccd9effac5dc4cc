package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/newsdesk"
	"github.com/fwojciec/newsdesk/pipeline"
)

// Processor runs the article pipeline. It is implemented by
// *pipeline.Pipeline.
type Processor interface {
	ProcessCategory(ctx context.Context, category string) (*pipeline.BatchResult, error)
	ProcessURL(ctx context.Context, category, url string) (*newsdesk.ProcessedArticle, error)
}

var _ Processor = (*pipeline.Pipeline)(nil)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    *Config
	Processor Processor
	Fetcher   newsdesk.Fetcher
	Extractor newsdesk.Extractor
	Search    newsdesk.SearchService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   string `name:"config" short:"c" env:"NEWSDESK_CONFIG" help:"Path to YAML config file"`
	LogLevel string `name:"log-level" env:"NEWSDESK_LOG_LEVEL" help:"Log level (debug|info|warn|error)"`

	Digest    DigestCmd    `cmd:"" help:"Fetch, summarize and print the latest articles"`
	Search    SearchCmd    `cmd:"" help:"Ingest categories and search the articles"`
	Extract   ExtractCmd   `cmd:"" help:"Fetch a page and print the extracted content"`
	Summarize SummarizeCmd `cmd:"" help:"Process a single article URL"`
	Watch     WatchCmd     `cmd:"" help:"Ingest categories on a schedule"`
}

// DigestCmd is the "digest" subcommand.
type DigestCmd struct {
	Categories []string `arg:"" optional:"" help:"Categories to ingest (default: all configured)"`
	JSON       bool     `help:"Print articles as JSON"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query      string   `arg:"" help:"Search query"`
	Limit      int      `short:"n" default:"10" help:"Maximum number of results"`
	Categories []string `name:"category" help:"Categories to ingest before searching (repeatable)"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL string `arg:"" help:"Article URL"`
}

// SummarizeCmd is the "summarize" subcommand.
type SummarizeCmd struct {
	URL      string `arg:"" help:"Article URL"`
	Category string `default:"general" help:"Category to file the article under"`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	Schedule   string   `default:"*/15 * * * *" help:"Cron schedule for ingest runs"`
	Categories []string `name:"category" help:"Categories to ingest (repeatable, default: all configured)"`
}

// categoriesOrAll returns requested, or every configured category.
func categoriesOrAll(requested []string, cfg *Config) []string {
	if len(requested) > 0 {
		return requested
	}
	if cfg == nil {
		return nil
	}
	return cfg.CategoryNames()
}
