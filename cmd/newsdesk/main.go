package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newsdesk"
	"github.com/fwojciec/newsdesk/bloom"
	"github.com/fwojciec/newsdesk/bluemonday"
	"github.com/fwojciec/newsdesk/gemini"
	"github.com/fwojciec/newsdesk/goquery"
	ndhttp "github.com/fwojciec/newsdesk/http"
	"github.com/fwojciec/newsdesk/memory"
	"github.com/fwojciec/newsdesk/openai"
	"github.com/fwojciec/newsdesk/opengraph"
	"github.com/fwojciec/newsdesk/pipeline"
	"github.com/fwojciec/newsdesk/readability"
	"github.com/fwojciec/newsdesk/rod"
	ndslog "github.com/fwojciec/newsdesk/slog"
	"github.com/fwojciec/newsdesk/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Overrides for end-to-end testing. Nil fields are built from config.
	Source    newsdesk.ArticleSource
	Fetcher   newsdesk.Fetcher
	Completer newsdesk.Completer

	// Getenv reads API keys. Defaults to os.Getenv.
	Getenv func(string) string

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Getenv: os.Getenv}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	return first
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("newsdesk"),
		kong.Description("Fetch, extract, summarize and search news articles"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'newsdesk --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return err
	}

	cfg, err := LoadConfig(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", configMessage(err))
		return err
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	level, err := ParseLogLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", newsdesk.ErrorMessage(err))
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger
	deps.Config = cfg

	cmd := strings.Fields(kongCtx.Command())[0]
	if err := m.wire(ctx, cmd, cfg, deps, logger); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", configMessage(err))
		return err
	}
	defer m.Close()

	return kongCtx.Run(deps)
}

// wire builds the services cmd needs.
func (m *Main) wire(ctx context.Context, cmd string, cfg *Config, deps *Dependencies, logger *slog.Logger) error {
	fetcher, err := m.fetcher(cfg, logger)
	if err != nil {
		return err
	}
	extractor := m.extractor(cfg, logger)
	deps.Fetcher = fetcher
	deps.Extractor = extractor
	if cmd == "extract" {
		return nil
	}

	completer, err := m.completer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	summarizer := pipeline.NewSummarizer(completer)
	summarizer.Timeout = cfg.Summarizer.Timeout
	summarizer.MaxTokens = cfg.Summarizer.MaxTokens
	summarizer.Temperature = *cfg.Summarizer.Temperature
	summarizer.MaxContentLength = cfg.Extract.MaxLength

	source := m.Source
	if source == nil {
		source = ndhttp.NewFeedSource(cfg.Categories,
			ndhttp.WithMaxItems(cfg.Fetch.MaxItems),
			ndhttp.WithFeedTimeout(cfg.Fetch.Timeout),
		)
	}

	corpus := memory.NewCorpus(cfg.Corpus.Capacity)
	p := &pipeline.Pipeline{
		Source:           ndslog.NewLoggingArticleSource(source, logger),
		Fetcher:          fetcher,
		Extractor:        extractor,
		Previewer:        opengraph.NewPreviewer(),
		Sanitizer:        bluemonday.NewSanitizer(),
		Summarizer:       ndslog.NewLoggingSummarizer(summarizer, logger),
		Corpus:           corpus,
		Cache:            memory.NewScrapeCache(cfg.Cache.Size, cfg.Cache.TTL),
		Limiter:          pipeline.NewIntervalLimiter(cfg.Fetch.Interval),
		Concurrency:      cfg.Fetch.Concurrency,
		FetchTimeout:     cfg.Fetch.Timeout,
		RetryDelays:      cfg.Fetch.RetryDelays,
		MaxContentLength: cfg.Extract.MaxLength,
		Logger:           logger,
	}
	if cmd == "watch" {
		p.Seen = bloom.NewFilter(bloom.DefaultExpectedURLs, bloom.DefaultFalsePositiveRate)
	}

	deps.Processor = p
	deps.Search = memory.NewSearchService(corpus)
	return nil
}

func (m *Main) fetcher(cfg *Config, logger *slog.Logger) (newsdesk.Fetcher, error) {
	if m.Fetcher != nil {
		return ndslog.NewLoggingFetcher(m.Fetcher, logger), nil
	}

	var fetcher newsdesk.Fetcher
	if cfg.Fetch.Browser {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cfg.Fetch.Timeout))
		if err != nil {
			return nil, newsdesk.Errorf(newsdesk.EUNAVAILABLE, "failed to start browser (Chrome or Chromium must be installed): %v", err)
		}
		fetcher = f
	} else {
		opts := []ndhttp.Option{ndhttp.WithTimeout(cfg.Fetch.Timeout)}
		if cfg.Fetch.UserAgent != "" {
			opts = append(opts, ndhttp.WithUserAgent(cfg.Fetch.UserAgent))
		}
		fetcher = ndhttp.NewFetcher(opts...)
	}
	m.closers = append(m.closers, fetcher)
	return ndslog.NewLoggingFetcher(fetcher, logger), nil
}

func (m *Main) extractor(cfg *Config, logger *slog.Logger) newsdesk.Extractor {
	opts := []goquery.Option{goquery.WithMinContentLength(cfg.Extract.MinLength)}
	switch cfg.Extract.Fallback {
	case FallbackReadability:
		opts = append(opts, goquery.WithFallback(readability.NewExtractor()))
	case FallbackTrafilatura:
		opts = append(opts, goquery.WithFallback(trafilatura.NewExtractor()))
	}
	return ndslog.NewLoggingExtractor(goquery.NewExtractor(opts...), logger)
}

// completer returns the configured provider, or nil when summaries should
// always use the fallback. A missing API key downgrades to the fallback.
func (m *Main) completer(ctx context.Context, cfg *Config, logger *slog.Logger) (newsdesk.Completer, error) {
	if m.Completer != nil {
		return ndslog.NewLoggingCompleter(m.Completer, logger), nil
	}

	getenv := m.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	var completer newsdesk.Completer
	switch cfg.Summarizer.Provider {
	case ProviderGemini:
		apiKey := getenv("GEMINI_API_KEY")
		if apiKey == "" {
			logger.Warn("GEMINI_API_KEY not set, using fallback summaries. Get a key at https://aistudio.google.com/apikey")
			return nil, nil
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		completer = gemini.NewCompleter(client, cfg.Summarizer.Model)
	case ProviderOpenAI:
		apiKey := getenv("OPENAI_API_KEY")
		if apiKey == "" && cfg.Summarizer.BaseURL == "" {
			logger.Warn("OPENAI_API_KEY not set, using fallback summaries")
			return nil, nil
		}
		completer = openai.NewCompleter(openai.NewClient(apiKey, cfg.Summarizer.BaseURL), cfg.Summarizer.Model)
	default:
		return nil, nil
	}
	return ndslog.NewLoggingCompleter(completer, logger), nil
}

// configMessage renders setup errors, which are often infrastructure
// errors the user still needs to see.
func configMessage(err error) string {
	if newsdesk.ErrorCode(err) == newsdesk.EINTERNAL {
		return err.Error()
	}
	return newsdesk.ErrorMessage(err)
}
