package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newsdesk"
	main "github.com/fwojciec/newsdesk/cmd/newsdesk"
	"github.com/fwojciec/newsdesk/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commands = []string{"digest", "search", "extract", "summarize", "watch"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, &bytes.Buffer{}),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	for _, cmd := range commands {
		assert.Contains(t, stdout.String(), cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("help succeeds", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		for _, cmd := range commands {
			assert.Contains(t, stdout.String(), cmd)
		}
	})

	t.Run("no arguments shows help and fails", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), nil, stdout, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
		assert.Contains(t, stdout.String(), "digest")
	})

	t.Run("unknown log level fails", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), []string{"--log-level", "loud", "extract", "https://example.com"}, &bytes.Buffer{}, stderr)

		assert.Equal(t, newsdesk.EINVALID, newsdesk.ErrorCode(err))
		assert.Contains(t, stderr.String(), `unknown log level "loud"`)
	})

	t.Run("summarize runs the full pipeline", func(t *testing.T) {
		t.Parallel()

		body := strings.Repeat("The central bank held its benchmark rate steady on Wednesday. ", 8)
		html := `<html><head><title>Rates Held Steady</title>
<meta property="og:site_name" content="Example News"></head>
<body><nav>Home</nav><article><h1>Rates Held Steady</h1><p>` + body + `</p></article></body></html>`

		m := main.NewMain()
		m.Getenv = func(string) string { return "" }
		m.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*newsdesk.FetchResult, error) {
				return &newsdesk.FetchResult{URL: url, HTML: html, StatusCode: 200}, nil
			},
		}
		var prompt string
		m.Completer = &mock.Completer{
			CompleteFn: func(_ context.Context, req newsdesk.CompletionRequest) (string, error) {
				prompt = req.UserPrompt
				return `{"summary": "The central bank left rates unchanged."}`, nil
			},
		}

		stdout := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"--log-level", "error", "summarize", "https://www.example.com/rates", "--category", "business"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, prompt, "benchmark rate")

		var got newsdesk.ProcessedArticle
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, "The central bank left rates unchanged.", got.Summary)
		assert.Equal(t, newsdesk.SummaryAI, got.SummarySource)
		assert.Equal(t, newsdesk.ContentScraped, got.ContentSource)
		assert.Equal(t, newsdesk.ConfidenceHigh, got.Confidence)
		assert.Equal(t, "business", got.Category)
		assert.Equal(t, "Example News", got.Source)
	})

	t.Run("missing API key falls back to generated summaries", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Getenv = func(string) string { return "" }
		m.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*newsdesk.FetchResult, error) {
				return nil, &newsdesk.FetchError{Kind: newsdesk.FetchTimeout, URL: url}
			},
		}

		stdout := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"--log-level", "error", "summarize", "https://news.example.com/storm", "--category", "weather"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		var got newsdesk.ProcessedArticle
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, newsdesk.SummaryFallback, got.SummarySource)
		assert.Equal(t, newsdesk.ConfidenceLow, got.Confidence)
		assert.Equal(t, "news.example.com", got.Source)
	})
}
