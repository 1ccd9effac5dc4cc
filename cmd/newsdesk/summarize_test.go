package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fwojciec/newsdesk"
	main "github.com/fwojciec/newsdesk/cmd/newsdesk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the processed article", func(t *testing.T) {
		t.Parallel()

		var gotCategory, gotURL string
		proc := &processor{
			urlFn: func(category, url string) (*newsdesk.ProcessedArticle, error) {
				gotCategory, gotURL = category, url
				return testArticle("s1", "Rates Held Steady", category), nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Processor: proc,
		}

		err := (&main.SummarizeCmd{URL: "https://example.com/rates", Category: "business"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "business", gotCategory)
		assert.Equal(t, "https://example.com/rates", gotURL)
		var got newsdesk.ProcessedArticle
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, "Rates Held Steady", got.Title)
		assert.Equal(t, "business", got.Category)
	})

	t.Run("reports invalid input", func(t *testing.T) {
		t.Parallel()

		proc := &processor{
			urlFn: func(string, string) (*newsdesk.ProcessedArticle, error) {
				return nil, newsdesk.Errorf(newsdesk.EINVALID, "article URL required")
			},
		}
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Processor: proc,
		}

		err := (&main.SummarizeCmd{Category: "general"}).Run(deps)

		assert.Equal(t, newsdesk.EINVALID, newsdesk.ErrorCode(err))
		assert.Equal(t, "error: article URL required\n", stderr.String())
		assert.Empty(t, stdout.String())
	})
}
