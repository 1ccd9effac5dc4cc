package memory_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/newsdesk"
	"github.com/fwojciec/newsdesk/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank(t *testing.T) {
	t.Parallel()

	t.Run("ranks title match above summary match", func(t *testing.T) {
		t.Parallel()

		council := &newsdesk.ProcessedArticle{
			ID:       "council",
			Title:    "Local Council Elections Scheduled for March",
			Summary:  "Residents will vote on three open seats.",
			Category: "local",
		}
		politics := &newsdesk.ProcessedArticle{
			ID:       "politics",
			Title:    "Parliament Debates Budget",
			Summary:  "Lawmakers argued over the timing of the next election.",
			Category: "Politics",
		}

		ranked := memory.Rank("election", []*newsdesk.ProcessedArticle{politics, council}, 10)

		require.Len(t, ranked, 2)
		assert.Equal(t, "council", ranked[0].Article.ID)
		assert.Equal(t, 3, ranked[0].Score)
		assert.Equal(t, "politics", ranked[1].Article.ID)
		assert.Equal(t, 2, ranked[1].Score)
	})

	t.Run("counts a term in every field it appears in", func(t *testing.T) {
		t.Parallel()

		a := &newsdesk.ProcessedArticle{
			ID:       "a",
			Title:    "Tech stocks rally",
			Summary:  "Tech shares gained.",
			Category: "tech",
		}

		ranked := memory.Rank("TECH", []*newsdesk.ProcessedArticle{a}, 10)

		require.Len(t, ranked, 1)
		assert.Equal(t, 6, ranked[0].Score)
	})

	t.Run("sums multiple terms", func(t *testing.T) {
		t.Parallel()

		a := &newsdesk.ProcessedArticle{ID: "a", Title: "Storm hits coast", Summary: "Heavy rain expected."}

		ranked := memory.Rank("storm rain", []*newsdesk.ProcessedArticle{a}, 10)

		require.Len(t, ranked, 1)
		assert.Equal(t, 5, ranked[0].Score)
	})

	t.Run("excludes zero scores", func(t *testing.T) {
		t.Parallel()

		a := &newsdesk.ProcessedArticle{ID: "a", Title: "Markets close higher"}

		assert.Empty(t, memory.Rank("volcano", []*newsdesk.ProcessedArticle{a}, 10))
	})

	t.Run("returns nothing for blank query", func(t *testing.T) {
		t.Parallel()

		a := &newsdesk.ProcessedArticle{ID: "a", Title: "Markets close higher"}

		assert.Empty(t, memory.Rank("   ", []*newsdesk.ProcessedArticle{a}, 10))
	})

	t.Run("keeps insertion order on ties", func(t *testing.T) {
		t.Parallel()

		var articles []*newsdesk.ProcessedArticle
		for i := 0; i < 6; i++ {
			articles = append(articles, &newsdesk.ProcessedArticle{
				ID:    fmt.Sprintf("a%d", i),
				Title: "Weather update",
			})
		}

		for run := 0; run < 3; run++ {
			ranked := memory.Rank("weather", articles, 10)
			require.Len(t, ranked, 6)
			for i, r := range ranked {
				assert.Equal(t, fmt.Sprintf("a%d", i), r.Article.ID)
			}
		}
	})

	t.Run("caps results", func(t *testing.T) {
		t.Parallel()

		var articles []*newsdesk.ProcessedArticle
		for i := 0; i < 5; i++ {
			articles = append(articles, &newsdesk.ProcessedArticle{ID: fmt.Sprintf("a%d", i), Title: "Sports roundup"})
		}

		assert.Len(t, memory.Rank("sports", articles, 2), 2)
		assert.Len(t, memory.Rank("sports", articles, 0), 5)
	})
}

func TestScore(t *testing.T) {
	t.Parallel()

	t.Run("is monotonic in title occurrences", func(t *testing.T) {
		t.Parallel()

		terms := []string{"vote"}
		base := &newsdesk.ProcessedArticle{Title: "Turnout record", Summary: "A vote was held."}
		more := &newsdesk.ProcessedArticle{Title: "Vote turnout record", Summary: "A vote was held."}
		most := &newsdesk.ProcessedArticle{Title: "Vote after vote", Summary: "A vote was held."}

		assert.LessOrEqual(t, memory.Score(terms, base), memory.Score(terms, more))
		assert.LessOrEqual(t, memory.Score(terms, more), memory.Score(terms, most))
	})
}

func TestSearchService_Search(t *testing.T) {
	t.Parallel()

	t.Run("implements newsdesk.SearchService interface", func(t *testing.T) {
		t.Parallel()
		var _ newsdesk.SearchService = memory.NewSearchService(memory.NewCorpus(1))
	})

	t.Run("returns ranked response", func(t *testing.T) {
		t.Parallel()

		c := memory.NewCorpus(10)
		c.AppendArticles([]*newsdesk.ProcessedArticle{
			{ID: "a", Title: "Budget talks stall", Category: "politics"},
			{ID: "b", Title: "Budget passes", Summary: "The budget passed late.", Category: "politics"},
			{ID: "c", Title: "Cup final tonight", Category: "sports"},
		})

		resp, err := memory.NewSearchService(c).Search(context.Background(), "budget", 0)

		require.NoError(t, err)
		assert.Equal(t, "budget", resp.Query)
		assert.Equal(t, 2, resp.ResultsFound)
		assert.Equal(t, []string{"b", "a"}, ids(resp.Articles))
	})

	t.Run("applies default limit", func(t *testing.T) {
		t.Parallel()

		c := memory.NewCorpus(100)
		var batch []*newsdesk.ProcessedArticle
		for i := 0; i < memory.DefaultMaxResults+3; i++ {
			batch = append(batch, &newsdesk.ProcessedArticle{ID: fmt.Sprintf("a%d", i), Title: "Rain"})
		}
		c.AppendArticles(batch)

		resp, err := memory.NewSearchService(c).Search(context.Background(), "rain", -1)

		require.NoError(t, err)
		assert.Equal(t, memory.DefaultMaxResults, resp.ResultsFound)
	})

	t.Run("returns empty result for no match", func(t *testing.T) {
		t.Parallel()

		resp, err := memory.NewSearchService(memory.NewCorpus(1)).Search(context.Background(), "anything", 5)

		require.NoError(t, err)
		assert.Equal(t, 0, resp.ResultsFound)
		assert.Empty(t, resp.Articles)
	})

	t.Run("returns context error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := memory.NewSearchService(memory.NewCorpus(1)).Search(ctx, "x", 5)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
