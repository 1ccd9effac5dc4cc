package memory_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/newsdesk"
	"github.com/fwojciec/newsdesk/memory"
	"github.com/stretchr/testify/assert"
)

func article(id, title string) *newsdesk.ProcessedArticle {
	return &newsdesk.ProcessedArticle{
		ID:        id,
		Title:     title,
		SourceURL: "https://news.example.com/" + id,
	}
}

func ids(articles []*newsdesk.ProcessedArticle) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.ID
	}
	return out
}

func TestCorpus_AppendArticles(t *testing.T) {
	t.Parallel()

	t.Run("inserts articles in order", func(t *testing.T) {
		t.Parallel()

		c := memory.NewCorpus(10)
		added := c.AppendArticles([]*newsdesk.ProcessedArticle{article("a", "A"), article("b", "B")})

		assert.Equal(t, 2, added)
		assert.Equal(t, []string{"a", "b"}, ids(c.Snapshot()))
	})

	t.Run("ignores duplicate ids", func(t *testing.T) {
		t.Parallel()

		c := memory.NewCorpus(10)
		c.AppendArticles([]*newsdesk.ProcessedArticle{article("a", "A")})

		added := c.AppendArticles([]*newsdesk.ProcessedArticle{article("a", "A again"), article("a", "A once more")})

		assert.Equal(t, 0, added)
		assert.Equal(t, 1, c.Len())
		assert.Equal(t, "A", c.Snapshot()[0].Title)
	})

	t.Run("ignores duplicates within one batch", func(t *testing.T) {
		t.Parallel()

		c := memory.NewCorpus(10)
		added := c.AppendArticles([]*newsdesk.ProcessedArticle{article("a", "A"), article("a", "A")})

		assert.Equal(t, 1, added)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("skips nil and id-less articles", func(t *testing.T) {
		t.Parallel()

		c := memory.NewCorpus(10)
		added := c.AppendArticles([]*newsdesk.ProcessedArticle{nil, article("", "no id")})

		assert.Equal(t, 0, added)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("evicts oldest beyond capacity", func(t *testing.T) {
		t.Parallel()

		c := memory.NewCorpus(3)
		c.AppendArticles([]*newsdesk.ProcessedArticle{article("a", "A"), article("b", "B")})
		c.AppendArticles([]*newsdesk.ProcessedArticle{article("c", "C"), article("d", "D"), article("e", "E")})

		assert.Equal(t, []string{"c", "d", "e"}, ids(c.Snapshot()))
		assert.False(t, c.Contains("a"))
		assert.True(t, c.Contains("e"))
	})

	t.Run("counts only articles that survive eviction", func(t *testing.T) {
		t.Parallel()

		c := memory.NewCorpus(3)
		c.AppendArticles([]*newsdesk.ProcessedArticle{article("a", "A")})

		added := c.AppendArticles([]*newsdesk.ProcessedArticle{
			article("b", "B"), article("c", "C"), article("d", "D"), article("e", "E"), article("f", "F"),
		})

		assert.Equal(t, 3, added)
		assert.Equal(t, []string{"d", "e", "f"}, ids(c.Snapshot()))
	})

	t.Run("accepts evicted id again", func(t *testing.T) {
		t.Parallel()

		c := memory.NewCorpus(1)
		c.AppendArticles([]*newsdesk.ProcessedArticle{article("a", "A")})
		c.AppendArticles([]*newsdesk.ProcessedArticle{article("b", "B")})

		added := c.AppendArticles([]*newsdesk.ProcessedArticle{article("a", "A")})

		assert.Equal(t, 1, added)
		assert.Equal(t, []string{"a"}, ids(c.Snapshot()))
	})

	t.Run("defaults capacity", func(t *testing.T) {
		t.Parallel()

		c := memory.NewCorpus(0)
		batch := make([]*newsdesk.ProcessedArticle, newsdesk.DefaultCorpusCapacity+5)
		for i := range batch {
			batch[i] = article(fmt.Sprintf("id-%d", i), "T")
		}
		c.AppendArticles(batch)

		assert.Equal(t, newsdesk.DefaultCorpusCapacity, c.Len())
		assert.Equal(t, "id-5", c.Snapshot()[0].ID)
	})
}

func TestCorpus_Snapshot(t *testing.T) {
	t.Parallel()

	t.Run("returns a copy", func(t *testing.T) {
		t.Parallel()

		c := memory.NewCorpus(10)
		c.AppendArticles([]*newsdesk.ProcessedArticle{article("a", "A")})

		snap := c.Snapshot()
		snap[0] = article("z", "Z")

		assert.Equal(t, "a", c.Snapshot()[0].ID)
	})

	t.Run("concurrent appends and reads stay consistent", func(t *testing.T) {
		t.Parallel()

		c := memory.NewCorpus(50)
		var wg sync.WaitGroup
		for w := 0; w < 8; w++ {
			wg.Add(2)
			go func(w int) {
				defer wg.Done()
				for i := 0; i < 20; i++ {
					c.AppendArticles([]*newsdesk.ProcessedArticle{article(fmt.Sprintf("%d-%d", w, i), "T")})
				}
			}(w)
			go func() {
				defer wg.Done()
				for i := 0; i < 20; i++ {
					snap := c.Snapshot()
					seen := make(map[string]bool, len(snap))
					for _, a := range snap {
						assert.NotNil(t, a)
						assert.False(t, seen[a.ID], "duplicate id in snapshot")
						seen[a.ID] = true
					}
					assert.LessOrEqual(t, len(snap), 50)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 50, c.Len())
	})
}
