package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/fwojciec/newsdesk"
)

// DefaultMaxResults is used when a search does not specify a limit.
const DefaultMaxResults = 20

// Field weights for relevance scoring.
const (
	titleWeight    = 3
	summaryWeight  = 2
	categoryWeight = 1
)

// Ensure SearchService implements newsdesk.SearchService at compile time.
var _ newsdesk.SearchService = (*SearchService)(nil)

// SearchService ranks a corpus snapshot against free-text queries.
type SearchService struct {
	corpus newsdesk.Corpus
}

// NewSearchService creates a SearchService over corpus.
func NewSearchService(corpus newsdesk.Corpus) *SearchService {
	return &SearchService{corpus: corpus}
}

// Search returns the articles matching query, best first.
func (s *SearchService) Search(ctx context.Context, query string, maxResults int) (*newsdesk.SearchResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	ranked := Rank(query, s.corpus.Snapshot(), maxResults)
	articles := make([]*newsdesk.ProcessedArticle, len(ranked))
	for i, r := range ranked {
		articles[i] = r.Article
	}
	return &newsdesk.SearchResponse{
		Query:        query,
		ResultsFound: len(articles),
		Articles:     articles,
	}, nil
}

// Rank scores articles against query and returns those with a positive
// score, highest first. Equal scores keep their order in articles.
// A maxResults of zero or less returns every match.
func Rank(query string, articles []*newsdesk.ProcessedArticle, maxResults int) []newsdesk.SearchScore {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil
	}

	var scored []newsdesk.SearchScore
	for _, a := range articles {
		if score := Score(terms, a); score > 0 {
			scored = append(scored, newsdesk.SearchScore{Article: a, Score: score})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if maxResults > 0 && len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	return scored
}

// Score weighs each lowercase term by the fields it occurs in: three
// points for the title, two for the summary and one for the category.
func Score(terms []string, a *newsdesk.ProcessedArticle) int {
	title := strings.ToLower(a.Title)
	summary := strings.ToLower(a.Summary)
	category := strings.ToLower(a.Category)

	var score int
	for _, term := range terms {
		if strings.Contains(title, term) {
			score += titleWeight
		}
		if strings.Contains(summary, term) {
			score += summaryWeight
		}
		if strings.Contains(category, term) {
			score += categoryWeight
		}
	}
	return score
}
