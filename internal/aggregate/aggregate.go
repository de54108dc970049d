package aggregate

import (
	"context"
	"fmt"
	"sort"

	"github.com/petergeorgioutech/techpulse-news/internal/newsapi"
)

const (
	queryPageSize = 4
	categoryLimit = 6
)

// Searcher is the slice of the news client the aggregator needs.
type Searcher interface {
	Search(ctx context.Context, query string, pageSize int) ([]newsapi.Article, error)
}

// Result carries a category's merged articles plus any absorbed per-query
// failures. A failed query contributes zero articles and one error; it
// never aborts the category.
type Result struct {
	Articles []newsapi.Article
	Errors   []error
}

// Collect fetches every query of a category in order, merges the results
// with URL deduplication, sorts newest-first, and caps the list at six.
//
// Articles without a URL bypass the seen-set: they are always appended
// and never deduplicated against each other. Sorting compares the raw
// publishedAt strings (ISO-8601 order equals chronological order) and is
// stable, so equal timestamps keep their append order. Missing timestamps
// sort last.
func Collect(ctx context.Context, s Searcher, cat Category) Result {
	var result Result
	seen := make(map[string]bool)

	for _, query := range cat.Queries {
		articles, err := s.Search(ctx, query, queryPageSize)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("fetching news for %q: %w", query, err))
			continue
		}
		for _, a := range articles {
			if a.URL != "" {
				if seen[a.URL] {
					continue
				}
				seen[a.URL] = true
			}
			result.Articles = append(result.Articles, a)
		}
	}

	sort.SliceStable(result.Articles, func(i, j int) bool {
		return result.Articles[i].PublishedAt > result.Articles[j].PublishedAt
	})
	if len(result.Articles) > categoryLimit {
		result.Articles = result.Articles[:categoryLimit]
	}
	return result
}
