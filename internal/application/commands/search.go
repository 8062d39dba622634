package commands

import (
	"context"
	"sort"
	"strings"

	"concepdag/internal/application"
	"concepdag/internal/domain"
)

// SearchCommand ranks the search corpus with fuzzy matching
type SearchCommand struct {
	corpus *domain.SearchCorpus
	Query  string
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(corpus *domain.SearchCorpus, query string) *SearchCommand {
	return &SearchCommand{
		corpus: corpus,
		Query:  query,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchCommand) Execute(ctx context.Context) ([]domain.SearchResult, error) {
	if len(c.Query) < 2 || c.corpus == nil {
		return nil, nil
	}
	return FuzzySort(c.corpus, c.Query), nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Check for exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		// Bonus if it starts with query
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && (target[i-1] == ' ' || target[i-1] == '/' || target[i-1] == '-' || target[i-1] == '_') {
				score += 10 // after separator
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

// FuzzySort scores every corpus record against the query on its UCI, title
// and configured search fields, and returns the matches by relevance.
func FuzzySort(corpus *domain.SearchCorpus, query string) []domain.SearchResult {
	scored := make([]domain.SearchResult, 0)

	for _, rec := range corpus.Corpus {
		uci := field(rec, "uci")
		title := field(rec, "title")

		best := max(FuzzyScore(uci, query), FuzzyScore(title, query))
		for _, f := range corpus.Fields {
			// Blob matches rank below direct UCI/title hits
			best = max(best, FuzzyScore(field(rec, f), query)/2)
		}

		if best > 0 {
			scored = append(scored, domain.SearchResult{
				UCI:   uci,
				Title: title,
				URL:   field(rec, "url"),
				Score: best,
			})
		}
	}

	// Sort by score descending
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

func field(rec *domain.SearchRecord, key string) string {
	v, ok := rec.Get(key)
	if !ok {
		return ""
	}
	return application.Stringify(v)
}
