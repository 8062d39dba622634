package commands

import (
	"context"
	"testing"

	"concepdag/internal/domain"
)

func TestFuzzyScore(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		query     string
		wantScore int
		wantMin   int // use this for relative comparisons
	}{
		{
			name:      "exact match",
			target:    "Groups",
			query:     "Groups",
			wantScore: 150, // 100 for contains + 50 for prefix
		},
		{
			name:      "prefix match",
			target:    "Groups and Rings",
			query:     "Groups",
			wantScore: 150,
		},
		{
			name:      "substring match",
			target:    "Finite Groups",
			query:     "Groups",
			wantScore: 100, // contains only
		},
		{
			name:    "fuzzy match all chars at start",
			target:  "Groups",
			query:   "grp",
			wantMin: 15,
		},
		{
			name:      "no match",
			target:    "Groups",
			query:     "xyz",
			wantScore: 0,
		},
		{
			name:      "empty query",
			target:    "Groups",
			query:     "",
			wantScore: 0,
		},
		{
			name:    "case insensitive",
			target:  "GROUPS",
			query:   "groups",
			wantMin: 100,
		},
		{
			name:    "UCI match",
			target:  "/math/algebra/groups",
			query:   "algebra/gr",
			wantMin: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := FuzzyScore(tt.target, tt.query)

			if tt.wantScore > 0 {
				if score != tt.wantScore {
					t.Errorf("expected score %d, got %d", tt.wantScore, score)
				}
			} else if tt.wantMin > 0 {
				if score < tt.wantMin {
					t.Errorf("expected score >= %d, got %d", tt.wantMin, score)
				}
			} else {
				if score != 0 {
					t.Errorf("expected score 0, got %d", score)
				}
			}
		})
	}
}

func TestFuzzyScore_Ordering(t *testing.T) {
	query := "groups"

	exactScore := FuzzyScore("groups", query)
	prefixScore := FuzzyScore("groups and rings", query)
	containsScore := FuzzyScore("finite groups", query)
	fuzzyScore := FuzzyScore("g-r-o-u-p-s", query)

	if exactScore < prefixScore {
		t.Errorf("exact match should score >= prefix: %d < %d", exactScore, prefixScore)
	}
	if prefixScore < containsScore {
		t.Errorf("prefix match should score >= contains: %d < %d", prefixScore, containsScore)
	}
	if containsScore <= fuzzyScore {
		t.Errorf("contains match should score higher than fuzzy: %d <= %d", containsScore, fuzzyScore)
	}
}

func searchRecord(pairs ...any) *domain.SearchRecord {
	rec := domain.NewSearchRecord()
	for i := 0; i+1 < len(pairs); i += 2 {
		rec.Set(pairs[i].(string), pairs[i+1])
	}
	return rec
}

func TestFuzzySort(t *testing.T) {
	corpus := &domain.SearchCorpus{
		Fields: []string{"search"},
		Corpus: []*domain.SearchRecord{
			searchRecord("title", "Random", "uci", "/misc/random", "url", "nodes/misc/random.html", "search", "Random $ nothing"),
			searchRecord("title", "Groups", "uci", "/math/groups", "url", "nodes/math/groups.html", "search", "Groups $ symmetry"),
			searchRecord("title", "Cooking", "uci", "/life/cooking", "url", "nodes/life/cooking.html", "search", "Cooking $ recipes"),
			searchRecord("title", "Rings", "uci", "/math/rings", "url", "nodes/math/rings.html", "search", "Rings $ groups with a second operation"),
		},
	}

	sorted := FuzzySort(corpus, "groups")
	if len(sorted) != 2 {
		t.Fatalf("expected 2 results, got %d: %+v", len(sorted), sorted)
	}
	if sorted[0].UCI != "/math/groups" {
		t.Errorf("expected title match first, got %s", sorted[0].UCI)
	}
	if sorted[0].URL != "nodes/math/groups.html" || sorted[0].Title != "Groups" {
		t.Errorf("unexpected result fields: %+v", sorted[0])
	}

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Score > sorted[i-1].Score {
			t.Errorf("results not sorted by score: %d > %d at index %d",
				sorted[i].Score, sorted[i-1].Score, i)
		}
	}
}

func TestSearchCommand_ShortQuery(t *testing.T) {
	corpus := &domain.SearchCorpus{
		Fields: []string{"search"},
		Corpus: []*domain.SearchRecord{searchRecord("title", "Groups", "uci", "/g")},
	}
	results, err := NewSearchCommand(corpus, "g").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results != nil {
		t.Errorf("expected no results for a one-character query, got %v", results)
	}
}
