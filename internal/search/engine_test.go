package search

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/absolutekim/FFYYPP/internal/models"
	"github.com/absolutekim/FFYYPP/internal/nlp"
)

func newTestEngine() *Engine {
	e := NewEngine(nlp.NewProcessor(nil))
	e.rng = rand.New(rand.NewSource(1))
	return e
}

func parisCorpus() []*models.Destination {
	return []*models.Destination{
		{ID: 1, Name: "Louvre Museum", Description: "world famous art museum", City: "Paris", Country: "France", Subcategories: []string{"Museums"}},
		{ID: 2, Name: "Musee d'Orsay", Description: "impressionist museum", City: "Paris", Country: "France", Subcategories: []string{"Museums"}},
		{ID: 3, Name: "Bondi Beach", Description: "surfing beach", City: "Sydney", Country: "Australia", Subcategories: []string{"Beaches"}},
		{ID: 4, Name: "Eiffel Tower", Description: "iron lattice tower", City: "Paris", Country: "France", Subcategories: []string{"Sights & Landmarks"}},
		{ID: 5, Name: "Mount Fuji", Description: "iconic volcano", Country: "Japan", Subcategories: []string{"Nature & Parks"}},
		{ID: 6, Name: "Prado Museum", Description: "spanish art museum", City: "Madrid", Country: "Spain", Subcategories: []string{"Museums"}},
	}
}

func TestSearchRanksRelevantFirst(t *testing.T) {
	e := newTestEngine()
	corpus := parisCorpus()

	results, degraded := e.Search(context.Background(), "paris museum", corpus, 3)
	if degraded {
		t.Fatal("search should not be degraded")
	}
	if len(results) == 0 || len(results) > 3 {
		t.Fatalf("got %d results, want 1-3", len(results))
	}

	if results[0].Destination.ID != 1 {
		t.Errorf("first result = %q, want Louvre Museum", results[0].Destination.Name)
	}

	seen := make(map[int]bool)
	for i, sd := range results {
		if seen[sd.Destination.ID] {
			t.Errorf("duplicate destination %d in results", sd.Destination.ID)
		}
		seen[sd.Destination.ID] = true
		if sd.Destination.ID == 3 {
			t.Error("unrelated beach ranked in museum search")
		}
		if i > 0 && results[i-1].Score < sd.Score {
			t.Errorf("results not sorted: %v before %v", results[i-1].Score, sd.Score)
		}
	}
}

// Three-word queries skip the short-query boosts; ranking rests on
// similarity and the name-intersection boost alone.
func TestSearchThreeWordQuery(t *testing.T) {
	e := newTestEngine()
	corpus := []*models.Destination{
		{ID: 1, Name: "Paris Museum", City: "Paris", Country: "France"},
		{ID: 2, Name: "Beach Resort", City: "Cancun", Country: "Mexico"},
	}

	results, degraded := e.Search(context.Background(), "museum in paris", corpus, 10)
	if degraded {
		t.Fatal("search should not be degraded")
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Destination.ID != 1 {
		t.Errorf("first result = %q, want Paris Museum", results[0].Destination.Name)
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("scores %v and %v not strictly ordered", results[0].Score, results[1].Score)
	}
	if results[1].Score != 0 {
		t.Errorf("no-overlap score = %v, want 0", results[1].Score)
	}
}

func TestSearchCachesResults(t *testing.T) {
	e := newTestEngine()
	corpus := parisCorpus()
	ctx := context.Background()

	first, _ := e.Search(ctx, "paris museum", corpus, 3)
	if e.Cache().Len() != 1 {
		t.Fatalf("cache Len = %d, want 1", e.Cache().Len())
	}

	second, _ := e.Search(ctx, "paris museum", corpus, 3)
	if len(first) != len(second) {
		t.Fatalf("cached result length differs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Destination.ID != second[i].Destination.ID {
			t.Errorf("cached result %d differs: %d vs %d",
				i, first[i].Destination.ID, second[i].Destination.ID)
		}
	}

	// Different limit is a different cache entry.
	e.Search(ctx, "paris museum", corpus, 5)
	if e.Cache().Len() != 2 {
		t.Errorf("cache Len = %d, want 2", e.Cache().Len())
	}
}

func TestSearchEmptyCorpus(t *testing.T) {
	e := newTestEngine()

	results, degraded := e.Search(context.Background(), "anything", nil, 10)
	if degraded {
		t.Error("empty corpus should not set the degraded flag")
	}
	if len(results) != 0 {
		t.Errorf("got %d results from empty corpus", len(results))
	}
}

func TestPreFilter(t *testing.T) {
	queryWords := map[string]bool{"museum": true}

	t.Run("discarded when too few candidates", func(t *testing.T) {
		corpus := make([]*models.Destination, 0, 60)
		for i := 0; i < 55; i++ {
			corpus = append(corpus, &models.Destination{ID: i, Name: fmt.Sprintf("Cafe %d", i)})
		}
		for i := 55; i < 60; i++ {
			corpus = append(corpus, &models.Destination{ID: i, Name: fmt.Sprintf("Museum %d", i)})
		}

		got := preFilter("museum", queryWords, corpus, 10)
		if len(got) != len(corpus) {
			t.Errorf("filter kept %d, want full corpus %d", len(got), len(corpus))
		}
	})

	t.Run("applied when enough candidates", func(t *testing.T) {
		corpus := make([]*models.Destination, 0, 60)
		for i := 0; i < 55; i++ {
			corpus = append(corpus, &models.Destination{ID: i, Name: fmt.Sprintf("Museum %d", i)})
		}
		for i := 55; i < 60; i++ {
			corpus = append(corpus, &models.Destination{ID: i, Name: fmt.Sprintf("Cafe %d", i)})
		}

		got := preFilter("museum", queryWords, corpus, 10)
		if len(got) != 55 {
			t.Errorf("filter kept %d, want 55", len(got))
		}
	})

	t.Run("empty query words keeps corpus", func(t *testing.T) {
		corpus := parisCorpus()
		got := preFilter("", map[string]bool{}, corpus, 10)
		if len(got) != len(corpus) {
			t.Errorf("filter kept %d, want %d", len(got), len(corpus))
		}
	})
}

func TestCompositeText(t *testing.T) {
	dest := &models.Destination{
		Name:          "Louvre Museum",
		Description:   "art collection",
		City:          "Paris",
		Country:       "France",
		Subcategories: []string{"a", "b", "c", "d", "e", "f", "g"},
		Subtypes:      []string{"x"},
	}
	text := compositeText(dest)

	if got := strings.Count(text, "Paris"); got != 3 {
		t.Errorf("city repeated %d times, want 3", got)
	}
	if got := strings.Count(text, "France"); got != 3 {
		t.Errorf("country repeated %d times, want 3", got)
	}
	if strings.Contains(text, " f") && strings.Contains(text, " g") {
		t.Error("more than five subcategories included")
	}
	if !strings.Contains(text, "x") {
		t.Error("subtypes missing from composite text")
	}
}
