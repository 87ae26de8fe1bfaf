package search

import (
	"math"
	"sync"
	"testing"

	"github.com/absolutekim/FFYYPP/internal/models"
)

func TestKeywordSearch(t *testing.T) {
	e := newTestEngine()
	corpus := []*models.Destination{
		{ID: 1, Name: "Green Valley", Description: "nature reserve", Country: "Ireland"},
		{ID: 2, Name: "City Gardens", Description: "a lovely park with gardens", Country: "Singapore"},
		{ID: 3, Name: "Steel Plaza", Description: "shopping complex", Country: "USA"},
	}

	results, degraded := e.KeywordSearch("nature", corpus, 10)
	if degraded {
		t.Fatal("keyword search should not be degraded")
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	// Direct word hit outranks synonym-only matches.
	if results[0].Destination.ID != 1 {
		t.Errorf("first result = %q, want Green Valley", results[0].Destination.Name)
	}
	if results[1].Destination.ID != 2 {
		t.Errorf("second result = %q, want City Gardens", results[1].Destination.Name)
	}

	// The batch maximum smooths to exactly 1.0.
	if math.Abs(results[0].Score-1.0) > 1e-9 {
		t.Errorf("top score = %v, want 1.0", results[0].Score)
	}
	for _, sd := range results {
		if sd.Score <= 0 || sd.Score > 1.0 {
			t.Errorf("score %v outside (0, 1]", sd.Score)
		}
	}
}

func TestKeywordSearchFieldBoosts(t *testing.T) {
	e := newTestEngine()
	corpus := []*models.Destination{
		{ID: 1, Name: "Riverside Cafe", Description: "coffee in tokyo", City: "Tokyo", Country: "Japan"},
		{ID: 2, Name: "Harbor View", Description: "mentions tokyo once", City: "Oslo", Country: "Norway"},
	}

	results, _ := e.KeywordSearch("tokyo", corpus, 10)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Destination.ID != 1 {
		t.Errorf("city match should outrank description-only match, got %q first",
			results[0].Destination.Name)
	}
}

func TestKeywordSearchEmptyQuery(t *testing.T) {
	e := newTestEngine()
	results, degraded := e.KeywordSearch("", parisCorpus(), 10)
	if degraded {
		t.Error("empty query should not set the degraded flag")
	}
	if len(results) != 0 {
		t.Errorf("got %d results for empty query, want 0", len(results))
	}
}

func TestKeywordSearchNoMatches(t *testing.T) {
	e := newTestEngine()
	results, degraded := e.KeywordSearch("zzyzx", parisCorpus(), 10)
	if degraded {
		t.Error("no matches should not set the degraded flag")
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestKeywordSearchRespectsTopN(t *testing.T) {
	e := newTestEngine()
	corpus := make([]*models.Destination, 0, 20)
	for i := 0; i < 20; i++ {
		corpus = append(corpus, &models.Destination{ID: i, Name: "Museum", Description: "museum"})
	}

	results, _ := e.KeywordSearch("museum", corpus, 5)
	if len(results) != 5 {
		t.Errorf("got %d results, want 5", len(results))
	}
}

func TestRandomSample(t *testing.T) {
	e := newTestEngine()
	corpus := parisCorpus()

	sample := e.randomSample(corpus, 4)
	if len(sample) != 4 {
		t.Fatalf("got %d samples, want 4", len(sample))
	}
	seen := make(map[int]bool)
	for _, sd := range sample {
		if sd.Score != 0.1 {
			t.Errorf("sample score = %v, want 0.1", sd.Score)
		}
		if seen[sd.Destination.ID] {
			t.Errorf("duplicate destination %d in sample", sd.Destination.ID)
		}
		seen[sd.Destination.ID] = true
	}

	// Bounded by corpus size.
	if got := e.randomSample(corpus, 100); len(got) != len(corpus) {
		t.Errorf("got %d samples, want %d", len(got), len(corpus))
	}
	if got := e.randomSample(nil, 5); got != nil {
		t.Errorf("got %v from empty corpus, want nil", got)
	}
}

// The sampler draws from the engine's shared rng, which concurrent requests
// reach through the keyword fallback. Run with -race.
func TestRandomSampleConcurrent(t *testing.T) {
	e := newTestEngine()
	corpus := parisCorpus()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if sample := e.randomSample(corpus, 3); len(sample) != 3 {
					t.Errorf("got %d samples, want 3", len(sample))
					return
				}
			}
		}()
	}
	wg.Wait()
}
