package recommend

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/absolutekim/FFYYPP/internal/models"
	"github.com/absolutekim/FFYYPP/internal/nlp"
	"github.com/absolutekim/FFYYPP/internal/search"
)

func newTestEngine() *Engine {
	e := NewEngine(search.NewEngine(nlp.NewProcessor(nil)))
	e.rng = rand.New(rand.NewSource(1))
	return e
}

func museumCorpus() []*models.Destination {
	return []*models.Destination{
		{ID: 1, Name: "Louvre Museum", Description: "art museum", City: "Paris", Country: "France", Category: "Museums", Subcategories: []string{"Museums"}, Subtypes: []string{"Art Museums"}, LikesCount: 50},
		{ID: 2, Name: "British Museum", Description: "history museum", City: "London", Country: "UK", Category: "Museums", Subcategories: []string{"Museums"}, Subtypes: []string{"History Museums"}, LikesCount: 40},
		{ID: 3, Name: "Bondi Beach", Description: "surfing beach", City: "Sydney", Country: "Australia", Category: "Beaches", Subcategories: []string{"Beaches"}, Subtypes: []string{"Surf Beaches"}, LikesCount: 30},
		{ID: 4, Name: "Eiffel Tower", Description: "landmark", City: "Paris", Country: "France", Category: "Sights & Landmarks", Subcategories: []string{"Sights & Landmarks"}, Subtypes: []string{"Towers"}, LikesCount: 60},
		{ID: 5, Name: "Prado Museum", Description: "spanish art museum", City: "Madrid", Country: "Spain", Category: "Museums", Subcategories: []string{"Museums"}, Subtypes: []string{"Art Museums"}, LikesCount: 20},
		{ID: 6, Name: "Hyde Park", Description: "city park", City: "London", Country: "UK", Category: "Nature & Parks", Subcategories: []string{"Nature & Parks"}, Subtypes: []string{"Parks"}, LikesCount: 10},
	}
}

func TestWeights(t *testing.T) {
	tests := []struct {
		total        int
		wantActivity float64
		wantTag      float64
	}{
		{0, 0.0, 1.0},
		{5, 0.5, 0.5},
		{10, 1.0, 0.0},
		{15, 1.0, 0.0},
	}
	for _, tt := range tests {
		activity, tag := Weights(tt.total)
		if activity != tt.wantActivity || tag != tt.wantTag {
			t.Errorf("Weights(%d) = (%v, %v), want (%v, %v)",
				tt.total, activity, tag, tt.wantActivity, tt.wantTag)
		}
	}
}

func TestRecommendNewUserUsesTags(t *testing.T) {
	e := newTestEngine()
	corpus := museumCorpus()

	activity := UserActivity{SelectedTags: []string{"Museums", "Beaches"}}
	resp := e.Recommend(activity, nil, corpus, 10)

	if resp.ActivityWeight != 0.0 || resp.TagWeight != 1.0 {
		t.Errorf("weights = (%v, %v), want (0, 1)", resp.ActivityWeight, resp.TagWeight)
	}

	museums, ok := resp.TagGroupRecommendations["Museums"]
	if !ok || len(museums) == 0 {
		t.Fatal("expected a Museums tag group")
	}
	for _, rec := range museums {
		if rec.SimilarityScore != tagMatchScore {
			t.Errorf("tag match score = %v, want %v", rec.SimilarityScore, tagMatchScore)
		}
		if rec.Type != "tag" {
			t.Errorf("recommendation type = %q, want tag", rec.Type)
		}
	}

	beaches := resp.TagGroupRecommendations["Beaches"]
	if len(beaches) != 1 || beaches[0].ID != 3 {
		t.Errorf("Beaches group = %v, want just Bondi Beach", beaches)
	}

	if len(resp.Results) == 0 {
		t.Fatal("expected primary results")
	}
	seen := make(map[int]bool)
	for _, rec := range resp.Results {
		if seen[rec.ID] {
			t.Errorf("duplicate destination %d in results", rec.ID)
		}
		seen[rec.ID] = true
	}
}

func TestRecommendTagGroupCappedAtFive(t *testing.T) {
	e := newTestEngine()
	corpus := make([]*models.Destination, 0, 8)
	for i := 1; i <= 8; i++ {
		corpus = append(corpus, &models.Destination{
			ID: i, Name: "Museum", Category: "Museums", Subcategories: []string{"Museums"},
		})
	}

	resp := e.Recommend(UserActivity{SelectedTags: []string{"Museums"}}, nil, corpus, 20)
	if got := len(resp.TagGroupRecommendations["Museums"]); got != 5 {
		t.Errorf("tag group size = %d, want 5", got)
	}
}

func TestRecommendBackfillsWithPopular(t *testing.T) {
	e := newTestEngine()
	corpus := museumCorpus()

	// Tags match nothing, so everything comes from the popularity backfill.
	resp := e.Recommend(UserActivity{SelectedTags: []string{"Volcanoes"}}, nil, corpus, 3)
	if len(resp.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(resp.Results))
	}
	// Backfill is ordered by like count: Eiffel (60), Louvre (50), British (40).
	wantOrder := []int{4, 1, 2}
	for i, rec := range resp.Results {
		if rec.ID != wantOrder[i] {
			t.Errorf("result %d = destination %d, want %d", i, rec.ID, wantOrder[i])
		}
		if rec.SimilarityScore != backfillScore {
			t.Errorf("backfill score = %v, want %v", rec.SimilarityScore, backfillScore)
		}
	}
}

func TestRecommendActiveUserExcludesLiked(t *testing.T) {
	e := newTestEngine()
	corpus := museumCorpus()

	louvre := corpus[0]
	activity := UserActivity{
		Likes: []*models.Like{
			{ID: 1, DestinationID: louvre.ID, Destination: louvre},
		},
		SelectedTags: []string{"Museums"},
	}

	resp := e.Recommend(activity, nil, corpus, 5)

	if resp.ActivityWeight != 0.1 {
		t.Errorf("activity weight = %v, want 0.1", resp.ActivityWeight)
	}
	for _, rec := range resp.Results {
		if rec.ID == louvre.ID {
			t.Error("liked destination should never be recommended")
		}
	}

	// Liking the Louvre should surface the other museums via subcategory.
	if len(resp.SubcategoryRecommendations) == 0 {
		t.Fatal("expected subcategory recommendations")
	}
	for _, rec := range resp.SubcategoryRecommendations {
		if rec.Type != "subcategory" {
			t.Errorf("type = %q, want subcategory", rec.Type)
		}
		if rec.SimilarityScore < subcategoryBase || rec.SimilarityScore > subcategoryBase+3*scoreStep {
			t.Errorf("score %v outside subcategory band", rec.SimilarityScore)
		}
	}
}

// One engine instance serves all requests, so concurrent calls must not
// corrupt its shared state. Run with -race.
func TestRecommendConcurrent(t *testing.T) {
	e := newTestEngine()
	corpus := museumCorpus()

	louvre := corpus[0]
	activity := UserActivity{
		Likes:        []*models.Like{{ID: 1, DestinationID: louvre.ID, Destination: louvre}},
		SelectedTags: []string{"Museums"},
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				resp := e.Recommend(activity, nil, corpus, 5)
				if resp == nil || len(resp.Results) == 0 {
					t.Error("expected results from concurrent call")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestRecommendSubtypeSkipsSubcategoryPicks(t *testing.T) {
	e := newTestEngine()
	corpus := museumCorpus()

	louvre := corpus[0]
	activity := UserActivity{
		Likes: []*models.Like{{ID: 1, DestinationID: louvre.ID, Destination: louvre}},
	}

	resp := e.Recommend(activity, nil, corpus, 10)

	subcatIDs := make(map[int]bool)
	for _, rec := range resp.SubcategoryRecommendations {
		subcatIDs[rec.ID] = true
	}
	for _, rec := range resp.SubtypeRecommendations {
		if subcatIDs[rec.ID] {
			t.Errorf("destination %d appears in both subcategory and subtype lists", rec.ID)
		}
	}
}

func TestRecommendRecentlyViewed(t *testing.T) {
	e := newTestEngine()
	corpus := museumCorpus()

	viewed := []models.RecentlyViewedItem{
		{ID: 4, Country: "France", Subcategories: []string{"Sights & Landmarks"}},
	}
	resp := e.Recommend(UserActivity{SelectedTags: []string{"Museums"}}, viewed, corpus, 10)

	if len(resp.RecentlyViewedRecommendations) == 0 {
		t.Fatal("expected recently viewed recommendations")
	}
	for _, rec := range resp.RecentlyViewedRecommendations {
		if rec.ID == 4 {
			t.Error("the viewed destination itself should not be recommended")
		}
		if rec.Type != "recently_viewed" {
			t.Errorf("type = %q, want recently_viewed", rec.Type)
		}
		if rec.SimilarityScore < recentlyViewedMin || rec.SimilarityScore > recentlyViewedCap {
			t.Errorf("score %v outside [%v, %v]", rec.SimilarityScore, recentlyViewedMin, recentlyViewedCap)
		}
	}

	// The Louvre shares France with the viewed Eiffel Tower.
	found := false
	for _, rec := range resp.RecentlyViewedRecommendations {
		if rec.ID == 1 {
			found = true
		}
	}
	if !found {
		t.Error("expected a same-country recommendation from recently viewed")
	}
}

func TestRecommendKeywordPathBoostsSharedTags(t *testing.T) {
	e := newTestEngine()
	corpus := museumCorpus()

	louvre := corpus[0]
	activity := UserActivity{
		Reviews: []*models.Review{
			{
				ID: 1, DestinationID: louvre.ID, Destination: louvre,
				Rating: 5, Keywords: []string{"museum", "art"},
			},
		},
	}

	resp := e.Recommend(activity, nil, corpus, 10)
	if len(resp.KeywordRecommendations) == 0 {
		t.Fatal("expected keyword recommendations")
	}

	for _, rec := range resp.KeywordRecommendations {
		if rec.SimilarityScore > keywordBoostCap {
			t.Errorf("score %v exceeds cap %v", rec.SimilarityScore, keywordBoostCap)
		}
	}
}

func TestRecommendExcludesLowRated(t *testing.T) {
	e := newTestEngine()
	corpus := museumCorpus()

	prado := corpus[4]
	activity := UserActivity{
		Reviews: []*models.Review{
			{
				ID: 1, DestinationID: prado.ID, Destination: prado,
				Rating: 1, Keywords: []string{"museum", "art"},
			},
		},
	}

	resp := e.Recommend(activity, nil, corpus, 10)
	for _, rec := range resp.KeywordRecommendations {
		if rec.ID == prado.ID {
			t.Error("poorly rated destination should not be recommended by keyword")
		}
	}
}

func TestDedupeByID(t *testing.T) {
	a := &models.Destination{ID: 1}
	b := &models.Destination{ID: 2}

	input := []models.ScoredDestination{
		{Destination: a, Score: 0.5},
		{Destination: b, Score: 0.9},
		{Destination: a, Score: 0.99},
	}
	got := dedupeByID(input)
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	// First occurrence wins even when a later duplicate scores higher.
	if got[0].Destination.ID != 1 || got[0].Score != 0.5 {
		t.Errorf("first entry = %v, want id 1 score 0.5", got[0])
	}
}

func TestTopK(t *testing.T) {
	counts := map[string]int{"a": 3, "b": 1, "c": 3, "d": 2}
	got := topK(counts, 3)
	// Count descending, key ascending on ties.
	want := []string{"a", "c", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("topK = %v, want %v", got, want)
			break
		}
	}
}
