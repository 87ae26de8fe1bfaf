package recommend

import (
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/absolutekim/FFYYPP/internal/models"
	"github.com/absolutekim/FFYYPP/internal/search"
)

// Fixed scores for the non-similarity signals. Each band sits below the one
// above it so merged rankings favor the stronger signal.
const (
	tagMatchScore      = 0.7
	tagTopUpScore      = 0.6
	backfillScore      = 0.5
	keywordBoost       = 0.2
	keywordBoostCap    = 0.95
	subcategoryBase    = 0.75
	subtypeBase        = 0.70
	countryBase        = 0.65
	scoreStep          = 0.05
	recentlyViewedCap  = 0.7
	recentlyViewedMin  = 0.2
	activitySaturation = 10.0
)

// UserActivity is the snapshot of a user's likes, reviews and signup tags the
// engine works from. Likes and reviews carry their destinations joined.
type UserActivity struct {
	Likes        []*models.Like
	Reviews      []*models.Review
	SelectedTags []string
}

// Total returns the combined number of likes and reviews.
func (a UserActivity) Total() int { return len(a.Likes) + len(a.Reviews) }

// Engine assembles recommendation payloads by blending tag preferences,
// activity history, affinity signals and recently viewed items.
type Engine struct {
	search *search.Engine

	// rng is shared across requests; rngMu serializes shuffles because
	// rand.Rand is not goroutine-safe.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewEngine creates a recommendation engine that uses se for keyword lookups.
func NewEngine(se *search.Engine) *Engine {
	return &Engine{
		search: se,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Weights returns the activity and tag blending coefficients for a given
// activity count. Activity saturates at ten likes+reviews.
func Weights(totalActivities int) (activityWeight, tagWeight float64) {
	activityWeight = math.Min(float64(totalActivities)/activitySaturation, 1.0)
	return activityWeight, 1.0 - activityWeight
}

// Recommend builds the full recommendation payload for one user against a
// corpus snapshot. Users without activity get tag-based matches from their
// signup tags; active users get merged keyword, subcategory, subtype and
// country signals weighted by how much history they have. The primary list is
// deduplicated by destination id, first seen wins, and backfilled from the
// most liked destinations when short.
func (e *Engine) Recommend(activity UserActivity, recentlyViewed []models.RecentlyViewedItem, corpus []*models.Destination, limit int) *models.RecommendationResponse {
	activityWeight, tagWeight := Weights(activity.Total())
	slog.Debug("recommendation weights", "activity", activityWeight, "tag", tagWeight)

	liked := make(map[int]bool, len(activity.Likes))
	for _, l := range activity.Likes {
		liked[l.DestinationID] = true
	}

	resp := &models.RecommendationResponse{
		ActivityWeight:                activityWeight,
		TagWeight:                     tagWeight,
		Results:                       []models.RecommendedDestination{},
		KeywordRecommendations:        []models.RecommendedDestination{},
		SubcategoryRecommendations:    []models.RecommendedDestination{},
		SubtypeRecommendations:        []models.RecommendedDestination{},
		CountryRecommendations:        []models.RecommendedDestination{},
		RecentlyViewedRecommendations: []models.RecommendedDestination{},
		TagGroupRecommendations:       map[string][]models.RecommendedDestination{},
	}

	var primary []models.ScoredDestination

	if activity.Total() == 0 {
		primary = e.tagBased(activity.SelectedTags, corpus, liked, limit, resp)
	} else {
		primary = e.activityBased(activity, corpus, liked, limit, resp)

		// Secondary tag signal for users whose history is still thin.
		if tagWeight > 0.1 && len(primary) < limit {
			primary = e.tagTopUp(activity.SelectedTags, corpus, liked, primary, limit)
		}
	}

	if len(recentlyViewed) > 0 {
		resp.RecentlyViewedRecommendations = capList(
			e.recentlyViewedBased(recentlyViewed, corpus, liked, limit), limit)
	}

	primary = e.backfillPopular(primary, corpus, liked, limit)

	for _, sd := range primary {
		resp.Results = append(resp.Results, models.NewRecommendedDestination(sd, "general"))
	}
	return resp
}

// tagBased matches the user's signup tags against category, subcategories and
// subtypes. Matches score a flat 0.7 and are grouped per tag so the UI can
// explain why each destination appears.
func (e *Engine) tagBased(tags []string, corpus []*models.Destination, liked map[int]bool, limit int, resp *models.RecommendationResponse) []models.ScoredDestination {
	var flattened []models.ScoredDestination

	for _, tag := range tags {
		tagLower := strings.ToLower(tag)
		seen := make(map[int]bool)
		var matches []*models.Destination

		for _, dest := range corpus {
			if liked[dest.ID] || seen[dest.ID] {
				continue
			}
			if dest.Category == tag ||
				anyTagContains(dest.Subcategories, tagLower) ||
				anyTagContains(dest.Subtypes, tagLower) {
				seen[dest.ID] = true
				matches = append(matches, dest)
			}
		}

		if len(matches) == 0 {
			continue
		}
		if len(matches) > 5 {
			matches = matches[:5]
		}

		group := make([]models.RecommendedDestination, 0, len(matches))
		for _, dest := range matches {
			sd := models.ScoredDestination{Destination: dest, Score: tagMatchScore}
			group = append(group, models.NewRecommendedDestination(sd, "tag"))
			flattened = append(flattened, sd)
		}
		resp.TagGroupRecommendations[tag] = group
	}

	flattened = dedupeByID(flattened)
	if len(flattened) > limit {
		flattened = flattened[:limit]
	}
	return flattened
}

// activityBased builds and merges the keyword, subcategory, subtype and
// country candidate lists from the user's likes and reviews.
func (e *Engine) activityBased(activity UserActivity, corpus []*models.Destination, liked map[int]bool, limit int, resp *models.RecommendationResponse) []models.ScoredDestination {
	subcatCounts := map[string]int{}
	subtypeCounts := map[string]int{}
	countryCounts := map[string]int{}
	for _, l := range activity.Likes {
		if l.Destination == nil {
			continue
		}
		for _, s := range l.Destination.Subcategories {
			subcatCounts[s]++
		}
		for _, s := range l.Destination.Subtypes {
			subtypeCounts[s]++
		}
		if l.Destination.Country != "" {
			countryCounts[l.Destination.Country]++
		}
	}

	var reviewKeywords []string
	var highRated []*models.Destination
	lowRatedIDs := map[int]bool{}
	for _, r := range activity.Reviews {
		reviewKeywords = append(reviewKeywords, r.Keywords...)
		switch {
		case r.Rating >= 4:
			if r.Destination != nil {
				highRated = append(highRated, r.Destination)
			}
		case r.Rating <= 2:
			lowRatedIDs[r.DestinationID] = true
		}
	}

	var merged []models.ScoredDestination

	keywordResults := e.keywordBased(reviewKeywords, corpus, liked, lowRatedIDs, highRated)
	merged = append(merged, keywordResults...)
	resp.KeywordRecommendations = capList(toRecommendations(keywordResults, "keyword"), limit)

	subcatResults, subcatIDs := e.subcategoryBased(topK(subcatCounts, 5), corpus, liked, limit)
	merged = append(merged, subcatResults...)
	resp.SubcategoryRecommendations = capList(toRecommendations(subcatResults, "subcategory"), limit)

	subtypeResults, subtypeIDs := e.subtypeBased(topK(subtypeCounts, 5), corpus, liked, subcatIDs, limit)
	merged = append(merged, subtypeResults...)
	resp.SubtypeRecommendations = capList(toRecommendations(subtypeResults, "subtype"), limit)

	exclude := union(subcatIDs, subtypeIDs)
	countryResults := e.countryBased(topK(countryCounts, 3), corpus, liked, exclude, limit)
	merged = append(merged, countryResults...)
	resp.CountryRecommendations = capList(toRecommendations(countryResults, "country"), limit)

	merged = dedupeByID(merged)
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Score > merged[j].Score })
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// keywordBased searches the corpus with the user's most frequent review
// keywords, skipping destinations they rated poorly, and boosts results that
// share a subcategory or subtype with something they rated highly.
func (e *Engine) keywordBased(keywords []string, corpus []*models.Destination, liked, lowRatedIDs map[int]bool, highRated []*models.Destination) []models.ScoredDestination {
	counts := map[string]int{}
	for _, k := range keywords {
		counts[k]++
	}
	top := topK(counts, 10)
	if len(top) == 0 {
		return nil
	}

	query := strings.Join(top, " ")
	found, _ := e.search.KeywordSearch(query, corpus, 10+len(liked)+len(lowRatedIDs))

	results := make([]models.ScoredDestination, 0, 10)
	for _, sd := range found {
		if liked[sd.Destination.ID] || lowRatedIDs[sd.Destination.ID] {
			continue
		}
		for _, loved := range highRated {
			if sharesTag(sd.Destination.Subcategories, loved.Subcategories) ||
				sharesTag(sd.Destination.Subtypes, loved.Subtypes) {
				sd.Score = math.Min(sd.Score+keywordBoost, keywordBoostCap)
				break
			}
		}
		results = append(results, sd)
		if len(results) >= 10 {
			break
		}
	}
	return results
}

// subcategoryBased recommends destinations carrying the user's most liked
// subcategories, shuffled for diversity, scored in a narrow band below 0.75.
func (e *Engine) subcategoryBased(tags []string, corpus []*models.Destination, liked map[int]bool, limit int) ([]models.ScoredDestination, map[int]bool) {
	ids := make(map[int]bool)
	if len(tags) == 0 {
		return nil, ids
	}

	var candidates []*models.Destination
	for _, dest := range corpus {
		if liked[dest.ID] {
			continue
		}
		if matchesAnyTag(dest.Subcategories, tags, false) {
			candidates = append(candidates, dest)
		}
	}
	return e.scoreShuffled(candidates, limit, subcategoryBase, ids), ids
}

// subtypeBased does the same over subtypes, also matching substrings, and
// skips anything the subcategory pass already picked.
func (e *Engine) subtypeBased(tags []string, corpus []*models.Destination, liked, exclude map[int]bool, limit int) ([]models.ScoredDestination, map[int]bool) {
	ids := make(map[int]bool)
	if len(tags) == 0 {
		return nil, ids
	}

	var candidates []*models.Destination
	for _, dest := range corpus {
		if liked[dest.ID] || exclude[dest.ID] {
			continue
		}
		if matchesAnyTag(dest.Subtypes, tags, true) {
			candidates = append(candidates, dest)
		}
	}
	return e.scoreShuffled(candidates, limit, subtypeBase, ids), ids
}

func (e *Engine) scoreShuffled(candidates []*models.Destination, limit int, base float64, ids map[int]bool) []models.ScoredDestination {
	e.rngMu.Lock()
	e.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	e.rngMu.Unlock()
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	results := make([]models.ScoredDestination, len(candidates))
	for i, dest := range candidates {
		results[i] = models.ScoredDestination{
			Destination: dest,
			Score:       base + float64(i%4)*scoreStep,
		}
		ids[dest.ID] = true
	}
	return results
}

// countryBased recommends destinations in the user's most liked countries.
func (e *Engine) countryBased(countries []string, corpus []*models.Destination, liked, exclude map[int]bool, limit int) []models.ScoredDestination {
	if len(countries) == 0 {
		return nil
	}
	countrySet := make(map[string]bool, len(countries))
	for _, c := range countries {
		countrySet[c] = true
	}

	var candidates []*models.Destination
	for _, dest := range corpus {
		if liked[dest.ID] || exclude[dest.ID] {
			continue
		}
		if countrySet[dest.Country] {
			candidates = append(candidates, dest)
		}
	}
	return e.scoreShuffled(candidates, limit, countryBase, map[int]bool{})
}

// recentlyViewedBased scores the corpus against the countries and tags of the
// items the caller says the user viewed recently.
func (e *Engine) recentlyViewedBased(viewed []models.RecentlyViewedItem, corpus []*models.Destination, liked map[int]bool, limit int) []models.RecommendedDestination {
	countries := map[string]bool{}
	var subcats, subtypes []string
	viewedIDs := map[int]bool{}
	for _, item := range viewed {
		viewedIDs[item.ID] = true
		if item.Country != "" {
			countries[item.Country] = true
		}
		subcats = append(subcats, item.Subcategories...)
		subtypes = append(subtypes, item.Subtypes...)
	}

	var matched []models.ScoredDestination
	for _, dest := range corpus {
		if liked[dest.ID] || viewedIDs[dest.ID] {
			continue
		}

		var score float64
		if dest.Country != "" && countries[dest.Country] {
			score += 0.3
		}
		if matchesAnyTag(dest.Subcategories, subcats, true) {
			score += 0.2
		}
		if matchesAnyTag(dest.Subtypes, subtypes, true) {
			score += 0.2
		}

		if score >= recentlyViewedMin {
			matched = append(matched, models.ScoredDestination{
				Destination: dest,
				Score:       math.Min(score, recentlyViewedCap),
			})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Score > matched[j].Score })
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return toRecommendations(matched, "recently_viewed")
}

// tagTopUp fills remaining primary slots with category matches on the signup
// tags, at a lower score than behavior-based results.
func (e *Engine) tagTopUp(tags []string, corpus []*models.Destination, liked map[int]bool, primary []models.ScoredDestination, limit int) []models.ScoredDestination {
	chosen := make(map[int]bool, len(primary))
	for _, sd := range primary {
		chosen[sd.Destination.ID] = true
	}

	for _, tag := range tags {
		added := 0
		for _, dest := range corpus {
			if len(primary) >= limit {
				return primary
			}
			if dest.Category != tag || liked[dest.ID] || chosen[dest.ID] {
				continue
			}
			chosen[dest.ID] = true
			primary = append(primary, models.ScoredDestination{Destination: dest, Score: tagTopUpScore})
			added++
			if added >= 5 {
				break
			}
		}
	}
	return primary
}

// backfillPopular pads the primary list with globally popular destinations.
func (e *Engine) backfillPopular(primary []models.ScoredDestination, corpus []*models.Destination, liked map[int]bool, limit int) []models.ScoredDestination {
	if len(primary) >= limit {
		return primary
	}

	chosen := make(map[int]bool, len(primary))
	for _, sd := range primary {
		chosen[sd.Destination.ID] = true
	}

	popular := make([]*models.Destination, 0, len(corpus))
	for _, dest := range corpus {
		if !chosen[dest.ID] && !liked[dest.ID] {
			popular = append(popular, dest)
		}
	}
	sort.SliceStable(popular, func(i, j int) bool {
		return popular[i].LikesCount > popular[j].LikesCount
	})

	for _, dest := range popular {
		if len(primary) >= limit {
			break
		}
		primary = append(primary, models.ScoredDestination{Destination: dest, Score: backfillScore})
	}
	return primary
}

// --- helpers ---

// dedupeByID keeps the first occurrence of each destination id. Later
// duplicates are dropped even when their score is higher; downstream ranking
// depends on this exact policy.
func dedupeByID(results []models.ScoredDestination) []models.ScoredDestination {
	seen := make(map[int]bool, len(results))
	deduped := results[:0:0]
	for _, sd := range results {
		if seen[sd.Destination.ID] {
			continue
		}
		seen[sd.Destination.ID] = true
		deduped = append(deduped, sd)
	}
	return deduped
}

func topK(counts map[string]int, k int) []string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > k {
		keys = keys[:k]
	}
	return keys
}

func anyTagContains(tags []string, needle string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

// matchesAnyTag reports whether any of tags appears in have, exactly or as a
// case-insensitive substring when substring is true.
func matchesAnyTag(have, tags []string, substring bool) bool {
	for _, tag := range tags {
		for _, h := range have {
			if h == tag {
				return true
			}
			if substring && strings.Contains(strings.ToLower(h), strings.ToLower(tag)) {
				return true
			}
		}
	}
	return false
}

func sharesTag(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[t] = true
	}
	for _, t := range b {
		if set[t] {
			return true
		}
	}
	return false
}

func union(a, b map[int]bool) map[int]bool {
	out := make(map[int]bool, len(a)+len(b))
	for k := range a {
		out[k] = true
	}
	for k := range b {
		out[k] = true
	}
	return out
}

func toRecommendations(results []models.ScoredDestination, recType string) []models.RecommendedDestination {
	out := make([]models.RecommendedDestination, len(results))
	for i, sd := range results {
		out[i] = models.NewRecommendedDestination(sd, recType)
	}
	return out
}

func capList(list []models.RecommendedDestination, limit int) []models.RecommendedDestination {
	if len(list) > limit {
		return list[:limit]
	}
	return list
}
