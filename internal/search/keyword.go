package search

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/absolutekim/FFYYPP/internal/models"
)

// synonymClusters expands query words into related terms so a search for
// "clean" also matches descriptions that say "spotless".
var synonymClusters = map[string][]string{
	"clean":     {"neat", "tidy", "spotless", "immaculate", "pristine"},
	"cozy":      {"comfortable", "warm", "snug", "homely", "intimate", "pleasant"},
	"excited":   {"thrilling", "exciting", "fun", "entertainment", "thrill", "adventure", "joy", "happy"},
	"beautiful": {"pretty", "scenic", "gorgeous", "lovely", "stunning", "attractive"},
	"quiet":     {"peaceful", "calm", "serene", "tranquil", "silent", "relaxing"},
	"historic":  {"ancient", "old", "traditional", "heritage", "historical", "classic"},
	"modern":    {"contemporary", "new", "trendy", "stylish", "innovative"},
	"nature":    {"natural", "outdoor", "green", "park", "garden", "forest", "mountain", "lake", "river"},
	"food":      {"restaurant", "cuisine", "dining", "eat", "culinary", "gastronomy", "delicious"},
	"shopping":  {"shop", "store", "mall", "market", "boutique", "retail"},
	"family":    {"kid", "child", "children", "friendly", "fun"},
	"luxury":    {"luxurious", "upscale", "premium", "elegant", "fancy", "high-end"},
	"budget":    {"cheap", "affordable", "inexpensive", "economical", "reasonable"},
	"view":      {"vista", "panorama", "overlook", "scenery", "landscape", "scenic"},
}

// Match count weights for the lexical score.
const (
	exactMatchWeight    = 0.6
	partialMatchWeight  = 0.3
	expandedMatchWeight = 0.1
)

// KeywordSearch is the pure lexical fallback: no embeddings, just weighted
// word matching with synonym expansion. The degraded flag is set when even
// this path failed and a uniformly scored random sample was returned.
func (e *Engine) KeywordSearch(query string, corpus []*models.Destination, topN int) (results []models.ScoredDestination, degraded bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("keyword search panicked, returning random sample", "query", query, "panic", r)
			results, degraded = e.randomSample(corpus, topN), true
		}
	}()

	queryWords := fieldSet(strings.ToLower(query))

	expanded := make(map[string]bool, len(queryWords))
	for w := range queryWords {
		expanded[w] = true
		for _, syn := range synonymClusters[w] {
			expanded[syn] = true
		}
	}

	raw := make([]models.ScoredDestination, 0, len(corpus)/4)
	for _, dest := range corpus {
		text := keywordText(dest)

		var exact, partial, expandedCount int
		padded := " " + text + " "
		for w := range queryWords {
			if strings.Contains(padded, " "+w+" ") {
				exact++
			}
			if strings.Contains(text, w) {
				partial++
			}
		}
		for w := range expanded {
			if strings.Contains(text, w) {
				expandedCount++
			}
		}

		score := float64(exact)*exactMatchWeight +
			float64(partial)*partialMatchWeight +
			float64(expandedCount)*expandedMatchWeight

		if anyWordIn(queryWords, strings.ToLower(dest.Name)) {
			score *= 1.5
		}
		if dest.City != "" && anyWordIn(queryWords, strings.ToLower(dest.City)) {
			score *= 2.0
		}
		if dest.Country != "" && anyWordIn(queryWords, strings.ToLower(dest.Country)) {
			score *= 2.0
		}

		if score > 0 {
			raw = append(raw, models.ScoredDestination{Destination: dest, Score: score})
		}
	}

	// Min-max normalize against the batch maximum, then smooth so scores
	// spread across 0.2-1.0 instead of clustering near the top.
	if len(raw) > 0 {
		maxScore := raw[0].Score
		for _, sd := range raw[1:] {
			if sd.Score > maxScore {
				maxScore = sd.Score
			}
		}
		for i := range raw {
			normalized := 0.2 + 0.8*(raw[i].Score/maxScore)
			raw[i].Score = 0.2 + 0.8/(1+2.5*(1-normalized))
		}
	}

	sort.SliceStable(raw, func(i, j int) bool { return raw[i].Score > raw[j].Score })

	if len(raw) > topN {
		raw = raw[:topN]
	}
	return raw, false
}

// keywordText is the lexical scoring text: name, description, category,
// city and country tripled, and all subcategory tags, lowercased.
func keywordText(dest *models.Destination) string {
	var b strings.Builder
	b.WriteString(dest.Name)
	b.WriteByte(' ')
	b.WriteString(dest.Description)
	if dest.Category != "" {
		b.WriteByte(' ')
		b.WriteString(dest.Category)
	}
	if dest.City != "" {
		for i := 0; i < 3; i++ {
			b.WriteByte(' ')
			b.WriteString(dest.City)
		}
	}
	if dest.Country != "" {
		for i := 0; i < 3; i++ {
			b.WriteByte(' ')
			b.WriteString(dest.Country)
		}
	}
	for _, sub := range dest.Subcategories {
		b.WriteByte(' ')
		b.WriteString(sub)
	}
	return strings.ToLower(b.String())
}

// randomSample is the last-resort response: a uniform sample at a fixed low
// score, so the caller still gets something to show.
func (e *Engine) randomSample(corpus []*models.Destination, topN int) []models.ScoredDestination {
	n := topN
	if len(corpus) < n {
		n = len(corpus)
	}
	if n == 0 {
		return nil
	}

	e.rngMu.Lock()
	perm := e.rng.Perm(len(corpus))
	e.rngMu.Unlock()
	sample := make([]models.ScoredDestination, n)
	for i := 0; i < n; i++ {
		sample[i] = models.ScoredDestination{Destination: corpus[perm[i]], Score: 0.1}
	}
	return sample
}

func fieldSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, f := range strings.Fields(s) {
		set[f] = true
	}
	return set
}
