package search

import (
	"context"
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/absolutekim/FFYYPP/internal/models"
	"github.com/absolutekim/FFYYPP/internal/nlp"
)

// Positive queries boost lively categories, negative queries calmer ones.
var (
	positiveCategories = []string{"Fun & Games", "Entertainment", "Spas & Wellness", "Food & Drink"}
	negativeCategories = []string{"Nature & Parks", "Museums", "Sights & Landmarks"}
)

// shortQueryMinScore filters weak matches out of short-query rankings.
const shortQueryMinScore = 0.03

// Engine ranks destinations against free-text queries. It owns the result
// cache and degrades through keyword search down to a random sample rather
// than failing a request.
type Engine struct {
	proc  *nlp.Processor
	cache *ResultCache

	// rng is shared across requests; rngMu serializes draws because
	// rand.Rand is not goroutine-safe.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewEngine creates a search engine backed by proc.
func NewEngine(proc *nlp.Processor) *Engine {
	return &Engine{
		proc:  proc,
		cache: NewResultCache(DefaultCacheCapacity),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Cache exposes the result cache for explicit invalidation.
func (e *Engine) Cache() *ResultCache { return e.cache }

// Search returns up to topN destinations ranked by semantic similarity to
// query, highest first. Results are cached per (query, topN). The degraded
// flag is set only when even the keyword fallback had to resort to a random
// sample. Search never returns an error; every failure path degrades.
func (e *Engine) Search(ctx context.Context, query string, corpus []*models.Destination, topN int) (results []models.ScoredDestination, degraded bool) {
	key := CacheKey(query, topN)
	if cached, ok := e.cache.Get(key); ok {
		slog.Debug("search cache hit", "query", query)
		return cached, false
	}

	results, ok := e.semanticSearch(ctx, query, corpus, topN)
	if !ok {
		slog.Warn("semantic search failed, falling back to keyword search", "query", query)
		return e.KeywordSearch(query, corpus, topN)
	}

	e.cache.Put(key, results)
	return results, false
}

// semanticSearch runs the full scoring pipeline. ok is false when the
// pipeline panicked and the caller should fall back to keyword search.
func (e *Engine) semanticSearch(ctx context.Context, query string, corpus []*models.Destination, topN int) (results []models.ScoredDestination, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("semantic search panicked", "query", query, "panic", r)
			results, ok = nil, false
		}
	}()

	sentiment := e.proc.AnalyzeSentiment(ctx, query)
	queryWords := nlp.TokenSet(query)
	shortQuery := nlp.WordCount(query) < 3

	candidates := preFilter(query, queryWords, corpus, topN)

	scored := make([]models.ScoredDestination, 0, len(candidates))
	for _, dest := range candidates {
		text := compositeText(dest)
		textLower := strings.ToLower(text)
		nameLower := strings.ToLower(dest.Name)

		score := e.proc.Similarity(ctx, query, text)

		if shortQuery {
			if anyWordIn(queryWords, nameLower) {
				score *= 1.5
			}
			if dest.City != "" && anyWordIn(queryWords, strings.ToLower(dest.City)) {
				score *= 2.0
			}
			if dest.Country != "" && anyWordIn(queryWords, strings.ToLower(dest.Country)) {
				score *= 2.0
			} else if anyWordIn(queryWords, textLower) {
				score *= 1.3
			}
		}

		switch sentiment.Label {
		case nlp.SentimentPositive:
			for _, cat := range positiveCategories {
				if strings.Contains(text, cat) {
					score *= 1.2
				}
			}
		case nlp.SentimentNegative:
			for _, cat := range negativeCategories {
				if strings.Contains(text, cat) {
					score *= 1.2
				}
			}
		}

		// Name-intersection boost applied again regardless of query length.
		// For short queries this compounds with the boost above; kept to match
		// established ranking behavior.
		if anyWordIn(queryWords, nameLower) {
			score *= 1.5
		}

		scored = append(scored, models.ScoredDestination{Destination: dest, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	if shortQuery {
		filtered := make([]models.ScoredDestination, 0, len(scored))
		for _, sd := range scored {
			if sd.Score >= shortQueryMinScore {
				filtered = append(filtered, sd)
			}
		}
		if len(filtered) >= topN {
			scored = filtered
		}
	}

	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored, true
}

// preFilter keeps destinations containing at least one query token in their
// searchable text. When it leaves too few candidates the filter is discarded
// and the full corpus is scanned instead.
func preFilter(query string, queryWords map[string]bool, corpus []*models.Destination, topN int) []*models.Destination {
	if len(queryWords) == 0 {
		return corpus
	}

	filtered := make([]*models.Destination, 0, len(corpus)/4)
	for _, dest := range corpus {
		var b strings.Builder
		b.WriteString(dest.Name)
		b.WriteByte(' ')
		b.WriteString(dest.Description)
		if dest.City != "" {
			b.WriteByte(' ')
			b.WriteString(dest.City)
		}
		if dest.Country != "" {
			b.WriteByte(' ')
			b.WriteString(dest.Country)
		}
		if anyWordIn(queryWords, strings.ToLower(b.String())) {
			filtered = append(filtered, dest)
		}
	}

	minCandidates := 50
	if topN*2 > minCandidates {
		minCandidates = topN * 2
	}
	if len(filtered) < minCandidates {
		slog.Debug("pre-filter too aggressive, scanning full corpus",
			"query", query, "filtered", len(filtered), "corpus", len(corpus))
		return corpus
	}
	return filtered
}

// compositeText assembles the text a destination is scored on. City and
// country are repeated to weight geography; at most five subcategory and five
// subtype tags are included.
func compositeText(dest *models.Destination) string {
	var b strings.Builder
	b.WriteString(dest.Name)
	b.WriteByte(' ')
	b.WriteString(dest.Description)

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

	for i, sub := range dest.Subcategories {
		if i >= 5 {
			break
		}
		b.WriteByte(' ')
		b.WriteString(sub)
	}
	for i, sub := range dest.Subtypes {
		if i >= 5 {
			break
		}
		b.WriteByte(' ')
		b.WriteString(sub)
	}
	return b.String()
}

func anyWordIn(words map[string]bool, text string) bool {
	for w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
