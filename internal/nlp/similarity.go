package nlp

import (
	"context"
	"math"
)

// Similarity scores how close two texts are, in roughly [0, 1]. Model mode
// uses cosine similarity of sentence embeddings, fallback mode Jaccard
// similarity of token sets. Amplification for short queries can push
// embedding-mode scores slightly above the raw cosine; treat the score as
// advisory for ranking, not a probability.
func (p *Processor) Similarity(ctx context.Context, query, target string) float64 {
	if !p.ModelMode() {
		return p.similarityFallback(query, target)
	}

	a := p.Embed(ctx, query)
	b := p.Embed(ctx, target)
	if !a.IsDense() || !b.IsDense() || a.IsZero() || b.IsZero() {
		// Model path produced nothing usable for this pair.
		return p.similarityFallback(query, target)
	}

	raw := cosine(a.Dense, b.Dense)

	// Embedding similarity is weak for one- and two-word queries against long
	// documents; amplify moderately strong matches so they survive ranking.
	if WordCount(query) < 3 {
		if raw >= 0.2 {
			return math.Min(raw*1.5, 0.85)
		}
		if raw >= 0.1 {
			return raw * 1.3
		}
	}
	return raw
}

// similarityFallback is the Jaccard path, used when no model is available or
// a model call failed for this pair.
func (p *Processor) similarityFallback(query, target string) float64 {
	qs := TokenSet(query)
	ts := TokenSet(target)
	if len(qs) == 0 || len(ts) == 0 {
		return 0.0
	}

	intersection := 0
	for t := range qs {
		if ts[t] {
			intersection++
		}
	}
	union := len(qs) + len(ts) - intersection

	sim := float64(intersection) / float64(union)

	if WordCount(query) < 3 && sim >= 0.2 {
		return math.Min(sim*1.5, 0.8)
	}
	return sim
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, magA, magB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
