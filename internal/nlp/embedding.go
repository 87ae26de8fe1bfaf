package nlp

import (
	"context"
	"log/slog"
)

// Vector is either a dense model embedding or a sparse token-frequency
// fallback. The two shapes are not interchangeable; similarity dispatches on
// which one is populated.
type Vector struct {
	Dense  []float32
	Counts map[string]int
}

// IsDense reports whether the vector came from the embedding model.
func (v Vector) IsDense() bool { return v.Dense != nil }

// IsZero reports whether a dense vector has no magnitude. The error path of
// the model produces a zero vector of the nominal dimensionality.
func (v Vector) IsZero() bool {
	for _, x := range v.Dense {
		if x != 0 {
			return false
		}
	}
	return true
}

// Embed returns the vector for text, memoized per exact input string. In
// model mode a failed model call yields a zero vector of EmbeddingDim rather
// than an error; in fallback mode the vector is a token-frequency multiset.
func (p *Processor) Embed(ctx context.Context, text string) Vector {
	p.embeddingMu.Lock()
	if cached, ok := p.embeddingCache[text]; ok {
		p.embeddingMu.Unlock()
		return cached
	}
	p.embeddingMu.Unlock()

	result := p.embed(ctx, text)

	p.embeddingMu.Lock()
	p.embeddingCache[text] = result
	p.embeddingMu.Unlock()
	return result
}

func (p *Processor) embed(ctx context.Context, text string) Vector {
	if !p.ensureModel(ctx) {
		counts := make(map[string]int)
		for _, t := range Preprocess(text) {
			counts[t]++
		}
		return Vector{Counts: counts}
	}

	dense, err := p.client.Embed(ctx, text)
	if err != nil {
		slog.Warn("embedding model call failed, using zero vector", "error", err)
		return Vector{Dense: make([]float32, EmbeddingDim)}
	}
	return Vector{Dense: dense}
}
