package nlp

import (
	"context"
	"log/slog"
	"sync"
)

// Processor bundles sentiment analysis, embeddings and text similarity behind
// one service object. It owns its memoization caches and the lazily loaded
// model handle; a single instance is shared across requests.
//
// Two operating modes are fixed at construction: with an inference client the
// processor uses the model-backed paths, without one it degrades to keyword
// heuristics and token-set similarity. Per-call model failures degrade the
// same way instead of surfacing to callers.
type Processor struct {
	client *InferenceClient

	loadOnce sync.Once
	loadErr  error

	sentimentMu    sync.Mutex
	sentimentCache map[string]SentimentResult

	embeddingMu    sync.Mutex
	embeddingCache map[string]Vector
}

// SentimentResult is a polarity label with its confidence.
type SentimentResult struct {
	Label      string
	Confidence float64
}

// Sentiment labels.
const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
)

// NewProcessor creates a processor. client may be nil, which selects the
// heuristic/fallback mode for every operation.
func NewProcessor(client *InferenceClient) *Processor {
	return &Processor{
		client:         client,
		sentimentCache: make(map[string]SentimentResult),
		embeddingCache: make(map[string]Vector),
	}
}

// ModelMode reports whether a model backend is configured.
func (p *Processor) ModelMode() bool {
	return p.client != nil
}

// ensureModel loads the model backend once, on first use. Concurrent first
// callers block on the same load instead of each triggering one.
func (p *Processor) ensureModel(ctx context.Context) bool {
	if p.client == nil {
		return false
	}
	p.loadOnce.Do(func() {
		slog.Info("loading inference model backend")
		p.loadErr = p.client.Load(ctx)
		if p.loadErr != nil {
			slog.Warn("inference model backend unavailable", "error", p.loadErr)
		}
	})
	return p.loadErr == nil
}
