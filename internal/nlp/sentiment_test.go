package nlp

import (
	"context"
	"testing"
)

func TestAnalyzeSentimentHeuristic(t *testing.T) {
	p := NewProcessor(nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		text     string
		label    string
		conf     float64
	}{
		{
			name:  "positive majority",
			text:  "I love this beautiful place",
			label: SentimentPositive,
			conf:  0.8,
		},
		{
			name:  "negative majority",
			text:  "terrible and boring, really disappointed",
			label: SentimentNegative,
			conf:  0.8,
		},
		{
			name:  "tie is neutral",
			text:  "love it but I also hate the crowds",
			label: SentimentNeutral,
			conf:  0.5,
		},
		{
			name:  "no signal words",
			text:  "the weather report for tomorrow",
			label: SentimentNeutral,
			conf:  0.5,
		},
		{
			name:  "extended words only apply in model mode",
			text:  "very clean",
			label: SentimentNeutral,
			conf:  0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.AnalyzeSentiment(ctx, tt.text)
			if got.Label != tt.label {
				t.Errorf("label = %q, want %q", got.Label, tt.label)
			}
			if got.Confidence != tt.conf {
				t.Errorf("confidence = %v, want %v", got.Confidence, tt.conf)
			}
		})
	}
}

func TestAnalyzeSentimentMemoized(t *testing.T) {
	p := NewProcessor(nil)
	ctx := context.Background()

	first := p.AnalyzeSentiment(ctx, "wonderful trip")
	second := p.AnalyzeSentiment(ctx, "wonderful trip")
	if first != second {
		t.Errorf("memoized result differs: %v vs %v", first, second)
	}
	if len(p.sentimentCache) != 1 {
		t.Errorf("cache size = %d, want 1", len(p.sentimentCache))
	}
}

func TestHeuristicSentimentExtendedLists(t *testing.T) {
	// The extended lists add "clean" and "dirty" for short inputs.
	got := heuristicSentiment("very clean room", positiveWordsExt, negativeWordsExt)
	if got.Label != SentimentPositive {
		t.Errorf("label = %q, want %q", got.Label, SentimentPositive)
	}

	got = heuristicSentiment("dirty streets", positiveWordsExt, negativeWordsExt)
	if got.Label != SentimentNegative {
		t.Errorf("label = %q, want %q", got.Label, SentimentNegative)
	}
}
