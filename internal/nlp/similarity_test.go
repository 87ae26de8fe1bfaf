package nlp

import (
	"context"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSimilarityFallback(t *testing.T) {
	p := NewProcessor(nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		query  string
		target string
		want   float64
	}{
		{
			// Jaccard 1.0, short query, amplified and capped at 0.8.
			name:   "identical short query capped",
			query:  "paris museum",
			target: "paris museum",
			want:   0.8,
		},
		{
			// Jaccard 1/4 = 0.25, short query, amplified by 1.5.
			name:   "short query amplification",
			query:  "paris museum",
			target: "museum art history",
			want:   0.375,
		},
		{
			// Jaccard 2/4 = 0.5, five words, no amplification.
			name:   "long query not amplified",
			query:  "ancient art museum in paris",
			target: "museum paris",
			want:   0.5,
		},
		{
			// Three raw words disable amplification even though the stop
			// word "in" drops out of the token set. Jaccard 2/3.
			name:   "stop word still counts toward query length",
			query:  "museum in paris",
			target: "museum paris france",
			want:   2.0 / 3.0,
		},
		{
			name:   "no overlap",
			query:  "beach sunset",
			target: "mountain cabin",
			want:   0.0,
		},
		{
			name:   "empty query",
			query:  "",
			target: "anything at all",
			want:   0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Similarity(ctx, tt.query, tt.target)
			if !almostEqual(got, tt.want) {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.query, tt.target, got, tt.want)
			}
		})
	}
}

func TestSimilarityWeakShortQueryNotAmplified(t *testing.T) {
	p := NewProcessor(nil)

	// Jaccard 1/6 is below the 0.2 amplification threshold.
	got := p.Similarity(context.Background(), "paris museum", "museum art history gallery sculpture")
	if !almostEqual(got, 1.0/6.0) {
		t.Errorf("Similarity = %v, want %v", got, 1.0/6.0)
	}
}

func TestCosine(t *testing.T) {
	t.Run("parallel vectors", func(t *testing.T) {
		got := cosine([]float32{1, 2, 3}, []float32{2, 4, 6})
		if !almostEqual(got, 1.0) {
			t.Errorf("cosine = %v, want 1.0", got)
		}
	})

	t.Run("orthogonal vectors", func(t *testing.T) {
		got := cosine([]float32{1, 0}, []float32{0, 1})
		if !almostEqual(got, 0.0) {
			t.Errorf("cosine = %v, want 0.0", got)
		}
	})

	t.Run("zero vector", func(t *testing.T) {
		got := cosine([]float32{0, 0}, []float32{1, 1})
		if got != 0.0 {
			t.Errorf("cosine = %v, want 0.0", got)
		}
	})
}

func TestEmbedFallbackCounts(t *testing.T) {
	p := NewProcessor(nil)

	v := p.Embed(context.Background(), "beach beach sunset")
	if v.IsDense() {
		t.Fatal("fallback mode should produce a sparse vector")
	}
	if v.Counts["beach"] != 2 || v.Counts["sunset"] != 1 {
		t.Errorf("counts = %v, want beach:2 sunset:1", v.Counts)
	}
}

func TestVectorIsZero(t *testing.T) {
	zero := Vector{Dense: make([]float32, 4)}
	if !zero.IsZero() {
		t.Error("all-zero dense vector should report IsZero")
	}

	nonZero := Vector{Dense: []float32{0, 0.5, 0}}
	if nonZero.IsZero() {
		t.Error("non-zero dense vector should not report IsZero")
	}
}
