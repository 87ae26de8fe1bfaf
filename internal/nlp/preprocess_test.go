package nlp

import (
	"reflect"
	"testing"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "drops stop words and lowercases",
			text: "The beautiful beaches of Bali",
			want: []string{"beautiful", "beaches", "bali"},
		},
		{
			name: "preserves multiplicity and order",
			text: "museum museum art",
			want: []string{"museum", "museum", "art"},
		},
		{
			name: "splits on punctuation",
			text: "rock-climbing, hiking!",
			want: []string{"rock", "climbing", "hiking"},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "non-alphabetic input degrades to field split",
			text: "123 456",
			want: []string{"123", "456"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Preprocess(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Preprocess(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokenSet(t *testing.T) {
	set := TokenSet("museum Museum art")
	if len(set) != 2 {
		t.Fatalf("TokenSet size = %d, want 2", len(set))
	}
	if !set["museum"] || !set["art"] {
		t.Errorf("TokenSet missing expected tokens: %v", set)
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"paris", 1},
		{"paris museum", 2},
		{"  spaced   out  words ", 3},
	}
	for _, tt := range tests {
		if got := WordCount(tt.text); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
