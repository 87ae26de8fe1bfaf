package nlp

import (
	"reflect"
	"testing"
)

func TestExtractKeywords(t *testing.T) {
	t.Run("orders by frequency", func(t *testing.T) {
		got := ExtractKeywords("garden park garden lake garden park", 2)
		want := []string{"garden", "park"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ExtractKeywords = %v, want %v", got, want)
		}
	})

	t.Run("folds inflected forms by stem", func(t *testing.T) {
		got := ExtractKeywords("beaches beach beach sand", 1)
		// First surface form seen wins for the folded stem.
		want := []string{"beaches"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ExtractKeywords = %v, want %v", got, want)
		}
	})

	t.Run("ties break by first appearance", func(t *testing.T) {
		got := ExtractKeywords("temple shrine", 2)
		want := []string{"temple", "shrine"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ExtractKeywords = %v, want %v", got, want)
		}
	})

	t.Run("drops stop words", func(t *testing.T) {
		got := ExtractKeywords("the castle and the moat", 5)
		want := []string{"castle", "moat"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ExtractKeywords = %v, want %v", got, want)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := ExtractKeywords("", 5); got != nil {
			t.Errorf("ExtractKeywords = %v, want nil", got)
		}
	})

	t.Run("zero topN keeps everything", func(t *testing.T) {
		got := ExtractKeywords("castle moat tower", 0)
		if len(got) != 3 {
			t.Errorf("len = %d, want 3", len(got))
		}
	})
}
