package nlp

import (
	"sort"

	snowballeng "github.com/kljensen/snowball/english"
)

// ExtractKeywords returns the topN most frequent content words of text,
// most frequent first. Inflected forms ("gardens", "garden") are folded
// together by stemming; the first surface form seen is the one returned.
func ExtractKeywords(text string, topN int) []string {
	tokens := Preprocess(text)
	if len(tokens) == 0 {
		return nil
	}

	counts := make(map[string]int)
	surface := make(map[string]string)
	order := make(map[string]int)
	for i, t := range tokens {
		stem := snowballeng.Stem(t, false)
		counts[stem]++
		if _, ok := surface[stem]; !ok {
			surface[stem] = t
			order[stem] = i
		}
	}

	stems := make([]string, 0, len(counts))
	for s := range counts {
		stems = append(stems, s)
	}
	sort.Slice(stems, func(i, j int) bool {
		if counts[stems[i]] != counts[stems[j]] {
			return counts[stems[i]] > counts[stems[j]]
		}
		return order[stems[i]] < order[stems[j]]
	})

	if topN > 0 && len(stems) > topN {
		stems = stems[:topN]
	}

	keywords := make([]string, len(stems))
	for i, s := range stems {
		keywords[i] = surface[s]
	}
	return keywords
}
