package nlp

import (
	"strings"
	"unicode"
)

// stopWords is a standard English stop word list. Tokens in this set carry no
// search signal and are dropped during preprocessing.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"but": true, "if": true, "because": true, "as": true, "what": true,
	"when": true, "where": true, "how": true, "all": true, "with": true,
	"for": true, "in": true, "to": true, "at": true, "by": true,
	"from": true, "on": true, "off": true, "of": true, "is": true,
	"it": true, "its": true, "this": true, "that": true, "these": true,
	"those": true, "i": true, "you": true, "he": true, "she": true,
	"we": true, "they": true, "them": true, "my": true, "your": true,
	"his": true, "her": true, "our": true, "their": true, "be": true,
	"am": true, "are": true, "was": true, "were": true, "been": true,
	"being": true, "have": true, "has": true, "had": true, "do": true,
	"does": true, "did": true, "will": true, "would": true, "should": true,
	"can": true, "could": true, "may": true, "might": true, "must": true,
	"not": true, "no": true, "so": true, "than": true, "then": true,
	"there": true, "here": true, "very": true, "too": true, "just": true,
	"about": true, "into": true, "over": true, "under": true, "again": true,
	"more": true, "most": true, "some": true, "such": true, "only": true,
	"own": true, "same": true, "other": true, "which": true, "who": true,
	"whom": true, "any": true, "both": true, "each": true, "few": true,
	"up": true, "down": true, "out": true, "now": true,
}

// Preprocess tokenizes raw text into lowercase alphabetic tokens with stop
// words removed. Token order and multiplicity are preserved so callers can
// build either sets or frequency vectors. It never fails: malformed input
// degrades to a plain lowercase whitespace split.
func Preprocess(text string) []string {
	if text == "" {
		return nil
	}

	tokens := make([]string, 0, 16)
	var word strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) {
			word.WriteRune(r)
			continue
		}
		if word.Len() > 0 {
			if t := word.String(); !stopWords[t] {
				tokens = append(tokens, t)
			}
			word.Reset()
		}
	}
	if word.Len() > 0 {
		if t := word.String(); !stopWords[t] {
			tokens = append(tokens, t)
		}
	}

	if len(tokens) == 0 {
		// Last resort: keep whatever whitespace-separated pieces exist so a
		// fully non-alphabetic query still produces something to match on.
		return strings.Fields(strings.ToLower(text))
	}
	return tokens
}

// TokenSet returns the unique preprocessed tokens of text.
func TokenSet(text string) map[string]bool {
	tokens := Preprocess(text)
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

// WordCount counts whitespace-separated words; the short-query rules key off it.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
