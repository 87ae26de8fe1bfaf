package nlp

import (
	"context"
	"log/slog"
	"strings"
)

var (
	positiveWords = []string{
		"good", "great", "excellent", "amazing", "wonderful",
		"happy", "love", "enjoy", "fun", "beautiful",
	}
	negativeWords = []string{
		"bad", "terrible", "awful", "horrible", "sad",
		"hate", "dislike", "boring", "ugly", "disappointed",
	}

	// Extended lists used for short inputs in model mode.
	positiveWordsExt = append(positiveWords, "clean")
	negativeWordsExt = append(negativeWords, "dirty")
)

// AnalyzeSentiment classifies the polarity of text. Results are memoized per
// exact input string. Model failures degrade to NEUTRAL with 0.5 confidence;
// the call never fails.
func (p *Processor) AnalyzeSentiment(ctx context.Context, text string) SentimentResult {
	p.sentimentMu.Lock()
	if cached, ok := p.sentimentCache[text]; ok {
		p.sentimentMu.Unlock()
		return cached
	}
	p.sentimentMu.Unlock()

	result := p.analyzeSentiment(ctx, text)

	p.sentimentMu.Lock()
	p.sentimentCache[text] = result
	p.sentimentMu.Unlock()
	return result
}

func (p *Processor) analyzeSentiment(ctx context.Context, text string) SentimentResult {
	if !p.ensureModel(ctx) {
		return heuristicSentiment(text, positiveWords, negativeWords)
	}

	// Short inputs are cheap to classify by keyword; the model only breaks ties.
	if WordCount(text) < 5 {
		if r := heuristicSentiment(text, positiveWordsExt, negativeWordsExt); r.Label != SentimentNeutral {
			return r
		}
	}

	label, score, err := p.client.Sentiment(ctx, text)
	if err != nil {
		slog.Warn("sentiment model call failed, returning neutral", "error", err)
		return SentimentResult{Label: SentimentNeutral, Confidence: 0.5}
	}
	return SentimentResult{Label: label, Confidence: score}
}

// heuristicSentiment counts positive and negative keyword occurrences in the
// lowercased text; majority wins with 0.8 confidence, ties are neutral.
func heuristicSentiment(text string, positive, negative []string) SentimentResult {
	lower := strings.ToLower(text)

	var pos, neg int
	for _, w := range positive {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range negative {
		if strings.Contains(lower, w) {
			neg++
		}
	}

	switch {
	case pos > neg:
		return SentimentResult{Label: SentimentPositive, Confidence: 0.8}
	case neg > pos:
		return SentimentResult{Label: SentimentNegative, Confidence: 0.8}
	default:
		return SentimentResult{Label: SentimentNeutral, Confidence: 0.5}
	}
}
