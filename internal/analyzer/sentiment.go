package analyzer

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Sentiment labels, thresholded on the sign of the compound score.
const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
)

type SentimentCount struct {
	Label string
	Count int
}

// SentimentLabel classifies a compound polarity score by its sign.
func SentimentLabel(score float64) string {
	switch {
	case score > 0:
		return SentimentPositive
	case score < 0:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// scoreText computes the VADER compound score for one comment body. Empty
// text scores zero without invoking the analyzer.
func (a *Analyzer) scoreText(text string) float64 {
	if text == "" {
		return 0
	}
	return a.sia.PolarityScores(plainText(text)).Compound
}

// sortSentiments orders label counts by descending frequency, dropping
// labels that never occurred.
func sortSentiments(counts map[string]int) []SentimentCount {
	var out []SentimentCount
	for _, label := range []string{SentimentPositive, SentimentNegative, SentimentNeutral} {
		if counts[label] > 0 {
			out = append(out, SentimentCount{Label: label, Count: counts[label]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// plainText strips the HTML markup HN embeds in comment bodies so the
// sentiment lexicon sees words, not tags and entities.
func plainText(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
