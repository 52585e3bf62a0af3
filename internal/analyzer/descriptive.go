package analyzer

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bentzi-tabak/hncollector/internal/models"
)

type KeywordCount struct {
	Keyword string
	Count   int
}

// topKeywords counts case-folded title tokens longer than three characters
// across all stories. Ties keep first-encountered order.
func topKeywords(stories []models.Story, limit int) []KeywordCount {
	counts := make(map[string]int)
	var order []string

	for _, story := range stories {
		for _, token := range strings.Fields(story.Title) {
			if utf8.RuneCountInString(token) <= 3 {
				continue
			}
			keyword := strings.ToLower(token)
			if counts[keyword] == 0 {
				order = append(order, keyword)
			}
			counts[keyword]++
		}
	}

	keywords := make([]KeywordCount, 0, len(order))
	for _, kw := range order {
		keywords = append(keywords, KeywordCount{Keyword: kw, Count: counts[kw]})
	}
	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Count > keywords[j].Count
	})

	if limit > 0 && len(keywords) > limit {
		keywords = keywords[:limit]
	}
	return keywords
}

type HourCount struct {
	Hour  int
	Count int
}

// hourDistribution buckets stories by UTC posting hour. Only observed
// hours appear, in hour order.
func hourDistribution(stories []models.Story) []HourCount {
	var counts [24]int
	for _, story := range stories {
		counts[time.Unix(story.Time, 0).UTC().Hour()]++
	}

	var out []HourCount
	for hour := 0; hour < 24; hour++ {
		if counts[hour] > 0 {
			out = append(out, HourCount{Hour: hour, Count: counts[hour]})
		}
	}
	return out
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// ageHours is the time since posting measured against the analysis clock.
func ageHours(now time.Time, postedAt int64) float64 {
	return float64(now.Unix()-postedAt) / 3600
}
