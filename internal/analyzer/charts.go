package analyzer

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/bentzi-tabak/hncollector/internal/models"
)

// Fixed chart filenames, one per chart kind.
const (
	ChartStoryScores      = "story_scores.png"
	ChartStoryComments    = "story_comments.png"
	ChartScoreVsAge       = "score_vs_age.png"
	ChartCommentsVsAge    = "comments_vs_age.png"
	ChartKeywords         = "keyword_distribution.png"
	ChartLinks            = "link_distribution.png"
	ChartPostingTimes     = "posting_time_distribution.png"
	ChartSentiment        = "sentiment_distribution.png"
	ChartScoreCorrelation = "score_comments_correlation.png"
)

// renderCharts writes one PNG per chart kind into the output directory and
// returns the paths that rendered successfully. A failed render is logged
// and skipped; it never fails the analysis.
func (a *Analyzer) renderCharts(rep *Report, stories []models.Story, scores, commentCounts, ages []float64) []string {
	var files []string

	render := func(name string, renderable func(w io.Writer) error) {
		path := filepath.Join(a.outDir, name)
		file, err := os.Create(path)
		if err != nil {
			log.Printf("Failed to create chart %s: %v", path, err)
			return
		}
		renderErr := renderable(file)
		if closeErr := file.Close(); renderErr == nil {
			renderErr = closeErr
		}
		if renderErr != nil {
			log.Printf("Failed to render chart %s: %v", path, renderErr)
			return
		}
		files = append(files, path)
	}

	byScore := append([]models.Story(nil), stories...)
	sort.SliceStable(byScore, func(i, j int) bool { return byScore[i].Score < byScore[j].Score })
	byComments := append([]models.Story(nil), stories...)
	sort.SliceStable(byComments, func(i, j int) bool { return byComments[i].CommentsCount < byComments[j].CommentsCount })

	render(ChartStoryScores, func(w io.Writer) error {
		bars := storyBars(byScore, func(s models.Story) float64 { return float64(s.Score) })
		return barChart("Scores of Top Stories", bars).Render(chart.PNG, w)
	})

	render(ChartStoryComments, func(w io.Writer) error {
		bars := storyBars(byComments, func(s models.Story) float64 { return float64(s.CommentsCount) })
		return barChart("Comments Count of Top Stories", bars).Render(chart.PNG, w)
	})

	render(ChartScoreVsAge, func(w io.Writer) error {
		c := scatterChart("Score vs. Time Since Posted", "Time Since Posted (hours)", "Score", ages, scores)
		return c.Render(chart.PNG, w)
	})

	render(ChartCommentsVsAge, func(w io.Writer) error {
		c := scatterChart("Comments Count vs. Time Since Posted", "Time Since Posted (hours)", "Comments Count", ages, commentCounts)
		return c.Render(chart.PNG, w)
	})

	render(ChartKeywords, func(w io.Writer) error {
		bars := make([]chart.Value, 0, len(rep.Keywords))
		for _, kw := range rep.Keywords {
			bars = append(bars, chart.Value{Value: float64(kw.Count), Label: kw.Keyword})
		}
		return barChart("Top 10 Keywords in Story Titles", bars).Render(chart.PNG, w)
	})

	render(ChartLinks, func(w io.Writer) error {
		externals := 0
		for _, s := range stories {
			if s.URL != "" {
				externals++
			}
		}
		pie := chart.PieChart{
			Title:  "Distribution of External Links vs. Self Posts",
			Width:  800,
			Height: 800,
			Values: []chart.Value{
				{Value: float64(externals), Label: "External Links"},
				{Value: float64(len(stories)-externals), Label: "Self Posts"},
			},
		}
		return pie.Render(chart.PNG, w)
	})

	render(ChartPostingTimes, func(w io.Writer) error {
		bars := make([]chart.Value, 0, len(rep.HourCounts))
		for _, hc := range rep.HourCounts {
			bars = append(bars, chart.Value{Value: float64(hc.Count), Label: fmt.Sprintf("%02d", hc.Hour)})
		}
		return barChart("Distribution of Story Posting Times", bars).Render(chart.PNG, w)
	})

	if len(rep.Sentiments) > 0 {
		render(ChartSentiment, func(w io.Writer) error {
			values := make([]chart.Value, 0, len(rep.Sentiments))
			for _, sc := range rep.Sentiments {
				values = append(values, chart.Value{Value: float64(sc.Count), Label: sc.Label})
			}
			pie := chart.PieChart{
				Title:  "Comment Sentiment Distribution",
				Width:  800,
				Height: 800,
				Values: values,
			}
			return pie.Render(chart.PNG, w)
		})
	}

	render(ChartScoreCorrelation, func(w io.Writer) error {
		title := fmt.Sprintf("Story Score vs Number of Comments (Correlation: %.2f)", rep.Correlation)
		c := scatterChart(title, "Story Score", "Number of Comments", scores, commentCounts)
		return c.Render(chart.PNG, w)
	})

	return files
}

func barChart(title string, bars []chart.Value) chart.BarChart {
	return chart.BarChart{
		Title:    title,
		Width:    1280,
		Height:   720,
		BarWidth: 40,
		Bars:     bars,
	}
}

func scatterChart(title, xName, yName string, xs, ys []float64) chart.Chart {
	return chart.Chart{
		Title:  title,
		Width:  1024,
		Height: 720,
		XAxis:  chart.XAxis{Name: xName},
		YAxis:  chart.YAxis{Name: yName},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    5,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}
}

func storyBars(stories []models.Story, value func(models.Story) float64) []chart.Value {
	bars := make([]chart.Value, 0, len(stories))
	for _, s := range stories {
		label := s.Title
		if runes := []rune(label); len(runes) > 16 {
			label = string(runes[:16])
		}
		bars = append(bars, chart.Value{Value: value(s), Label: label})
	}
	return bars
}
