package analyzer

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jonreiter/govader"
	"gonum.org/v1/gonum/stat"

	"github.com/bentzi-tabak/hncollector/internal/config"
	"github.com/bentzi-tabak/hncollector/internal/models"
)

// ErrEmptyStoryTable is the fail-fast precondition violation for analysis
// over zero stories, where every percentage would divide by zero.
var ErrEmptyStoryTable = errors.New("story table is empty: nothing to analyze")

// Report holds every statistic of one analysis pass plus the flattened
// metric rows and the chart files written for them.
type Report struct {
	GeneratedAt time.Time

	StoryCount   int
	CommentCount int

	AvgScore    float64
	AvgComments float64
	AvgAgeHours float64

	Keywords         []KeywordCount
	ExternalLinksPct float64
	SelfPostsPct     float64
	HourCounts       []HourCount

	AvgCommentLength     float64
	MedianCommentLength  float64
	CommentsWithLinksPct float64
	Sentiments           []SentimentCount

	Correlation float64

	Metrics    []models.Metric
	ChartFiles []string
}

// Analyzer computes descriptive statistics, sentiment classification and
// charts over reloaded story and comment tables. It never mutates the
// tables' backing files.
type Analyzer struct {
	cfg    config.AnalysisConfig
	outDir string
	sia    *govader.SentimentIntensityAnalyzer
	now    func() time.Time
}

func New(cfg config.AnalysisConfig, outDir string) *Analyzer {
	if outDir == "" {
		outDir = "."
	}
	return &Analyzer{
		cfg:    cfg,
		outDir: outDir,
		sia:    govader.NewSentimentIntensityAnalyzer(),
		now:    time.Now,
	}
}

// Analyze runs every statistic over the two tables, writes the chart
// images and returns the populated report. Fails fast when the story
// table is empty.
func (a *Analyzer) Analyze(stories []models.Story, comments []models.Comment) (*Report, error) {
	if len(stories) == 0 {
		return nil, ErrEmptyStoryTable
	}

	now := a.now()
	rep := &Report{
		GeneratedAt:  now,
		StoryCount:   len(stories),
		CommentCount: len(comments),
	}

	scores := make([]float64, len(stories))
	commentCounts := make([]float64, len(stories))
	ages := make([]float64, len(stories))
	external := 0
	for i, story := range stories {
		scores[i] = float64(story.Score)
		commentCounts[i] = float64(story.CommentsCount)
		ages[i] = ageHours(now, story.Time)
		if story.URL != "" {
			external++
		}
	}

	rep.AvgScore = stat.Mean(scores, nil)
	rep.AvgComments = stat.Mean(commentCounts, nil)
	rep.AvgAgeHours = stat.Mean(ages, nil)
	rep.Keywords = topKeywords(stories, a.cfg.TopKeywords)
	rep.ExternalLinksPct = float64(external) / float64(len(stories)) * 100
	rep.SelfPostsPct = float64(len(stories)-external) / float64(len(stories)) * 100
	rep.HourCounts = hourDistribution(stories)

	if len(comments) > 0 {
		lengths := make([]float64, len(comments))
		withLinks := 0
		sentimentCounts := make(map[string]int)
		for i, comment := range comments {
			lengths[i] = float64(len([]rune(comment.Text)))
			if strings.Contains(comment.Text, "http") {
				withLinks++
			}
			sentimentCounts[SentimentLabel(a.scoreText(comment.Text))]++
		}
		rep.AvgCommentLength = stat.Mean(lengths, nil)
		rep.MedianCommentLength = median(lengths)
		rep.CommentsWithLinksPct = float64(withLinks) / float64(len(comments)) * 100
		rep.Sentiments = sortSentiments(sentimentCounts)
	}

	rep.Correlation = correlation(scores, commentCounts)

	rep.Metrics = buildMetrics(rep)
	rep.ChartFiles = a.renderCharts(rep, stories, scores, commentCounts, ages)

	return rep, nil
}

// buildMetrics flattens the report into ordered Metric,Value rows. Nested
// distributions become "<metric> - <subkey>" rows.
func buildMetrics(rep *Report) []models.Metric {
	var metrics []models.Metric
	add := func(name, value string) {
		metrics = append(metrics, models.Metric{Name: name, Value: value})
	}

	add("average_score", formatFloat(rep.AvgScore))
	add("average_comments_count", formatFloat(rep.AvgComments))
	for _, kw := range rep.Keywords {
		add("top_10_keywords - "+kw.Keyword, strconv.Itoa(kw.Count))
	}
	add("average_time_to_frontpage", formatFloat(rep.AvgAgeHours))
	add("external_links_percentage", formatFloat(rep.ExternalLinksPct))
	add("self_posts_percentage", formatFloat(rep.SelfPostsPct))
	for _, hc := range rep.HourCounts {
		add("posting_time_distribution - "+strconv.Itoa(hc.Hour), strconv.Itoa(hc.Count))
	}
	if rep.CommentCount > 0 {
		add("average_comment_length", formatFloat(rep.AvgCommentLength))
		add("median_comment_length", formatFloat(rep.MedianCommentLength))
		add("comments_with_links_percentage", formatFloat(rep.CommentsWithLinksPct))
		for _, sc := range rep.Sentiments {
			add("sentiment_distribution - "+sc.Label, strconv.Itoa(sc.Count))
		}
	}
	add("score_comments_correlation", formatFloat(rep.Correlation))

	return metrics
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
