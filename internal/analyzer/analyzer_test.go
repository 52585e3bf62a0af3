package analyzer

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bentzi-tabak/hncollector/internal/config"
	"github.com/bentzi-tabak/hncollector/internal/models"
)

func newTestAnalyzer(t *testing.T, now time.Time) *Analyzer {
	t.Helper()
	a := New(config.AnalysisConfig{TopKeywords: 10}, t.TempDir())
	a.now = func() time.Time { return now }
	return a
}

func metricValue(t *testing.T, metrics []models.Metric, name string) string {
	t.Helper()
	for _, m := range metrics {
		if m.Name == name {
			return m.Value
		}
	}
	t.Fatalf("metric %q not found", name)
	return ""
}

func TestAnalyzeEmptyStoryTable(t *testing.T) {
	a := newTestAnalyzer(t, time.Now())

	report, err := a.Analyze(nil, nil)

	require.ErrorIs(t, err, ErrEmptyStoryTable)
	assert.Nil(t, report)
}

func TestAnalyzeBasicStatistics(t *testing.T) {
	now := time.Unix(1700010000, 0)
	a := newTestAnalyzer(t, now)

	stories := []models.Story{
		{ID: 1, Title: "Self post", Score: 10, CommentsCount: 2, Time: 1700010000},
		{ID: 2, Title: "Linked post", URL: "http://x", Score: 30, CommentsCount: 0, Time: 1700006400},
	}

	report, err := a.Analyze(stories, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, report.StoryCount)
	assert.InDelta(t, 20.0, report.AvgScore, 1e-9)
	assert.InDelta(t, 1.0, report.AvgComments, 1e-9)
	assert.InDelta(t, 50.0, report.ExternalLinksPct, 1e-9)
	assert.InDelta(t, 50.0, report.SelfPostsPct, 1e-9)
	assert.InDelta(t, 100.0, report.ExternalLinksPct+report.SelfPostsPct, 1e-9)
	assert.InDelta(t, 0.5, report.AvgAgeHours, 1e-9)

	// opposite rankings in a two-story table: perfect negative correlation
	assert.InDelta(t, -1.0, report.Correlation, 1e-9)

	assert.Equal(t, "20", metricValue(t, report.Metrics, "average_score"))
	assert.Equal(t, "1", metricValue(t, report.Metrics, "average_comments_count"))
	assert.Equal(t, "50", metricValue(t, report.Metrics, "external_links_percentage"))
	assert.Equal(t, "50", metricValue(t, report.Metrics, "self_posts_percentage"))

	corr, err := strconv.ParseFloat(metricValue(t, report.Metrics, "score_comments_correlation"), 64)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, corr, 1e-9)
}

func TestAnalyzeCommentStatistics(t *testing.T) {
	a := newTestAnalyzer(t, time.Unix(1700010000, 0))

	stories := []models.Story{
		{ID: 1, Title: "A story", Score: 10, CommentsCount: 3, Time: 1700000000},
		{ID: 2, Title: "Another story", Score: 20, CommentsCount: 1, Time: 1700000000},
	}
	comments := []models.Comment{
		{Author: "a", Text: "check http://example.com", Time: 1700000100, ParentStory: 1},
		{Author: "b", Text: "no link here", Time: 1700000200, ParentStory: 1},
		{Author: "c", Text: "", Time: 1700000300, ParentStory: 1},
		{Author: "d", Text: "ok", Time: 1700000400, ParentStory: 2},
	}

	report, err := a.Analyze(stories, comments)
	require.NoError(t, err)

	assert.Equal(t, 4, report.CommentCount)

	// lengths 24, 12, 0, 2 → mean 9.5, median 7
	assert.InDelta(t, 9.5, report.AvgCommentLength, 1e-9)
	assert.InDelta(t, 7.0, report.MedianCommentLength, 1e-9)
	assert.InDelta(t, 25.0, report.CommentsWithLinksPct, 1e-9)

	total := 0
	for _, sc := range report.Sentiments {
		total += sc.Count
	}
	assert.Equal(t, 4, total)

	assert.Equal(t, "9.5", metricValue(t, report.Metrics, "average_comment_length"))
	assert.Equal(t, "7", metricValue(t, report.Metrics, "median_comment_length"))
	assert.Equal(t, "25", metricValue(t, report.Metrics, "comments_with_links_percentage"))
}

func TestAnalyzeSkipsCommentMetricsWhenNoComments(t *testing.T) {
	a := newTestAnalyzer(t, time.Unix(1700010000, 0))

	stories := []models.Story{
		{ID: 1, Title: "Solo", Score: 5, CommentsCount: 0, Time: 1700000000},
		{ID: 2, Title: "Duo", Score: 6, CommentsCount: 1, Time: 1700000000},
	}

	report, err := a.Analyze(stories, nil)
	require.NoError(t, err)

	for _, m := range report.Metrics {
		assert.NotContains(t, m.Name, "comment_length")
		assert.NotContains(t, m.Name, "sentiment_distribution")
	}
	assert.Empty(t, report.Sentiments)
}

func TestAnalyzeMetricOrder(t *testing.T) {
	a := newTestAnalyzer(t, time.Unix(1700010000, 0))

	stories := []models.Story{
		{ID: 1, Title: "Alpha beta gamma", Score: 1, CommentsCount: 1, Time: 1700000000},
		{ID: 2, Title: "Delta epsilon", Score: 2, CommentsCount: 2, Time: 1700003600},
	}
	comments := []models.Comment{
		{Author: "a", Text: "fine", Time: 1, ParentStory: 1},
	}

	report, err := a.Analyze(stories, comments)
	require.NoError(t, err)

	require.NotEmpty(t, report.Metrics)
	assert.Equal(t, "average_score", report.Metrics[0].Name)
	assert.Equal(t, "average_comments_count", report.Metrics[1].Name)
	assert.Equal(t, "score_comments_correlation", report.Metrics[len(report.Metrics)-1].Name)
}

func TestAnalyzeRendersCharts(t *testing.T) {
	a := newTestAnalyzer(t, time.Unix(1700010000, 0))

	stories := []models.Story{
		{ID: 1, Title: "Alpha story title", URL: "http://a", Score: 10, CommentsCount: 4, Time: 1700000000},
		{ID: 2, Title: "Beta story title", Score: 25, CommentsCount: 2, Time: 1700003600},
		{ID: 3, Title: "Gamma story title", URL: "http://c", Score: 17, CommentsCount: 8, Time: 1700007200},
	}
	comments := []models.Comment{
		{Author: "a", Text: "this is great", Time: 1, ParentStory: 1},
		{Author: "b", Text: "this is awful", Time: 2, ParentStory: 2},
	}

	report, err := a.Analyze(stories, comments)
	require.NoError(t, err)

	assert.NotEmpty(t, report.ChartFiles)
}
