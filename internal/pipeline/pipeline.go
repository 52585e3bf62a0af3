package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bentzi-tabak/hncollector/internal/analyzer"
	"github.com/bentzi-tabak/hncollector/internal/collector"
	"github.com/bentzi-tabak/hncollector/internal/config"
	"github.com/bentzi-tabak/hncollector/internal/hn"
	"github.com/bentzi-tabak/hncollector/internal/models"
	"github.com/bentzi-tabak/hncollector/internal/storage"
)

// Pipeline sequences the whole run: fetch story IDs, build and persist the
// story table, build and persist the comment table, reload both, analyze.
// A failure at any stage halts the run; files written by completed stages
// stay on disk.
type Pipeline struct {
	collector *collector.Collector
	store     *storage.Store
	analyzer  *analyzer.Analyzer
	source    collector.ItemSource
}

func New(cfg *config.Config) *Pipeline {
	client := hn.NewClient(cfg.API)
	return &Pipeline{
		collector: collector.New(client, cfg.Collector),
		store:     storage.NewStore(cfg.Output.DataDir),
		analyzer:  analyzer.New(cfg.App.Analysis, cfg.Output.DataDir),
		source:    client,
	}
}

// NewWithSource wires a custom item source, used by tests.
func NewWithSource(cfg *config.Config, source collector.ItemSource) *Pipeline {
	return &Pipeline{
		collector: collector.New(source, cfg.Collector),
		store:     storage.NewStore(cfg.Output.DataDir),
		analyzer:  analyzer.New(cfg.App.Analysis, cfg.Output.DataDir),
		source:    source,
	}
}

// Collect fetches the top numStories stories and their comments and writes
// both tables.
func (p *Pipeline) Collect(ctx context.Context, numStories int) (*models.RunResult, error) {
	start := time.Now()

	ids, err := p.source.TopStoryIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch top stories: %w", err)
	}
	log.Printf("Fetched %d top story IDs, collecting %d", len(ids), numStories)

	stories, storySkips := p.collector.BuildStoryTable(ctx, ids, numStories)
	if err := p.store.WriteStories(stories); err != nil {
		return nil, fmt.Errorf("persist stories: %w", err)
	}
	log.Printf("Saved %d stories to %s", len(stories), p.store.StoriesPath())

	comments, commentSkips := p.collector.BuildCommentTable(ctx, stories)
	if len(comments) > 0 {
		if err := p.store.WriteComments(comments); err != nil {
			return nil, fmt.Errorf("persist comments: %w", err)
		}
		log.Printf("Saved %d comments to %s", len(comments), p.store.CommentsPath())
	} else {
		log.Println("No comments data to save")
	}

	return &models.RunResult{
		StoriesRequested: numStories,
		StoriesFetched:   len(stories),
		CommentsFetched:  len(comments),
		SkippedItems:     storySkips + commentSkips,
		Duration:         time.Since(start),
	}, nil
}

// Analyze reloads the persisted tables and runs the analysis engine over
// them, writing the metrics table and chart images. A missing comments
// file means the run produced no comments and analysis proceeds with an
// empty comment table.
func (p *Pipeline) Analyze() (*analyzer.Report, error) {
	stories, err := p.store.ReadStories()
	if err != nil {
		return nil, fmt.Errorf("reload stories: %w", err)
	}

	var comments []models.Comment
	if p.store.HasComments() {
		if comments, err = p.store.ReadComments(); err != nil {
			return nil, fmt.Errorf("reload comments: %w", err)
		}
	}

	report, err := p.analyzer.Analyze(stories, comments)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	if err := p.store.WriteMetrics(report.Metrics); err != nil {
		return nil, fmt.Errorf("persist metrics: %w", err)
	}
	log.Printf("Saved %d metrics to %s, rendered %d charts",
		len(report.Metrics), p.store.MetricsPath(), len(report.ChartFiles))

	return report, nil
}

// Run executes the full collect-then-analyze sequence.
func (p *Pipeline) Run(ctx context.Context, numStories int) (*models.RunResult, *analyzer.Report, error) {
	result, err := p.Collect(ctx, numStories)
	if err != nil {
		return nil, nil, err
	}

	report, err := p.Analyze()
	if err != nil {
		return result, nil, err
	}

	return result, report, nil
}
