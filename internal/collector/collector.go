package collector

import (
	"context"
	"log"

	"github.com/bentzi-tabak/hncollector/internal/config"
	"github.com/bentzi-tabak/hncollector/internal/hn"
	"github.com/bentzi-tabak/hncollector/internal/models"
)

// ItemSource is the slice of the HN API the collector needs.
type ItemSource interface {
	TopStoryIDs(ctx context.Context) ([]int, error)
	FetchItem(ctx context.Context, id int) (*models.Item, error)
}

// Collector turns raw API items into the story and comment tables.
type Collector struct {
	source ItemSource
	cfg    config.CollectorConfig
}

func New(source ItemSource, cfg config.CollectorConfig) *Collector {
	return &Collector{
		source: source,
		cfg:    cfg,
	}
}

// BuildStoryTable truncates ids to the first limit entries, fetches each in
// parallel and normalizes the non-absent results. Source order is
// preserved; absent fetches are dropped, so the table may be shorter than
// limit. The second return value counts the dropped items.
func (c *Collector) BuildStoryTable(ctx context.Context, ids []int, limit int) ([]models.Story, int) {
	if limit > len(ids) {
		limit = len(ids)
	}
	if limit < 0 {
		limit = 0
	}

	items, skipped := hn.RetrieveAll(ctx, ids[:limit], c.cfg.Workers, c.source.FetchItem)

	stories := make([]models.Story, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		stories = append(stories, models.Story{
			ID:            item.ID,
			Title:         item.Title,
			URL:           item.URL,
			Score:         item.Score,
			Author:        item.By,
			Time:          item.Time,
			CommentsCount: len(item.Kids),
			Type:          item.Type,
			Descendants:   item.Descendants,
			Kids:          item.Kids,
		})
	}

	if skipped > 0 {
		log.Printf("Skipped %d of %d stories (fetch failed or empty)", skipped, limit)
	}

	return stories, skipped
}

// BuildCommentTable fetches the top-level comments of every story and tags
// each with its parent story ID. By default the story detail is refetched
// to obtain the child list; with ReuseChildIDs the list carried from the
// story pass is used and the extra round-trip is skipped. Output follows
// story order, then per-story fetch order.
func (c *Collector) BuildCommentTable(ctx context.Context, stories []models.Story) ([]models.Comment, int) {
	var comments []models.Comment
	totalSkipped := 0

	for _, story := range stories {
		kids := story.Kids
		if !c.cfg.ReuseChildIDs {
			item, err := c.source.FetchItem(ctx, story.ID)
			if err != nil || item == nil {
				totalSkipped++
				continue
			}
			kids = item.Kids
		}

		if len(kids) == 0 {
			continue
		}
		if c.cfg.MaxCommentsPerStory > 0 && len(kids) > c.cfg.MaxCommentsPerStory {
			kids = kids[:c.cfg.MaxCommentsPerStory]
		}

		items, skipped := hn.RetrieveAll(ctx, kids, c.cfg.Workers, c.source.FetchItem)
		totalSkipped += skipped

		for _, item := range items {
			if item == nil {
				continue
			}
			comments = append(comments, models.Comment{
				Author:      item.By,
				Text:        item.Text,
				Time:        item.Time,
				ParentStory: story.ID,
			})
		}
	}

	if totalSkipped > 0 {
		log.Printf("Skipped %d comment fetches (fetch failed or empty)", totalSkipped)
	}

	return comments, totalSkipped
}
