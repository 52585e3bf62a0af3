package collector

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bentzi-tabak/hncollector/internal/config"
	"github.com/bentzi-tabak/hncollector/internal/models"
)

// fakeSource serves canned items and tracks fetch calls.
type fakeSource struct {
	mu    sync.Mutex
	items map[int]*models.Item
	calls map[int]int
}

func newFakeSource(items ...*models.Item) *fakeSource {
	s := &fakeSource{
		items: make(map[int]*models.Item),
		calls: make(map[int]int),
	}
	for _, item := range items {
		s.items[item.ID] = item
	}
	return s
}

func (s *fakeSource) TopStoryIDs(ctx context.Context) ([]int, error) {
	return nil, errors.New("not used")
}

func (s *fakeSource) FetchItem(ctx context.Context, id int) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[id]++
	item, ok := s.items[id]
	if !ok {
		return nil, errors.New("no such item")
	}
	return item, nil
}

func (s *fakeSource) callCount(id int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[id]
}

func TestBuildStoryTable(t *testing.T) {
	source := newFakeSource(
		&models.Item{ID: 1, Type: "story", By: "alice", Title: "First", URL: "http://a", Score: 10, Time: 1700000000, Kids: []int{11, 12}, Descendants: 5},
		&models.Item{ID: 2, Type: "story", By: "bob", Title: "Second", Score: 30, Time: 1700003600},
		&models.Item{ID: 4, Type: "story", By: "carol", Title: "Fourth", Score: 7, Time: 1700007200},
	)
	c := New(source, config.CollectorConfig{Workers: 2})

	// id 3 fails to fetch; id 4 is beyond the limit
	stories, skipped := c.BuildStoryTable(context.Background(), []int{1, 2, 3, 4}, 3)

	require.Len(t, stories, 2)
	assert.Equal(t, 1, skipped)

	assert.Equal(t, 1, stories[0].ID)
	assert.Equal(t, "alice", stories[0].Author)
	assert.Equal(t, 2, stories[0].CommentsCount)
	assert.Equal(t, 5, stories[0].Descendants)
	assert.Equal(t, []int{11, 12}, stories[0].Kids)

	assert.Equal(t, 2, stories[1].ID)
	assert.Equal(t, 0, stories[1].CommentsCount)
	assert.Equal(t, 0, stories[1].Descendants)

	assert.Zero(t, source.callCount(4))
}

func TestBuildStoryTableLimitLargerThanIDs(t *testing.T) {
	source := newFakeSource(
		&models.Item{ID: 1, Title: "Only", Time: 1700000000},
	)
	c := New(source, config.CollectorConfig{Workers: 1})

	stories, skipped := c.BuildStoryTable(context.Background(), []int{1}, 50)

	require.Len(t, stories, 1)
	assert.Zero(t, skipped)
}

func TestBuildStoryTableEmptyIDs(t *testing.T) {
	c := New(newFakeSource(), config.CollectorConfig{Workers: 1})

	stories, skipped := c.BuildStoryTable(context.Background(), nil, 20)

	assert.Empty(t, stories)
	assert.Zero(t, skipped)
}

func TestBuildCommentTable(t *testing.T) {
	source := newFakeSource(
		&models.Item{ID: 1, Type: "story", Kids: []int{11, 12}},
		&models.Item{ID: 2, Type: "story"},
		&models.Item{ID: 11, Type: "comment", By: "dave", Text: "nice", Time: 1700001000},
		&models.Item{ID: 12, Type: "comment", By: "erin", Text: "agreed", Time: 1700002000},
	)
	c := New(source, config.CollectorConfig{Workers: 2})

	stories := []models.Story{
		{ID: 1, Kids: []int{11, 12}},
		{ID: 2},
	}

	comments, skipped := c.BuildCommentTable(context.Background(), stories)

	require.Len(t, comments, 2)
	assert.Zero(t, skipped)

	assert.Equal(t, "dave", comments[0].Author)
	assert.Equal(t, 1, comments[0].ParentStory)
	assert.Equal(t, "erin", comments[1].Author)
	assert.Equal(t, 1, comments[1].ParentStory)

	// default behavior refetches the story detail for its child list
	assert.Equal(t, 1, source.callCount(1))
	assert.Equal(t, 1, source.callCount(2))
}

func TestBuildCommentTableReusesChildIDs(t *testing.T) {
	source := newFakeSource(
		&models.Item{ID: 11, Type: "comment", By: "dave", Text: "hi", Time: 1700001000},
	)
	c := New(source, config.CollectorConfig{Workers: 1, ReuseChildIDs: true})

	stories := []models.Story{{ID: 1, Kids: []int{11}}}

	comments, skipped := c.BuildCommentTable(context.Background(), stories)

	require.Len(t, comments, 1)
	assert.Zero(t, skipped)
	assert.Equal(t, 1, comments[0].ParentStory)

	// no second story round-trip
	assert.Zero(t, source.callCount(1))
}

func TestBuildCommentTableFanOutCap(t *testing.T) {
	source := newFakeSource(
		&models.Item{ID: 11, Type: "comment", Text: "a", Time: 1},
		&models.Item{ID: 12, Type: "comment", Text: "b", Time: 2},
		&models.Item{ID: 13, Type: "comment", Text: "c", Time: 3},
	)
	c := New(source, config.CollectorConfig{Workers: 1, ReuseChildIDs: true, MaxCommentsPerStory: 2})

	stories := []models.Story{{ID: 1, Kids: []int{11, 12, 13}}}

	comments, _ := c.BuildCommentTable(context.Background(), stories)

	require.Len(t, comments, 2)
	assert.Equal(t, "a", comments[0].Text)
	assert.Equal(t, "b", comments[1].Text)
	assert.Zero(t, source.callCount(13))
}

func TestBuildCommentTableSkipsFailedFetches(t *testing.T) {
	source := newFakeSource(
		&models.Item{ID: 11, Type: "comment", Text: "kept", Time: 1},
	)
	c := New(source, config.CollectorConfig{Workers: 2, ReuseChildIDs: true})

	stories := []models.Story{{ID: 1, Kids: []int{11, 99}}}

	comments, skipped := c.BuildCommentTable(context.Background(), stories)

	require.Len(t, comments, 1)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, "kept", comments[0].Text)
}

func TestBuildCommentTableNoStories(t *testing.T) {
	c := New(newFakeSource(), config.CollectorConfig{Workers: 1})

	comments, skipped := c.BuildCommentTable(context.Background(), nil)

	assert.Empty(t, comments)
	assert.Zero(t, skipped)
}
