package models

import (
	"time"
)

// Story is one normalized row of the story table.
type Story struct {
	ID            int
	Title         string
	URL           string
	Score         int
	Author        string
	Time          int64
	CommentsCount int
	Type          string
	Descendants   int

	// Kids carries the child-comment IDs seen at fetch time so the
	// comment aggregator can skip the second item round-trip. Never
	// persisted.
	Kids []int
}

// Comment is one row of the comment table.
type Comment struct {
	Author      string
	Text        string
	Time        int64
	ParentStory int
}

// Metric is one flattened row of the statistical analysis output.
type Metric struct {
	Name  string
	Value string
}

// RunResult summarizes a single collection run.
type RunResult struct {
	StoriesRequested int
	StoriesFetched   int
	CommentsFetched  int
	SkippedItems     int
	Duration         time.Duration
}
