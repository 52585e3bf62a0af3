package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bentzi-tabak/hncollector/internal/models"
)

const (
	StoriesFile  = "top_stories.csv"
	CommentsFile = "comments.csv"
	MetricsFile  = "statistical_analysis.csv"
)

var (
	storyHeader   = []string{"id", "title", "url", "score", "author", "time", "comments_count", "type", "descendants"}
	commentHeader = []string{"author", "text", "time", "parent_story"}
	metricHeader  = []string{"Metric", "Value"}
)

// Store reads and writes the pipeline's CSV tables under a single
// directory. Writes truncate; last writer wins.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	if dir == "" {
		dir = "."
	}
	return &Store{dir: dir}
}

func (s *Store) StoriesPath() string  { return filepath.Join(s.dir, StoriesFile) }
func (s *Store) CommentsPath() string { return filepath.Join(s.dir, CommentsFile) }
func (s *Store) MetricsPath() string  { return filepath.Join(s.dir, MetricsFile) }

func (s *Store) WriteStories(stories []models.Story) error {
	rows := make([][]string, 0, len(stories))
	for _, st := range stories {
		rows = append(rows, []string{
			strconv.Itoa(st.ID),
			st.Title,
			st.URL,
			strconv.Itoa(st.Score),
			st.Author,
			strconv.FormatInt(st.Time, 10),
			strconv.Itoa(st.CommentsCount),
			st.Type,
			strconv.Itoa(st.Descendants),
		})
	}
	return s.writeTable(s.StoriesPath(), storyHeader, rows)
}

func (s *Store) WriteComments(comments []models.Comment) error {
	rows := make([][]string, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, []string{
			c.Author,
			c.Text,
			strconv.FormatInt(c.Time, 10),
			strconv.Itoa(c.ParentStory),
		})
	}
	return s.writeTable(s.CommentsPath(), commentHeader, rows)
}

func (s *Store) WriteMetrics(metrics []models.Metric) error {
	rows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, []string{m.Name, m.Value})
	}
	return s.writeTable(s.MetricsPath(), metricHeader, rows)
}

func (s *Store) ReadStories() ([]models.Story, error) {
	rows, err := s.readTable(s.StoriesPath(), len(storyHeader))
	if err != nil {
		return nil, err
	}

	stories := make([]models.Story, 0, len(rows))
	for i, row := range rows {
		st := models.Story{
			Title:  row[1],
			URL:    row[2],
			Author: row[4],
			Type:   row[7],
		}
		if st.ID, err = strconv.Atoi(row[0]); err != nil {
			return nil, fmt.Errorf("stories row %d: bad id %q: %w", i+1, row[0], err)
		}
		if st.Score, err = strconv.Atoi(row[3]); err != nil {
			return nil, fmt.Errorf("stories row %d: bad score %q: %w", i+1, row[3], err)
		}
		if st.Time, err = strconv.ParseInt(row[5], 10, 64); err != nil {
			return nil, fmt.Errorf("stories row %d: bad time %q: %w", i+1, row[5], err)
		}
		if st.CommentsCount, err = strconv.Atoi(row[6]); err != nil {
			return nil, fmt.Errorf("stories row %d: bad comments_count %q: %w", i+1, row[6], err)
		}
		if st.Descendants, err = strconv.Atoi(row[8]); err != nil {
			return nil, fmt.Errorf("stories row %d: bad descendants %q: %w", i+1, row[8], err)
		}
		stories = append(stories, st)
	}

	return stories, nil
}

func (s *Store) ReadComments() ([]models.Comment, error) {
	rows, err := s.readTable(s.CommentsPath(), len(commentHeader))
	if err != nil {
		return nil, err
	}

	comments := make([]models.Comment, 0, len(rows))
	for i, row := range rows {
		c := models.Comment{
			Author: row[0],
			Text:   row[1],
		}
		if c.Time, err = strconv.ParseInt(row[2], 10, 64); err != nil {
			return nil, fmt.Errorf("comments row %d: bad time %q: %w", i+1, row[2], err)
		}
		if c.ParentStory, err = strconv.Atoi(row[3]); err != nil {
			return nil, fmt.Errorf("comments row %d: bad parent_story %q: %w", i+1, row[3], err)
		}
		comments = append(comments, c)
	}

	return comments, nil
}

// HasComments reports whether a comment table exists on disk. Runs with no
// comments never write one.
func (s *Store) HasComments() bool {
	_, err := os.Stat(s.CommentsPath())
	return err == nil
}

func (s *Store) writeTable(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row to %s: %w", path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

func (s *Store) readTable(path string, fields int) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = fields

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}

	return records[1:], nil
}
