package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	LoadDefault()
	cfg := Get()

	assert.Equal(t, "https://hacker-news.firebaseio.com/v0", cfg.API.BaseURL)
	assert.Equal(t, Duration(30*time.Second), cfg.API.Timeout)
	assert.Equal(t, ".", cfg.Output.DataDir)
	assert.Equal(t, 20, cfg.App.Stories)
	assert.Equal(t, 10, cfg.App.Analysis.TopKeywords)
	assert.Zero(t, cfg.Collector.Workers)
	assert.False(t, cfg.Collector.ReuseChildIDs)
}

func TestLoadFromFile(t *testing.T) {
	content := `
api:
  base_url: http://localhost:8080/v0
  timeout: 5s
collector:
  workers: 8
  max_comments_per_story: 50
  reuse_child_ids: true
output:
  data_dir: /tmp/out
app:
  stories: 5
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	require.NoError(t, Load(path))
	cfg := Get()

	assert.Equal(t, "http://localhost:8080/v0", cfg.API.BaseURL)
	assert.Equal(t, Duration(5*time.Second), cfg.API.Timeout)
	assert.Equal(t, 8, cfg.Collector.Workers)
	assert.Equal(t, 50, cfg.Collector.MaxCommentsPerStory)
	assert.True(t, cfg.Collector.ReuseChildIDs)
	assert.Equal(t, "/tmp/out", cfg.Output.DataDir)
	assert.Equal(t, 5, cfg.App.Stories)

	// unset keys still get defaults
	assert.Equal(t, 10, cfg.App.Analysis.TopKeywords)
	assert.Equal(t, "➜", cfg.App.CLI.Prompt)
}

func TestLoadMissingFile(t *testing.T) {
	assert.Error(t, Load(filepath.Join(t.TempDir(), "nope.yaml")))
}
