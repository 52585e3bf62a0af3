package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	API       APIConfig       `yaml:"api"`
	Collector CollectorConfig `yaml:"collector"`
	Output    OutputConfig    `yaml:"output"`
	App       AppConfig       `yaml:"app"`
}

type APIConfig struct {
	BaseURL string   `yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`
}

// Duration accepts yaml values like "30s" as well as raw nanosecond
// integers.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw interface{}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	case int:
		*d = Duration(v)
	default:
		return fmt.Errorf("invalid duration value %v", raw)
	}
	return nil
}

type CollectorConfig struct {
	// Workers is the fetch pool size; 0 picks a platform default.
	Workers int `yaml:"workers"`
	// MaxCommentsPerStory caps the per-story comment fan-out; 0 = no cap.
	MaxCommentsPerStory int `yaml:"max_comments_per_story"`
	// ReuseChildIDs skips the second story fetch in the comment
	// aggregator and uses the child list from the first pass instead.
	ReuseChildIDs bool `yaml:"reuse_child_ids"`
}

type OutputConfig struct {
	DataDir string `yaml:"data_dir"`
}

type AppConfig struct {
	Stories  int            `yaml:"stories"`
	LogLevel string         `yaml:"log_level"`
	CLI      CLIConfig      `yaml:"cli"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

type CLIConfig struct {
	Prompt string `yaml:"prompt"`
}

type AnalysisConfig struct {
	TopKeywords int `yaml:"top_keywords"`
}

var cfg *Config

func Load(path string) error {
	_ = godotenv.Load()

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	cfg = &Config{}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(file))), cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	setDefaults()

	return nil
}

func Get() *Config {
	if cfg == nil {
		LoadDefault()
	}
	return cfg
}

func LoadDefault() {
	cfg = &Config{}
	setDefaults()
}

func setDefaults() {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://hacker-news.firebaseio.com/v0"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = Duration(30 * time.Second)
	}
	if cfg.Output.DataDir == "" {
		cfg.Output.DataDir = "."
	}
	if cfg.App.Stories == 0 {
		cfg.App.Stories = 20
	}
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = "info"
	}
	if cfg.App.CLI.Prompt == "" {
		cfg.App.CLI.Prompt = "➜"
	}
	if cfg.App.Analysis.TopKeywords == 0 {
		cfg.App.Analysis.TopKeywords = 10
	}
}
