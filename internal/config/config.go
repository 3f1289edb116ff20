// Package config loads pipeline settings from an optional YAML file.
// Flags take precedence over file values; the file covers the knobs
// people want to pin per project (output dir, politeness, chunking).
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable pipeline settings.
type Config struct {
	// OutputDir is where rendered files are written. Empty means the
	// current working directory.
	OutputDir string `yaml:"output_dir"`

	// WrapWidth is the soft-wrap column for converted markdown.
	// Zero disables wrapping.
	WrapWidth int `yaml:"wrap_width"`

	// TimeoutSeconds bounds each HTTP fetch.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// UserAgent is sent with every fetch.
	UserAgent string `yaml:"user_agent"`

	// Jobs is the number of pages processed concurrently in --all mode.
	Jobs int `yaml:"jobs"`

	// RatePerSecond caps crawl fetches. Zero disables the limiter.
	RatePerSecond float64 `yaml:"rate_per_second"`

	// MaxPages caps discovery in --all mode.
	MaxPages int `yaml:"max_pages"`

	// ChunkSize is the word budget per embeddings chunk.
	ChunkSize int `yaml:"chunk_size"`

	// Model is the embeddings model name.
	Model string `yaml:"model"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		WrapWidth:      80,
		TimeoutSeconds: 30,
		UserAgent:      "PageMD/1.0 (+https://github.com/calder-ross/pagemd)",
		Jobs:           4,
		MaxPages:       100,
		ChunkSize:      512,
	}
}

// Load reads a YAML config file and merges it over the defaults.
// Fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.WrapWidth < 0 {
		return fmt.Errorf("wrap_width must be >= 0, got %d", c.WrapWidth)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	if c.Jobs <= 0 {
		return fmt.Errorf("jobs must be positive, got %d", c.Jobs)
	}
	if c.RatePerSecond < 0 {
		return fmt.Errorf("rate_per_second must be >= 0, got %g", c.RatePerSecond)
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("max_pages must be positive, got %d", c.MaxPages)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	return nil
}

// Timeout returns the fetch timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
