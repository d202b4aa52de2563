package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"arxivdigest/internal/domain"
)

const (
	enrichEndpointEnv = "OPENROUTER_API_URL"
	enrichAPIKeyEnv   = "OPENROUTER_API_KEY"
	enrichModelEnv    = "OPENROUTER_KEYWORD_MODEL"
	enrichRefererEnv  = "OPENROUTER_HTTP_REFERER"
	enrichTitleEnv    = "OPENROUTER_X_TITLE"
	enrichCountEnv    = "OPENROUTER_KEYWORD_COUNT"
)

// Config holds high-level settings required across the application.
// Unknown keys in the file are ignored; a file that cannot be parsed is a
// fatal input error. The flat favorite_authors/keywords keys keep the file
// compatible with the plain JSON watch-list config (JSON parses as YAML).
type Config struct {
	Logging         LoggingConfig    `yaml:"logging"`
	Output          OutputConfig     `yaml:"output"`
	Cache           CacheConfig      `yaml:"cache"`
	Enrichment      EnrichmentConfig `yaml:"enrichment"`
	Sources         []SourceConfig   `yaml:"sources"`
	FavoriteAuthors []string         `yaml:"favorite_authors"`
	Keywords        []string         `yaml:"keywords"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// OutputConfig describes where the generated page goes.
type OutputConfig struct {
	Path       string `yaml:"path"`
	ArchiveDir string `yaml:"archiveDir"`
}

// CacheConfig enables the on-disk collaborator cache when Path is set.
type CacheConfig struct {
	Path string `yaml:"path"`
}

// EnrichmentConfig defines how to contact the keyword/summary API.
type EnrichmentConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"apiKey"`
	Referer      string `yaml:"referer"`
	Title        string `yaml:"title"`
	KeywordCount int    `yaml:"keywordCount"`
}

// SourceConfig describes one listing page to process per run.
type SourceConfig struct {
	Key     string `yaml:"key"`
	Label   string `yaml:"label"`
	URL     string `yaml:"url"`
	Scanner string `yaml:"scanner"`
}

// Preferences returns the normalized watch lists.
func (c Config) Preferences() domain.Preferences {
	return domain.Preferences{
		FavoriteAuthors: c.FavoriteAuthors,
		Keywords:        c.Keywords,
	}
}

// Load reads the configuration file (if present) and applies environment
// overrides. A missing file yields the defaults; an unreadable or malformed
// file is an error.
func Load(path string) (Config, error) {
	cfg := defaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No file is fine; the defaults cover a credential-less run.
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.normalize()

	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(enrichEndpointEnv); v != "" {
		c.Enrichment.Endpoint = v
	}
	if v := os.Getenv(enrichAPIKeyEnv); v != "" {
		c.Enrichment.APIKey = v
	}
	if v := os.Getenv(enrichModelEnv); v != "" {
		c.Enrichment.Model = v
	}
	if v := os.Getenv(enrichRefererEnv); v != "" {
		c.Enrichment.Referer = v
	}
	if v := os.Getenv(enrichTitleEnv); v != "" {
		c.Enrichment.Title = v
	}
	if v := os.Getenv(enrichCountEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Enrichment.KeywordCount = n
		}
	}
}

func (c *Config) normalize() {
	c.FavoriteAuthors = trimList(c.FavoriteAuthors)
	c.Keywords = trimList(c.Keywords)

	if c.Enrichment.KeywordCount < 1 {
		c.Enrichment.KeywordCount = 2
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Output.Path == "" {
		c.Output.Path = "index.html"
	}
	if len(c.Sources) == 0 {
		c.Sources = defaultConfig().Sources
	}
	for i := range c.Sources {
		if c.Sources[i].Scanner == "" {
			c.Sources[i].Scanner = "arxiv"
		}
		if c.Sources[i].Label == "" {
			c.Sources[i].Label = c.Sources[i].Key
		}
	}
}

func trimList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Output:  OutputConfig{Path: "index.html"},
		Enrichment: EnrichmentConfig{
			Endpoint:     "https://openrouter.ai/api/v1/chat/completions",
			Model:        "qwen/qwen-2.5-7b-instruct",
			Title:        "arXiv Daily Digest",
			KeywordCount: 2,
		},
		Sources: []SourceConfig{
			{
				Key:     "cs.CV",
				Label:   "Computer Vision (cs.CV)",
				URL:     "https://arxiv.org/list/cs.CV/recent?skip=0&show=2000",
				Scanner: "arxiv",
			},
			{
				Key:     "cs.RO",
				Label:   "Robotics (cs.RO)",
				URL:     "https://arxiv.org/list/cs.RO/recent?skip=0&show=2000",
				Scanner: "arxiv",
			},
		},
	}
}
