package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"api-security-news/pkg/domain"

	"gopkg.in/yaml.v3"
)

const (
	DefaultOutputPath    = "data/news.json"
	DefaultFetchTimeout  = 15 * time.Second
	DefaultRecencyWindow = 7 * 24 * time.Hour
	DefaultMaxItems      = 20
	DefaultUserAgent     = "APISecurityNewsBot/1.0 (+https://github.com/api-security-news)"
)

// Config is built once at startup and handed to the pipeline; nothing reads it globally
type Config struct {
	Feeds         []domain.FeedSource `yaml:"feeds"`
	Keywords      []string            `yaml:"keywords"`
	Parser        string              `yaml:"parser"`
	OutputPath    string              `yaml:"output_path"`
	FetchTimeout  time.Duration       `yaml:"fetch_timeout"`
	RecencyWindow time.Duration       `yaml:"recency_window"`
	MaxItems      int                 `yaml:"max_items"`
	UserAgent     string              `yaml:"user_agent"`
}

// Default returns the built-in feed and keyword tables
func Default() *Config {
	return &Config{
		Feeds:         append([]domain.FeedSource(nil), defaultFeeds...),
		Keywords:      append([]string(nil), defaultKeywords...),
		Parser:        "tagscan",
		OutputPath:    DefaultOutputPath,
		FetchTimeout:  DefaultFetchTimeout,
		RecencyWindow: DefaultRecencyWindow,
		MaxItems:      DefaultMaxItems,
		UserAgent:     DefaultUserAgent,
	}
}

// Load reads a YAML file on top of the defaults. Keys missing from the file keep
// their default value; a feeds or keywords list in the file replaces the built-in one.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Keywords = NormalizeKeywords(cfg.Keywords)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	if len(c.Feeds) == 0 {
		return fmt.Errorf("at least one feed is required")
	}
	for i, f := range c.Feeds {
		if strings.TrimSpace(f.URL) == "" {
			return fmt.Errorf("feeds[%d].url is required", i)
		}
		if strings.TrimSpace(f.Label) == "" {
			return fmt.Errorf("feeds[%d].label is required", i)
		}
	}
	if len(c.Keywords) == 0 {
		return fmt.Errorf("at least one keyword is required")
	}
	switch c.Parser {
	case "tagscan", "gofeed":
	default:
		return fmt.Errorf("parser must be tagscan or gofeed, got %q", c.Parser)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output_path is required")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive")
	}
	if c.RecencyWindow <= 0 {
		return fmt.Errorf("recency_window must be positive")
	}
	if c.MaxItems <= 0 {
		return fmt.Errorf("max_items must be positive")
	}
	return nil
}

// NormalizeKeywords lowercases, trims and drops blank keywords
func NormalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if trimmed := strings.ToLower(strings.TrimSpace(kw)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
