package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config is invalid: %v", err)
	}
	if len(cfg.Feeds) != 7 {
		t.Errorf("Expected 7 default feeds, got %d", len(cfg.Feeds))
	}
	if cfg.OutputPath != "data/news.json" {
		t.Errorf("Unexpected output path %q", cfg.OutputPath)
	}
	if cfg.FetchTimeout != 15*time.Second || cfg.RecencyWindow != 7*24*time.Hour || cfg.MaxItems != 20 {
		t.Errorf("Unexpected limits: %s %s %d", cfg.FetchTimeout, cfg.RecencyWindow, cfg.MaxItems)
	}
	if !strings.HasPrefix(cfg.UserAgent, "APISecurityNewsBot/") {
		t.Errorf("Unexpected user agent %q", cfg.UserAgent)
	}
	for _, kw := range cfg.Keywords {
		if kw != strings.ToLower(kw) {
			t.Errorf("Default keyword %q is not lowercase", kw)
		}
	}
}

func TestDefault_ReturnsCopies(t *testing.T) {
	a := Default()
	a.Feeds[0].Label = "changed"
	a.Keywords[0] = "changed"

	b := Default()
	if b.Feeds[0].Label == "changed" || b.Keywords[0] == "changed" {
		t.Error("Default() shares slices between calls")
	}
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
feeds:
  - url: https://example.com/feed.xml
    label: Example
keywords: [" JWT ", "", "GraphQL"]
parser: gofeed
fetch_timeout: 5s
max_items: 10
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Feeds) != 1 || cfg.Feeds[0].Label != "Example" {
		t.Errorf("Unexpected feeds: %+v", cfg.Feeds)
	}
	if len(cfg.Keywords) != 2 || cfg.Keywords[0] != "jwt" || cfg.Keywords[1] != "graphql" {
		t.Errorf("Unexpected keywords: %v", cfg.Keywords)
	}
	if cfg.Parser != "gofeed" {
		t.Errorf("Expected parser gofeed, got %q", cfg.Parser)
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %s", cfg.FetchTimeout)
	}
	if cfg.MaxItems != 10 {
		t.Errorf("Expected max items 10, got %d", cfg.MaxItems)
	}
	// Untouched keys keep defaults
	if cfg.RecencyWindow != DefaultRecencyWindow || cfg.OutputPath != DefaultOutputPath {
		t.Errorf("Expected defaults for unset keys, got %s %q", cfg.RecencyWindow, cfg.OutputPath)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown parser", "parser: xml\n"},
		{"feed without url", "feeds:\n  - label: Nameless\n"},
		{"feed without label", "feeds:\n  - url: https://example.com\n"},
		{"only blank keywords", "keywords: [\"\", \"  \"]\n"},
		{"negative max items", "max_items: -1\n"},
		{"malformed yaml", "feeds: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestNormalizeKeywords(t *testing.T) {
	got := NormalizeKeywords([]string{"  OAuth ", "", "\t", "API Key"})
	want := []string{"oauth", "api key"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keyword %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
