package parser

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"api-security-news/pkg/domain"
	"api-security-news/pkg/sanitize"

	"github.com/mmcdole/gofeed"
)

// GofeedParser handles RSS/Atom/JSON feed parsing with gofeed
type GofeedParser struct{}

// NewGofeedParser creates a new gofeed backed parser
func NewGofeedParser() *GofeedParser {
	return &GofeedParser{}
}

// Parse implements Parser. Unlike the tag scanner it rejects documents that are not feeds.
func (p *GofeedParser) Parse(document []byte, sourceLabel string) ([]domain.NewsItem, error) {
	// gofeed.Parser keeps per-parse state, so each call gets its own
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]domain.NewsItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}

		description := item.Description
		if description == "" {
			description = item.Content
		}

		items = append(items, domain.NewsItem{
			Title:       strings.TrimSpace(item.Title),
			Link:        strings.TrimSpace(item.Link),
			PublishedAt: publishedAt(item),
			Summary:     sanitize.Sanitize(description),
			Source:      sourceLabel,
		})
	}

	return items, nil
}

// publishedAt prefers ParseDate on the raw text so both parsers agree on zone handling
func publishedAt(item *gofeed.Item) *time.Time {
	if t := ParseDate(item.Published); t != nil {
		return t
	}
	if item.PublishedParsed != nil {
		return utc(*item.PublishedParsed)
	}
	if t := ParseDate(item.Updated); t != nil {
		return t
	}
	if item.UpdatedParsed != nil {
		return utc(*item.UpdatedParsed)
	}
	return nil
}
