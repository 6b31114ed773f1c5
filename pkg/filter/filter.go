package filter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"api-security-news/pkg/domain"
)

// ItemFilter decides whether a news item stays in the candidate pool
type ItemFilter interface {
	ShouldKeep(ctx context.Context, item domain.NewsItem) (bool, error)
}

// FilterItems applies all filters to a list of items, preserving order
func FilterItems(ctx context.Context, items []domain.NewsItem, filters ...ItemFilter) ([]domain.NewsItem, error) {
	filtered := make([]domain.NewsItem, 0, len(items))

	for _, item := range items {
		keep := true
		for _, f := range filters {
			shouldKeep, err := f.ShouldKeep(ctx, item)
			if err != nil {
				return nil, fmt.Errorf("filter error for item %q: %w", item.Link, err)
			}
			if !shouldKeep {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, item)
		}
	}

	return filtered, nil
}

// IsRelevant reports whether any keyword occurs in the item's title or summary,
// ignoring case. Blank keywords never match.
func IsRelevant(item domain.NewsItem, keywords []string) bool {
	text := strings.ToLower(item.Title + " " + item.Summary)
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// RelevanceFilter keeps items matching at least one keyword
type RelevanceFilter struct {
	keywords []string
}

// NewRelevanceFilter creates a new keyword relevance filter
func NewRelevanceFilter(keywords []string) *RelevanceFilter {
	return &RelevanceFilter{
		keywords: keywords,
	}
}

// ShouldKeep returns true if the item mentions a configured keyword
func (f *RelevanceFilter) ShouldKeep(ctx context.Context, item domain.NewsItem) (bool, error) {
	return IsRelevant(item, f.keywords), nil
}

// RecencyFilter keeps dated items published in [now - window, now].
// Items without a publication date or dated after now are dropped.
type RecencyFilter struct {
	now    time.Time
	cutoff time.Time
}

// NewRecencyFilter creates a new recency filter anchored at now
func NewRecencyFilter(now time.Time, window time.Duration) *RecencyFilter {
	return &RecencyFilter{
		now:    now,
		cutoff: now.Add(-window),
	}
}

// ShouldKeep returns false for undated, future-dated and out of window items
func (f *RecencyFilter) ShouldKeep(ctx context.Context, item domain.NewsItem) (bool, error) {
	if item.PublishedAt == nil {
		return false, nil
	}
	pub := *item.PublishedAt
	return !pub.Before(f.cutoff) && !pub.After(f.now), nil
}

// DuplicateLinkFilter drops items whose link was already seen by this filter.
// It is stateful and meant for a single run; empty links are never treated as duplicates.
type DuplicateLinkFilter struct {
	seen map[string]bool
}

// NewDuplicateLinkFilter creates a new duplicate link filter
func NewDuplicateLinkFilter() *DuplicateLinkFilter {
	return &DuplicateLinkFilter{
		seen: make(map[string]bool),
	}
}

// ShouldKeep returns false if the link was seen before
func (f *DuplicateLinkFilter) ShouldKeep(ctx context.Context, item domain.NewsItem) (bool, error) {
	link := strings.TrimSpace(item.Link)
	if link == "" {
		return true, nil
	}
	if f.seen[link] {
		return false, nil
	}
	f.seen[link] = true
	return true, nil
}
