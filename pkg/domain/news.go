package domain

import "time"

// FeedSource identifies one ingestion endpoint
type FeedSource struct {
	URL   string `yaml:"url"`
	Label string `yaml:"label"`
}

// NewsItem represents a single entry extracted from a feed.
// PublishedAt is nil when the feed carried no parseable date.
type NewsItem struct {
	Title       string     `json:"title" bson:"title"`
	Link        string     `json:"link" bson:"link"`
	PublishedAt *time.Time `json:"pubDate" bson:"pub_date"`
	Summary     string     `json:"description" bson:"description"`
	Source      string     `json:"source" bson:"source"`
}

// CurationResult is the ranked set of items persisted by one run.
// RunID is not part of the artifact; database mirrors record it.
type CurationResult struct {
	RunID       string     `json:"-"`
	GeneratedAt time.Time  `json:"lastUpdated"`
	Count       int        `json:"itemCount"`
	Items       []NewsItem `json:"items"`
}

// NewCurationResult builds a result whose Count always matches Items
func NewCurationResult(generatedAt time.Time, items []NewsItem) *CurationResult {
	if items == nil {
		items = []NewsItem{}
	}
	return &CurationResult{
		GeneratedAt: generatedAt.UTC(),
		Count:       len(items),
		Items:       items,
	}
}
