package parser

import (
	"api-security-news/pkg/domain"
	"api-security-news/pkg/markup"
	"api-security-news/pkg/sanitize"
)

// TagScanParser extracts RSS <item> (or Atom <entry>) blocks with the markup scanner.
// It never fails: missing fields become empty strings or a nil date.
type TagScanParser struct{}

// NewTagScanParser creates a new tag scanning parser
func NewTagScanParser() *TagScanParser {
	return &TagScanParser{}
}

// Parse implements Parser
func (p *TagScanParser) Parse(document []byte, sourceLabel string) ([]domain.NewsItem, error) {
	return ParseItems(string(document), sourceLabel), nil
}

// ParseItems scans document for item blocks. Atom entries are only considered
// when the document has no RSS items at all.
func ParseItems(document, sourceLabel string) []domain.NewsItem {
	if blocks := markup.FindElements(document, "item"); len(blocks) > 0 {
		items := make([]domain.NewsItem, 0, len(blocks))
		for _, block := range blocks {
			items = append(items, rssItem(block, sourceLabel))
		}
		return items
	}

	blocks := markup.FindElements(document, "entry")
	items := make([]domain.NewsItem, 0, len(blocks))
	for _, block := range blocks {
		items = append(items, atomEntry(block, sourceLabel))
	}
	return items
}

func rssItem(block, sourceLabel string) domain.NewsItem {
	return domain.NewsItem{
		Title:       markup.ExtractTagText(block, "title"),
		Link:        markup.ExtractTagText(block, "link"),
		PublishedAt: ParseDate(firstNonEmpty(block, "pubDate", "dc:date")),
		Summary:     sanitize.Sanitize(firstNonEmpty(block, "description", "content:encoded")),
		Source:      sourceLabel,
	}
}

func atomEntry(block, sourceLabel string) domain.NewsItem {
	link := markup.ExtractTagText(block, "link")
	if link == "" {
		link = markup.ExtractAttr(block, "link", "href")
	}

	return domain.NewsItem{
		Title:       markup.ExtractTagText(block, "title"),
		Link:        link,
		PublishedAt: ParseDate(firstNonEmpty(block, "published", "updated")),
		Summary:     sanitize.Sanitize(firstNonEmpty(block, "summary", "content")),
		Source:      sourceLabel,
	}
}

func firstNonEmpty(block string, tagNames ...string) string {
	for _, name := range tagNames {
		if text := markup.ExtractTagText(block, name); text != "" {
			return text
		}
	}
	return ""
}
