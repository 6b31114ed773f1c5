package parser

import "api-security-news/pkg/domain"

// Parser turns a raw feed document into normalized news items
type Parser interface {
	// Parse extracts items in document order and tags each with sourceLabel
	Parse(document []byte, sourceLabel string) ([]domain.NewsItem, error)
}

// Kind names a Parser implementation in configuration
type Kind string

const (
	// TagScan is the default best-effort tag scanner
	TagScan Kind = "tagscan"
	// Gofeed uses a conformant RSS/Atom parser
	Gofeed Kind = "gofeed"
)

// New returns the parser for kind, defaulting to the tag scanner
func New(kind Kind) Parser {
	switch kind {
	case Gofeed:
		return NewGofeedParser()
	default:
		return NewTagScanParser()
	}
}
