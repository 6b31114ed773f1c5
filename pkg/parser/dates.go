package parser

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Feed dates are overwhelmingly RFC 822 style (RSS) or RFC 3339 (Atom).
var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC822Z,
	time.RFC822,
	time.RFC3339Nano,
	time.RFC3339,
}

// time.Parse gives a zone abbreviation it does not know a zero offset, so the
// RFC 822 zones feeds actually use are rewritten to numeric offsets first.
var zoneOffsets = map[string]string{
	"UT":  "+0000",
	"UTC": "+0000",
	"GMT": "+0000",
	"EST": "-0500",
	"EDT": "-0400",
	"CST": "-0600",
	"CDT": "-0500",
	"MST": "-0700",
	"MDT": "-0600",
	"PST": "-0800",
	"PDT": "-0700",
}

// ParseDate normalizes feed date text to UTC. Returns nil when the text is
// empty or cannot be understood, never a zero time.
func ParseDate(text string) *time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	text = numericZone(text)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return utc(t)
		}
	}

	t, err := dateparse.ParseIn(text, time.UTC)
	if err != nil || t.IsZero() {
		return nil
	}
	return utc(t)
}

// numericZone replaces a trailing zone abbreviation with its offset
func numericZone(text string) string {
	i := strings.LastIndexByte(text, ' ')
	if i < 0 {
		return text
	}
	if offset, ok := zoneOffsets[strings.ToUpper(text[i+1:])]; ok {
		return text[:i+1] + offset
	}
	return text
}

func utc(t time.Time) *time.Time {
	u := t.UTC()
	return &u
}
