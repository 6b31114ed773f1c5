package sanitize

import (
	"regexp"
	"strings"
)

// MaxLength is the summary length limit, counted in runes
const MaxLength = 300

var tagPattern = regexp.MustCompile(`<[^>]*>`)

var entities = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
)

var angleBrackets = strings.NewReplacer("<", "", ">", "")

// Sanitize turns a feed description into plain display text.
// The output never contains '<' or '>' and Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(raw string) string {
	text := tagPattern.ReplaceAllString(raw, "")
	// Decoded &lt; and &gt; are literal text, only the brackets themselves are dropped.
	// Every pass shortens the text or leaves it unchanged, so this settles.
	for {
		next := angleBrackets.Replace(entities.Replace(text))
		if next == text {
			break
		}
		text = next
	}

	text = strings.Join(strings.Fields(text), " ")
	return strings.TrimSpace(truncate(text, MaxLength))
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
