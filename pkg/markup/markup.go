// Package markup pulls named fields out of feed documents with a best-effort tag scan.
//
// This is not a conformant XML parser: matching is non-greedy, so an element that
// nests another element of the same name is cut at the first closing tag.
package markup

import (
	"regexp"
	"strings"
	"sync"
)

var (
	cdataPattern = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)

	patternMu    sync.Mutex
	elements     = map[string]*regexp.Regexp{}
	openTags     = map[string]*regexp.Regexp{}
	attrPatterns = map[string]*regexp.Regexp{}
)

// ExtractTagText returns the content of the first tagName element in document.
// Every CDATA section is replaced by its content, so split sections and text
// around them are kept. Returns "" when the tag is absent.
func ExtractTagText(document, tagName string) string {
	m := elementPattern(tagName).FindStringSubmatch(document)
	if m == nil {
		return ""
	}

	return strings.TrimSpace(cdataPattern.ReplaceAllString(m[1], "${1}"))
}

// FindElements returns the inner content of every tagName element, in document order
func FindElements(document, tagName string) []string {
	matches := elementPattern(tagName).FindAllStringSubmatch(document, -1)
	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, m[1])
	}
	return blocks
}

// ExtractAttr returns the value of attr on the first opening or self-closing tagName tag
func ExtractAttr(document, tagName, attr string) string {
	for _, m := range openTagPattern(tagName).FindAllStringSubmatch(document, -1) {
		if v, ok := attrValue(m[1], attr); ok {
			return v
		}
	}
	return ""
}

func attrValue(attrs, name string) (string, bool) {
	m := attrPattern(name).FindStringSubmatch(attrs)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return strings.TrimSpace(m[1]), true
	}
	return strings.TrimSpace(m[2]), true
}

// elementPattern matches <tag ...>inner</tag>; a self-closing <tag/> never opens a match
func elementPattern(tagName string) *regexp.Regexp {
	key := strings.ToLower(tagName)

	patternMu.Lock()
	defer patternMu.Unlock()

	if re, ok := elements[key]; ok {
		return re
	}
	name := regexp.QuoteMeta(tagName)
	re := regexp.MustCompile(`(?is)<` + name + `(?:\s(?:[^>]*[^/>])?)?>(.*?)</` + name + `\s*>`)
	elements[key] = re
	return re
}

func attrPattern(name string) *regexp.Regexp {
	key := strings.ToLower(name)

	patternMu.Lock()
	defer patternMu.Unlock()

	if re, ok := attrPatterns[key]; ok {
		return re
	}
	re := regexp.MustCompile(`(?i)(?:^|\s)` + regexp.QuoteMeta(name) + `\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	attrPatterns[key] = re
	return re
}

func openTagPattern(tagName string) *regexp.Regexp {
	key := strings.ToLower(tagName)

	patternMu.Lock()
	defer patternMu.Unlock()

	if re, ok := openTags[key]; ok {
		return re
	}
	re := regexp.MustCompile(`(?is)<` + regexp.QuoteMeta(tagName) + `(\s[^>]*)?/?>`)
	openTags[key] = re
	return re
}
