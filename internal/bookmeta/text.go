package bookmeta

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxDescriptionLen = 300

// SecureURL upgrades a leading http:// scheme to https://. Anything else,
// including protocol-relative and malformed URLs, passes through unchanged.
func SecureURL(u string) string {
	if strings.HasPrefix(u, "http://") {
		return "https://" + strings.TrimPrefix(u, "http://")
	}
	return u
}

// CleanText strips HTML tags and decodes entities from an upstream text
// fragment, then collapses runs of whitespace to single spaces and trims.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err == nil {
		s = doc.Text()
	}
	return strings.Join(strings.Fields(s), " ")
}

// CleanDescription is CleanText followed by a hard cut at 300 characters.
// The cut is not word-boundary-aware; consumers expect the plain slice.
func CleanDescription(s string) string {
	cleaned := CleanText(s)
	runes := []rune(cleaned)
	if len(runes) > maxDescriptionLen {
		return string(runes[:maxDescriptionLen])
	}
	return cleaned
}

// NormalizeCategories splits slash-delimited compound categories like
// "Fiction / Psychological" into segments, trims them, drops empties, and
// deduplicates case-sensitively while preserving first-seen order.
func NormalizeCategories(categories []string) []string {
	if len(categories) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, c := range categories {
		for _, part := range strings.Split(c, "/") {
			part = strings.TrimSpace(part)
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			out = append(out, part)
		}
	}
	return out
}
