package blogservice

import (
	"regexp"
	"strings"

	"golang.org/x/exp/slices"
)

var scriptTagPattern = regexp.MustCompile(`(?i)<\s*script[^>]*>(.*?)<\s*/\s*script\s*>`)

// slugify derives the blog slug: lowercase with spaces replaced by hyphens.
// Slugs are not unique.
func slugify(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}

func sanitizeMarkdown(markdown string) string {
	return scriptTagPattern.ReplaceAllString(markdown, "")
}

// normalizeTags trims, drops empty entries, and removes duplicates while
// keeping the first occurrence order.
func normalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if !slices.Contains(normalized, tag) {
			normalized = append(normalized, tag)
		}
	}

	return normalized
}
