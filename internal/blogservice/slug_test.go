package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	testCases := []struct {
		name     string
		title    string
		expected string
	}{
		{
			name:     "simple title",
			title:    "My First Blog",
			expected: "my-first-blog",
		},
		{
			name:     "already lowercase",
			title:    "hello world",
			expected: "hello-world",
		},
		{
			name:     "single word",
			title:    "Go",
			expected: "go",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, slugify(tc.title))
		})
	}
}

func TestSanitizeMarkdown(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain markdown untouched",
			input:    "# Title\n\nSome **bold** text.",
			expected: "# Title\n\nSome **bold** text.",
		},
		{
			name:     "script tag removed",
			input:    "before<script>alert('x')</script>after",
			expected: "beforeafter",
		},
		{
			name:     "script tag with attributes removed",
			input:    `<script type="text/javascript">alert('x')</script>rest`,
			expected: "rest",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, sanitizeMarkdown(tc.input))
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	testCases := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "lowercased and trimmed",
			input:    []string{" Go ", "Databases"},
			expected: []string{"go", "databases"},
		},
		{
			name:     "duplicates removed keeping first occurrence",
			input:    []string{"go", "GO", "web", "go"},
			expected: []string{"go", "web"},
		},
		{
			name:     "empty entries dropped",
			input:    []string{"", "  ", "go"},
			expected: []string{"go"},
		},
		{
			name:     "nil input",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, normalizeTags(tc.input))
		})
	}
}
