package utils

import (
	"fmt"
	"strings"
)

// Reading speed used when deriving a read time for a new post.
const wordsPerMinute = 200

// CountWords counts whitespace-separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// EstimateReadTime derives a display read time from the content length,
// rounding up and never going below one minute.
func EstimateReadTime(content string) string {
	minutes := (CountWords(content) + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// SplitParagraphs breaks post content into paragraphs on blank lines.
// Lines containing only whitespace count as blank.
func SplitParagraphs(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var paragraphs []string
	var current strings.Builder

	flush := func() {
		p := strings.TrimSpace(current.String())
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
		current.Reset()
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	flush()

	return paragraphs
}
