package util

import (
	"fmt"
	"strings"
)

const excerptLength = 25

// Excerpt returns a single-line abbreviation of the given text
func Excerpt(text string, length ...int) string {
	limit := excerptLength
	if len(length) > 0 {
		limit = length[0]
	}

	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit])) + "..."
}

// HumanizeBytes formats a byte count using binary prefixes
func HumanizeBytes(size int) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%dB", size)
	}

	div, exp := int64(unit), 0
	for n := int64(size) / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(size)/float64(div), "KMGTPE"[exp])
}
