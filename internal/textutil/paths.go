package textutil

import "strings"

// CleanPath trims surrounding whitespace and removes one pair of wrapping
// single or double quotes from a path string.
func CleanPath(path string) string {
	cleaned := strings.TrimSpace(path)
	if len(cleaned) >= 2 {
		first, last := cleaned[0], cleaned[len(cleaned)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			cleaned = strings.TrimSpace(cleaned[1 : len(cleaned)-1])
		}
	}
	return cleaned
}
