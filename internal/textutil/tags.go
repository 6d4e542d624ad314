package textutil

import (
	"regexp"
	"strings"
)

// tagSplitPattern matches the separators accepted in tag input: commas and
// any run of whitespace.
var tagSplitPattern = regexp.MustCompile(`[,\s]+`)

// ParseTags splits raw tag input on commas and whitespace, dropping empties
// and duplicates while preserving first-seen order.
func ParseTags(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	parts := tagSplitPattern.Split(trimmed, -1)
	tags := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// NormalizeTags applies ParseTags semantics to an already-split tag list.
func NormalizeTags(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	tags := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, value := range raw {
		for _, tag := range ParseTags(value) {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}

// FormatTags renders tags in the display form used by list output: each tag
// prefixed with '#', joined by single spaces.
func FormatTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	var b strings.Builder
	for i, tag := range tags {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('#')
		b.WriteString(tag)
	}
	return b.String()
}
