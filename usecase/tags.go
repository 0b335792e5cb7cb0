package usecase

import (
	"sort"
	"strings"
)

// ParseManualTags splits typed tags on commas and semicolons. Order and
// duplicates are kept.
func ParseManualTags(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' })
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// TagSuggestions returns the available tags not yet assigned, compared
// case-insensitively and sorted the same way.
func TagSuggestions(available, assigned []string) []string {
	taken := make(map[string]struct{}, len(assigned))
	for _, tag := range assigned {
		taken[strings.ToLower(strings.TrimSpace(tag))] = struct{}{}
	}

	out := make([]string, 0, len(available))
	for _, tag := range available {
		if _, ok := taken[strings.ToLower(tag)]; ok {
			continue
		}
		out = append(out, tag)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
