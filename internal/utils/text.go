package utils

import (
	"strings"
	"unicode"
)

// CapitalizeFirst lower-cases the string and upper-cases its first letter,
// the normalization applied to educational programs and story categories
// before they are stored.
func CapitalizeFirst(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// JoinTags joins trimmed, non-empty tags with the ", " delimiter used by
// the stored tag set fields.
func JoinTags(tags []string) string {
	clean := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			clean = append(clean, t)
		}
	}
	return strings.Join(clean, ", ")
}
