package filter

import (
	"strings"

	"aterbruk-backend/internal/models"
)

// TextContains reports whether field contains needle, ignoring case. An
// empty or absent field never matches. strings.ToLower folds the Swedish
// letters å/ä/ö correctly, so "TRÄ" contains "trä".
func TextContains(field, needle string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(needle))
}

// NumberInRange reports whether value lies within the bounds, inclusive.
// The bounds may be given in either order, and a single bound means an
// exact match. Empty bounds match everything so that a malformed range
// never filters anything out.
func NumberInRange(value int, bounds []int) bool {
	if len(bounds) == 0 {
		return true
	}
	lo, hi := rangeBounds(bounds)
	return value >= lo && value <= hi
}

// SplitTags splits a delimiter-joined tag field into its trimmed tokens.
// Empty tokens are dropped.
func SplitTags(field string) []string {
	if field == "" {
		return nil
	}
	parts := strings.Split(field, models.TagDelimiter)
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// TagSetIntersects reports whether the delimiter-joined field shares at
// least one tag with selected. Tags compare token-exact and case-sensitive,
// so "Trä" does not match inside "Trädgård".
func TagSetIntersects(field string, selected []string) bool {
	return tagsIntersect(SplitTags(field), selected)
}

func tagsIntersect(tags, selected []string) bool {
	for _, tag := range tags {
		for _, want := range selected {
			if tag == want {
				return true
			}
		}
	}
	return false
}

func rangeBounds(bounds []int) (int, int) {
	lo, hi := bounds[0], bounds[0]
	for _, b := range bounds[1:] {
		if b < lo {
			lo = b
		}
		if b > hi {
			hi = b
		}
	}
	return lo, hi
}
