package filter

import (
	"regexp"
	"strconv"
	"strings"

	"aterbruk-backend/internal/models"
)

// Swedish month names, word-boundary anchored so that a search for "mars"
// matches the month but "marsipan" does not. Index+1 is the month number.
var monthPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bjanuari\b`),
	regexp.MustCompile(`\bfebruari\b`),
	regexp.MustCompile(`\bmars\b`),
	regexp.MustCompile(`\bapril\b`),
	regexp.MustCompile(`\bmaj\b`),
	regexp.MustCompile(`\bjuni\b`),
	regexp.MustCompile(`\bjuli\b`),
	regexp.MustCompile(`\baugusti\b`),
	regexp.MustCompile(`\bseptember\b`),
	regexp.MustCompile(`\boktober\b`),
	regexp.MustCompile(`\bnovember\b`),
	regexp.MustCompile(`\bdecember\b`),
}

// searchedMonth returns the 1-based month number named in the search string,
// or 0 if no month name occurs in it.
func searchedMonth(lowerSearch string) int {
	for i, pattern := range monthPatterns {
		if pattern.MatchString(lowerSearch) {
			return i + 1
		}
	}
	return 0
}

func mapItemSearchFields(item models.MapItem) []string {
	year := ""
	if item.Year != nil {
		year = strconv.Itoa(*item.Year)
	}
	return []string{
		item.Name,
		item.Organisation,
		year,
		item.Address,
		item.Postcode,
		item.City,
	}
}

func anyFieldContains(fields []string, lowerSearch string) bool {
	for _, field := range fields {
		if field == "" {
			continue
		}
		if strings.Contains(strings.ToLower(field), lowerSearch) {
			return true
		}
	}
	return false
}

// recycleMatchesSearch checks a recycle entry against a lower-cased search
// string in three short-circuiting stages: entry text fields, the Swedish
// month names, then the map item text fields. Matching any stage is enough.
func recycleMatchesSearch(rec *models.Recycle, lowerSearch string) bool {
	entryFields := []string{
		rec.ProjectType,
		rec.Description,
		rec.Contact,
		rec.ExternalLinks,
		rec.AvailableMaterials,
		rec.LookingForMaterials,
	}
	if anyFieldContains(entryFields, lowerSearch) {
		return true
	}
	if month := searchedMonth(lowerSearch); month != 0 && rec.Month != nil && *rec.Month == month {
		return true
	}
	return anyFieldContains(mapItemSearchFields(rec.MapItem), lowerSearch)
}

// storyMatchesSearch checks a story entry against a lower-cased search
// string: story text fields first, then the map item text fields.
func storyMatchesSearch(story *models.Story, lowerSearch string) bool {
	entryFields := []string{
		story.CategorySwedish,
		story.EducationalProgram,
		story.DescriptionSwedish,
		story.ReportTitle,
		story.ReportAuthor,
		story.ReportContact,
	}
	if anyFieldContains(entryFields, lowerSearch) {
		return true
	}
	return anyFieldContains(mapItemSearchFields(story.MapItem), lowerSearch)
}
