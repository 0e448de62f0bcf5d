// Package filter implements the pure filter and search pipeline that decides
// which map entries are shown for a given filter state. It performs no I/O:
// it takes an in-memory snapshot of entries plus a UI-owned filter state and
// returns the matching subset.
package filter

import "time"

// Month slider domain.
const (
	MonthMin = 1
	MonthMax = 12
)

// RecycleFilter is the composite filter state for the recycle map. All
// fields are optional; a zero value filters nothing except inactive entries.
type RecycleFilter struct {
	ProjectType          []string `json:"projectType,omitempty"`
	Years                []int    `json:"years,omitempty"`
	Months               []int    `json:"months,omitempty"`
	AvailableCategories  []string `json:"availableCategories,omitempty"`
	LookingForCategories []string `json:"lookingForCategories,omitempty"`
	Organisation         []string `json:"organisation,omitempty"`
	ShowInactive         bool     `json:"showInactive,omitempty"`
	Attachment           bool     `json:"attachment,omitempty"`
	SearchInput          string   `json:"searchInput,omitempty"`
}

// StoryFilter is the composite filter state for the stories map.
type StoryFilter struct {
	Categories   []string `json:"categories,omitempty"`
	Years        []int    `json:"years,omitempty"`
	Organisation []string `json:"organisation,omitempty"`
	ShowInactive bool     `json:"showInactive,omitempty"`
	EnergyStory  bool     `json:"energyStory,omitempty"`
	SearchInput  string   `json:"searchInput,omitempty"`
}

// YearLimits returns the domain of the year slider: the current year through
// ten years ahead. A year range spanning exactly this domain is treated as
// "not filtering".
func YearLimits() (min, max int) {
	year := time.Now().Year()
	return year, year + 10
}

// IsDefaultRange reports whether the selected range spans the entire domain.
// A single selected value counts as both its own min and max.
func IsDefaultRange(selected []int, domainMin, domainMax int) bool {
	if len(selected) == 0 {
		return false
	}
	lo, hi := rangeBounds(selected)
	return lo == domainMin && hi == domainMax
}

func yearsAtDefault(years []int) bool {
	min, max := YearLimits()
	return IsDefaultRange(years, min, max)
}

func monthsAtDefault(months []int) bool {
	return IsDefaultRange(months, MonthMin, MonthMax)
}

// RecycleBadges tells the UI which filter dimensions should render an
// "active filter" badge. Range dimensions at their full default span do not
// count as active.
type RecycleBadges struct {
	ProjectType  bool `json:"projectType"`
	Years        bool `json:"years"`
	Months       bool `json:"months"`
	Available    bool `json:"available"`
	LookingFor   bool `json:"lookingFor"`
	Organisation bool `json:"organisation"`
	ShowInactive bool `json:"showInactive"`
	Attachment   bool `json:"attachment"`
	Search       bool `json:"search"`
}

// Badges reports which dimensions of the filter are actively narrowing.
func (f RecycleFilter) Badges() RecycleBadges {
	return RecycleBadges{
		ProjectType:  len(f.ProjectType) > 0,
		Years:        len(f.Years) > 0 && !yearsAtDefault(f.Years),
		Months:       len(f.Months) > 0 && !monthsAtDefault(f.Months),
		Available:    len(f.AvailableCategories) > 0,
		LookingFor:   len(f.LookingForCategories) > 0,
		Organisation: len(f.Organisation) > 0,
		ShowInactive: f.ShowInactive,
		Attachment:   f.Attachment,
		Search:       f.SearchInput != "",
	}
}

// StoryBadges is the story map counterpart of RecycleBadges.
type StoryBadges struct {
	Categories   bool `json:"categories"`
	Years        bool `json:"years"`
	Organisation bool `json:"organisation"`
	ShowInactive bool `json:"showInactive"`
	EnergyStory  bool `json:"energyStory"`
	Search       bool `json:"search"`
}

// Badges reports which dimensions of the filter are actively narrowing.
func (f StoryFilter) Badges() StoryBadges {
	return StoryBadges{
		Categories:   len(f.Categories) > 0,
		Years:        len(f.Years) > 0 && !yearsAtDefault(f.Years),
		Organisation: len(f.Organisation) > 0,
		ShowInactive: f.ShowInactive,
		EnergyStory:  f.EnergyStory,
		Search:       f.SearchInput != "",
	}
}
