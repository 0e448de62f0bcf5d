package filter

import (
	"strings"

	"aterbruk-backend/internal/models"
)

type storyView struct {
	story    *models.Story
	category []string
}

func indexStories(data []models.Story) []storyView {
	views := make([]storyView, len(data))
	for i := range data {
		views[i] = storyView{
			story:    &data[i],
			category: SplitTags(data[i].CategorySwedish),
		}
	}
	return views
}

func collectStories(views []storyView) []models.Story {
	out := make([]models.Story, 0, len(views))
	for _, v := range views {
		out = append(out, *v.story)
	}
	return out
}

func keepStories(views []storyView, keep func(storyView) bool) []storyView {
	out := make([]storyView, 0, len(views))
	for _, v := range views {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

type storyStep struct {
	active func(StoryFilter) bool
	apply  func([]storyView, StoryFilter) []storyView
}

var storySteps = []storyStep{
	{
		active: func(f StoryFilter) bool { return len(f.Categories) > 0 },
		apply: func(views []storyView, f StoryFilter) []storyView {
			return keepStories(views, func(v storyView) bool {
				return tagsIntersect(v.category, f.Categories)
			})
		},
	},
	{
		active: func(f StoryFilter) bool { return len(f.Years) > 0 && !yearsAtDefault(f.Years) },
		apply: func(views []storyView, f StoryFilter) []storyView {
			return keepStories(views, func(v storyView) bool {
				return v.story.MapItem.Year != nil && NumberInRange(*v.story.MapItem.Year, f.Years)
			})
		},
	},
	{
		active: func(f StoryFilter) bool { return len(f.Organisation) > 0 },
		apply: func(views []storyView, f StoryFilter) []storyView {
			return keepStories(views, func(v storyView) bool {
				return organisationSelected(v.story.MapItem.Organisation, f.Organisation)
			})
		},
	},
	{
		active: func(f StoryFilter) bool { return f.EnergyStory },
		apply: func(views []storyView, f StoryFilter) []storyView {
			return keepStories(views, func(v storyView) bool {
				return v.story.IsEnergyStory
			})
		},
	},
	{
		active: func(f StoryFilter) bool { return f.SearchInput != "" },
		apply: func(views []storyView, f StoryFilter) []storyView {
			lower := strings.ToLower(f.SearchInput)
			return keepStories(views, func(v storyView) bool {
				return storyMatchesSearch(v.story, lower)
			})
		},
	},
	{
		active: func(f StoryFilter) bool { return !f.ShowInactive },
		apply: func(views []storyView, f StoryFilter) []storyView {
			return keepStories(views, func(v storyView) bool {
				return v.story.MapItem.IsActive
			})
		},
	},
}

// RunStoryFilters applies every active dimension of the filter to the story
// entries, left to right. A zero filter returns the active entries
// unchanged; a year range at its full default span is skipped.
func RunStoryFilters(data []models.Story, f StoryFilter) []models.Story {
	views := indexStories(data)
	for _, step := range storySteps {
		if step.active(f) {
			views = step.apply(views, f)
		}
	}
	return collectStories(views)
}

// FilterStoriesByCategory keeps stories sharing at least one category tag
// with categories.
func FilterStoriesByCategory(data []models.Story, categories []string) []models.Story {
	if len(categories) == 0 {
		return data
	}
	return collectStories(keepStories(indexStories(data), func(v storyView) bool {
		return tagsIntersect(v.category, categories)
	}))
}

// FilterStoriesByYear keeps stories whose map item year lies within the
// bounds, which may be given in either order.
func FilterStoriesByYear(data []models.Story, years []int) []models.Story {
	if len(years) == 0 {
		return data
	}
	return collectStories(keepStories(indexStories(data), func(v storyView) bool {
		return v.story.MapItem.Year != nil && NumberInRange(*v.story.MapItem.Year, years)
	}))
}

// FilterStoriesBySearchInput keeps stories matching the free-text search.
// An empty search string keeps everything.
func FilterStoriesBySearchInput(data []models.Story, search string) []models.Story {
	if search == "" {
		return data
	}
	lower := strings.ToLower(search)
	return collectStories(keepStories(indexStories(data), func(v storyView) bool {
		return storyMatchesSearch(v.story, lower)
	}))
}
