package filter

import (
	"strings"

	"aterbruk-backend/internal/models"
)

// recycleView pairs an entry with its tag fields parsed once, so a full
// pipeline pass never re-splits the same delimited string per predicate.
type recycleView struct {
	rec         *models.Recycle
	projectTags []string
	available   []string
	lookingFor  []string
}

func indexRecycle(data []models.Recycle) []recycleView {
	views := make([]recycleView, len(data))
	for i := range data {
		views[i] = recycleView{
			rec:         &data[i],
			projectTags: SplitTags(data[i].ProjectType),
			available:   SplitTags(data[i].AvailableMaterials),
			lookingFor:  SplitTags(data[i].LookingForMaterials),
		}
	}
	return views
}

func collectRecycle(views []recycleView) []models.Recycle {
	out := make([]models.Recycle, 0, len(views))
	for _, v := range views {
		out = append(out, *v.rec)
	}
	return out
}

func keepRecycle(views []recycleView, keep func(recycleView) bool) []recycleView {
	out := make([]recycleView, 0, len(views))
	for _, v := range views {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// recycleStep is one dimension of the pipeline: active decides whether the
// filter value asks for any narrowing at all, apply performs it. Every step
// keeps matching entries and drops the rest, so steps compose by
// intersection and their order never changes the result set.
type recycleStep struct {
	active func(RecycleFilter) bool
	apply  func([]recycleView, RecycleFilter) []recycleView
}

var recycleSteps = []recycleStep{
	{
		active: func(f RecycleFilter) bool { return len(f.ProjectType) > 0 },
		apply: func(views []recycleView, f RecycleFilter) []recycleView {
			return keepRecycle(views, func(v recycleView) bool {
				return tagsIntersect(v.projectTags, f.ProjectType)
			})
		},
	},
	{
		active: func(f RecycleFilter) bool { return len(f.Years) > 0 && !yearsAtDefault(f.Years) },
		apply: func(views []recycleView, f RecycleFilter) []recycleView {
			return keepRecycle(views, func(v recycleView) bool {
				return v.rec.MapItem.Year != nil && NumberInRange(*v.rec.MapItem.Year, f.Years)
			})
		},
	},
	{
		active: func(f RecycleFilter) bool { return len(f.Months) > 0 && !monthsAtDefault(f.Months) },
		apply: func(views []recycleView, f RecycleFilter) []recycleView {
			return keepRecycle(views, func(v recycleView) bool {
				return v.rec.Month != nil && NumberInRange(*v.rec.Month, f.Months)
			})
		},
	},
	{
		active: func(f RecycleFilter) bool { return len(f.AvailableCategories) > 0 },
		apply: func(views []recycleView, f RecycleFilter) []recycleView {
			return keepRecycle(views, func(v recycleView) bool {
				return tagsIntersect(v.available, f.AvailableCategories)
			})
		},
	},
	{
		active: func(f RecycleFilter) bool { return len(f.LookingForCategories) > 0 },
		apply: func(views []recycleView, f RecycleFilter) []recycleView {
			return keepRecycle(views, func(v recycleView) bool {
				return tagsIntersect(v.lookingFor, f.LookingForCategories)
			})
		},
	},
	{
		active: func(f RecycleFilter) bool { return len(f.Organisation) > 0 },
		apply: func(views []recycleView, f RecycleFilter) []recycleView {
			return keepRecycle(views, func(v recycleView) bool {
				return organisationSelected(v.rec.MapItem.Organisation, f.Organisation)
			})
		},
	},
	{
		active: func(f RecycleFilter) bool { return f.SearchInput != "" },
		apply: func(views []recycleView, f RecycleFilter) []recycleView {
			lower := strings.ToLower(f.SearchInput)
			return keepRecycle(views, func(v recycleView) bool {
				return recycleMatchesSearch(v.rec, lower)
			})
		},
	},
	{
		active: func(f RecycleFilter) bool { return !f.ShowInactive },
		apply: func(views []recycleView, f RecycleFilter) []recycleView {
			return keepRecycle(views, func(v recycleView) bool {
				return v.rec.MapItem.IsActive
			})
		},
	},
	{
		active: func(f RecycleFilter) bool { return f.Attachment },
		apply: func(views []recycleView, f RecycleFilter) []recycleView {
			return keepRecycle(views, func(v recycleView) bool {
				return len(v.rec.Attachment) > 0
			})
		},
	},
}

// RunRecycleFilters applies every active dimension of the filter to the
// entries, left to right. A zero filter returns the active entries
// unchanged; year and month ranges at their full default span are skipped.
func RunRecycleFilters(data []models.Recycle, f RecycleFilter) []models.Recycle {
	views := indexRecycle(data)
	for _, step := range recycleSteps {
		if step.active(f) {
			views = step.apply(views, f)
		}
	}
	return collectRecycle(views)
}

func organisationSelected(organisation string, selected []string) bool {
	for _, want := range selected {
		if organisation == want {
			return true
		}
	}
	return false
}

// FilterByProjectType keeps entries whose project type field shares at least
// one tag with projectType.
func FilterByProjectType(data []models.Recycle, projectType []string) []models.Recycle {
	if len(projectType) == 0 {
		return data
	}
	return collectRecycle(keepRecycle(indexRecycle(data), func(v recycleView) bool {
		return tagsIntersect(v.projectTags, projectType)
	}))
}

// FilterByYear keeps entries whose map item year lies within the bounds,
// which may be given in either order. An empty range filters nothing.
func FilterByYear(data []models.Recycle, years []int) []models.Recycle {
	if len(years) == 0 {
		return data
	}
	return collectRecycle(keepRecycle(indexRecycle(data), func(v recycleView) bool {
		return v.rec.MapItem.Year != nil && NumberInRange(*v.rec.MapItem.Year, years)
	}))
}

// FilterByMonth keeps entries whose month lies within the bounds, which may
// be given in either order. An empty range filters nothing.
func FilterByMonth(data []models.Recycle, months []int) []models.Recycle {
	if len(months) == 0 {
		return data
	}
	return collectRecycle(keepRecycle(indexRecycle(data), func(v recycleView) bool {
		return v.rec.Month != nil && NumberInRange(*v.rec.Month, months)
	}))
}

// FilterByAvailable keeps entries offering at least one of the materials.
func FilterByAvailable(data []models.Recycle, available []string) []models.Recycle {
	if len(available) == 0 {
		return data
	}
	return collectRecycle(keepRecycle(indexRecycle(data), func(v recycleView) bool {
		return tagsIntersect(v.available, available)
	}))
}

// FilterByLookingFor keeps entries looking for at least one of the materials.
func FilterByLookingFor(data []models.Recycle, lookingFor []string) []models.Recycle {
	if len(lookingFor) == 0 {
		return data
	}
	return collectRecycle(keepRecycle(indexRecycle(data), func(v recycleView) bool {
		return tagsIntersect(v.lookingFor, lookingFor)
	}))
}

// FilterByOrganisation keeps entries whose organisation is one of the
// selected names. The match is exact, not substring.
func FilterByOrganisation(data []models.Recycle, organisations []string) []models.Recycle {
	if len(organisations) == 0 {
		return data
	}
	return collectRecycle(keepRecycle(indexRecycle(data), func(v recycleView) bool {
		return organisationSelected(v.rec.MapItem.Organisation, organisations)
	}))
}

// FilterByActive keeps only active entries unless showInactive asks for
// both. This is the one dimension whose true value is the no-op.
func FilterByActive(data []models.Recycle, showInactive bool) []models.Recycle {
	if showInactive {
		return data
	}
	return collectRecycle(keepRecycle(indexRecycle(data), func(v recycleView) bool {
		return v.rec.MapItem.IsActive
	}))
}

// FilterByAttachment keeps entries carrying an attachment when the flag is
// set; otherwise it filters nothing.
func FilterByAttachment(data []models.Recycle, attachment bool) []models.Recycle {
	if !attachment {
		return data
	}
	return collectRecycle(keepRecycle(indexRecycle(data), func(v recycleView) bool {
		return len(v.rec.Attachment) > 0
	}))
}

// FilterBySearchInput keeps entries matching the free-text search. An empty
// search string keeps everything.
func FilterBySearchInput(data []models.Recycle, search string) []models.Recycle {
	if search == "" {
		return data
	}
	lower := strings.ToLower(search)
	return collectRecycle(keepRecycle(indexRecycle(data), func(v recycleView) bool {
		return recycleMatchesSearch(v.rec, lower)
	}))
}
