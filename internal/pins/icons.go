// Package pins turns filtered map entries into renderable marker
// descriptors: a position, a category-colored icon and popup content.
package pins

import (
	"aterbruk-backend/internal/filter"
)

// Marker icon identifiers understood by the map frontend.
const (
	PinRed       = "pin-red"
	PinBlue      = "pin-blue"
	PinGreen     = "pin-green"
	PinPink      = "pin-pink"
	PinPaleGreen = "pin-pale-green"
	PinDarkGreen = "pin-dark-green"
	PinYellow    = "pin-yellow"
	PinMagenta   = "pin-magenta"
	PinPurple    = "pin-purple"
	PinTeal      = "pin-teal"
	PinOrange    = "pin-orange"
	PinNavy      = "pin-navy"
	PinLightBlue = "pin-light-blue"
	PinGold      = "pin-gold"
	PinGray      = "pin-gray"
)

// CategoryIcon binds one canonical category name to a marker icon. The
// position in the config list is the tie-break: when an entry's category
// field matches several names, the earliest listed one wins.
type CategoryIcon struct {
	Category string
	Icon     string
}

// Resolver picks a marker icon for an entry from an ordered category
// config. Matching is case-insensitive substring containment, so a stored
// "Grön energi och annat" matches the canonical "Grön energi".
type Resolver struct {
	icons    []CategoryIcon
	fallback string
}

// NewResolver builds a resolver over the ordered config. Entries matching
// no configured category get the fallback icon.
func NewResolver(icons []CategoryIcon, fallback string) *Resolver {
	return &Resolver{icons: icons, fallback: fallback}
}

// Resolve returns the icon for an entry with the given category field. When
// the active filter selects at least one category, the first selected
// category decides the color for every visible pin; otherwise the entry's
// own field does.
func (r *Resolver) Resolve(recordCategory string, selectedCategories []string) string {
	probe := recordCategory
	if len(selectedCategories) > 0 {
		probe = selectedCategories[0]
	}
	for _, entry := range r.icons {
		if filter.TextContains(probe, entry.Category) {
			return entry.Icon
		}
	}
	return r.fallback
}

// RecycleIcons is the ordered category config for the recycle map.
func RecycleIcons() []CategoryIcon {
	return []CategoryIcon{
		{Category: "Demontering", Icon: PinRed},
		{Category: "Rivning", Icon: PinRed},
		{Category: "Nybyggnation", Icon: PinBlue},
		{Category: "Ombyggnation", Icon: PinGreen},
	}
}

// StoryIcons is the ordered category config for the stories map.
func StoryIcons() []CategoryIcon {
	return []CategoryIcon{
		{Category: "Grön energi", Icon: PinPink},
		{Category: "Mobilitet", Icon: PinPaleGreen},
		{Category: "Solenergi", Icon: PinDarkGreen},
		{Category: "Energilagring", Icon: PinYellow},
		{Category: "Vätgas", Icon: PinMagenta},
		{Category: "Vindkraft", Icon: PinRed},
		{Category: "Bioenergi", Icon: PinPurple},
		{Category: "Byggnader", Icon: PinBlue},
		{Category: "Effekt", Icon: PinTeal},
		{Category: "Vatten", Icon: PinOrange},
		{Category: "Hållbarhet", Icon: PinNavy},
		{Category: "Öppna data", Icon: PinLightBlue},
	}
}

// DefaultPin is the neutral fallback for entries outside every configured
// category.
const DefaultPin = PinGray
