package filter

import (
	"testing"

	"aterbruk-backend/internal/models"
)

func TestSearchedMonth(t *testing.T) {
	cases := []struct {
		search string
		want   int
	}{
		{"mars", 3},
		{"rivning i mars", 3},
		{"marsipan", 0},
		{"oktober", 10},
		{"januari", 1},
		{"december", 12},
		{"betong", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := searchedMonth(tc.search); got != tc.want {
			t.Errorf("searchedMonth(%q) = %d, want %d", tc.search, got, tc.want)
		}
	}
}

func TestFilterBySearchInput(t *testing.T) {
	march := 3
	year := 2019
	data := []models.Recycle{
		{
			ID:          "a",
			MapItem:     models.MapItem{Name: "Kvarteret Hugin", Organisation: "Uppsala kommun", City: "Uppsala", IsActive: true},
			ProjectType: "Demontering",
			Description: "Stommar och fasadelement.",
			Month:       &march,
		},
		{
			ID:                 "b",
			MapItem:            models.MapItem{Name: "Rosendal", Organisation: "Uppsalahem", Year: &year, IsActive: true},
			ProjectType:        "Nybyggnation",
			AvailableMaterials: "Tegel, Trä",
		},
	}

	t.Run("empty search keeps everything", func(t *testing.T) {
		got := FilterBySearchInput(data, "")
		if len(got) != 2 {
			t.Fatalf("got %d entries, want 2", len(got))
		}
	})

	t.Run("entry field match", func(t *testing.T) {
		got := FilterBySearchInput(data, "fasadelement")
		if len(got) != 1 || got[0].ID != "a" {
			t.Fatalf("got %v, want entry a", ids(got))
		}
	})

	t.Run("month name matches numeric month", func(t *testing.T) {
		got := FilterBySearchInput(data, "mars")
		if len(got) != 1 || got[0].ID != "a" {
			t.Fatalf("got %v, want entry a", ids(got))
		}
	})

	t.Run("month name needs word boundary", func(t *testing.T) {
		got := FilterBySearchInput(data, "marsipan")
		if len(got) != 0 {
			t.Fatalf("got %v, want nothing", ids(got))
		}
	})

	t.Run("map item organisation match", func(t *testing.T) {
		got := FilterBySearchInput(data, "uppsalahem")
		if len(got) != 1 || got[0].ID != "b" {
			t.Fatalf("got %v, want entry b", ids(got))
		}
	})

	t.Run("stringified year match", func(t *testing.T) {
		got := FilterBySearchInput(data, "2019")
		if len(got) != 1 || got[0].ID != "b" {
			t.Fatalf("got %v, want entry b", ids(got))
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		got := FilterBySearchInput(data, "TEGEL")
		if len(got) != 1 || got[0].ID != "b" {
			t.Fatalf("got %v, want entry b", ids(got))
		}
	})
}

func TestFilterStoriesBySearchInput(t *testing.T) {
	data := []models.Story{
		{
			ID:                 "s1",
			MapItem:            models.MapItem{Name: "Solceller på Ångström", Organisation: "Uppsala universitet", IsActive: true},
			CategorySwedish:    "Grön energi, Solceller",
			DescriptionSwedish: "Solelproduktion på campustak.",
		},
		{
			ID:              "s2",
			MapItem:         models.MapItem{Name: "Cykelflödet", Organisation: "Uppsala kommun", City: "Uppsala", IsActive: true},
			CategorySwedish: "Mobilitet",
			ReportTitle:     "Cykelpendling genom resecentrum",
		},
	}

	t.Run("story field match", func(t *testing.T) {
		got := FilterStoriesBySearchInput(data, "solel")
		if len(got) != 1 || got[0].ID != "s1" {
			t.Fatalf("got %v, want story s1", storyIDs(got))
		}
	})

	t.Run("report title match", func(t *testing.T) {
		got := FilterStoriesBySearchInput(data, "resecentrum")
		if len(got) != 1 || got[0].ID != "s2" {
			t.Fatalf("got %v, want story s2", storyIDs(got))
		}
	})

	t.Run("map item fallback", func(t *testing.T) {
		got := FilterStoriesBySearchInput(data, "ångström")
		if len(got) != 1 || got[0].ID != "s1" {
			t.Fatalf("got %v, want story s1", storyIDs(got))
		}
	})

	t.Run("no match", func(t *testing.T) {
		if got := FilterStoriesBySearchInput(data, "vindkraft"); len(got) != 0 {
			t.Fatalf("got %v, want nothing", storyIDs(got))
		}
	})
}

func ids(data []models.Recycle) []string {
	out := make([]string, 0, len(data))
	for _, d := range data {
		out = append(out, d.ID)
	}
	return out
}

func storyIDs(data []models.Story) []string {
	out := make([]string, 0, len(data))
	for _, d := range data {
		out = append(out, d.ID)
	}
	return out
}
