package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTextContains(t *testing.T) {
	cases := []struct {
		name   string
		field  string
		needle string
		want   bool
	}{
		{"exact", "Demontering", "Demontering", true},
		{"case insensitive", "DEMONTERING", "demontering", true},
		{"swedish letters fold", "TRÄ och betong", "trä", true},
		{"substring", "Uppsala kommun", "kommun", true},
		{"no match", "Demontering", "Nybyggnation", false},
		{"empty field", "", "trä", false},
		{"empty needle matches non-empty field", "Demontering", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TextContains(tc.field, tc.needle); got != tc.want {
				t.Fatalf("TextContains(%q, %q) = %v, want %v", tc.field, tc.needle, got, tc.want)
			}
		})
	}
}

func TestNumberInRange(t *testing.T) {
	cases := []struct {
		name   string
		value  int
		bounds []int
		want   bool
	}{
		{"inside", 2025, []int{2024, 2030}, true},
		{"below", 2023, []int{2024, 2030}, false},
		{"above", 2031, []int{2024, 2030}, false},
		{"inclusive low", 2024, []int{2024, 2030}, true},
		{"inclusive high", 2030, []int{2024, 2030}, true},
		{"reversed bounds", 2025, []int{2030, 2024}, true},
		{"single bound exact", 7, []int{7}, true},
		{"single bound miss", 8, []int{7}, false},
		{"empty bounds match everything", 1999, nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NumberInRange(tc.value, tc.bounds); got != tc.want {
				t.Fatalf("NumberInRange(%d, %v) = %v, want %v", tc.value, tc.bounds, got, tc.want)
			}
		})
	}
}

func TestSplitTags(t *testing.T) {
	cases := []struct {
		name  string
		field string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "Trä", []string{"Trä"}},
		{"multiple", "Trä, Betong, Stål", []string{"Trä", "Betong", "Stål"}},
		{"stray whitespace trimmed", "Trä,  Betong ", []string{"Trä", "Betong"}},
		{"bare comma not a delimiter", "Trä,Betong", []string{"Trä,Betong"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitTags(tc.field)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("SplitTags(%q) mismatch (-want +got):\n%s", tc.field, diff)
			}
		})
	}
}

func TestTagSetIntersects(t *testing.T) {
	cases := []struct {
		name     string
		field    string
		selected []string
		want     bool
	}{
		{"shared tag", "Trä, Betong", []string{"Betong"}, true},
		{"no shared tag", "Trä, Betong", []string{"Stål"}, false},
		{"token exact, no substring", "Trädgård", []string{"Trä"}, false},
		{"case sensitive", "trä", []string{"Trä"}, false},
		{"empty field", "", []string{"Trä"}, false},
		{"empty selection", "Trä", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TagSetIntersects(tc.field, tc.selected); got != tc.want {
				t.Fatalf("TagSetIntersects(%q, %v) = %v, want %v", tc.field, tc.selected, got, tc.want)
			}
		})
	}
}
