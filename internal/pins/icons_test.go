package pins

import "testing"

func TestResolveRecycleIcons(t *testing.T) {
	r := NewResolver(RecycleIcons(), DefaultPin)

	cases := []struct {
		name     string
		category string
		selected []string
		want     string
	}{
		{"demontering", "Demontering", nil, PinRed},
		{"legacy rivning shares red", "Rivning", nil, PinRed},
		{"nybyggnation", "Nybyggnation", nil, PinBlue},
		{"ombyggnation", "Ombyggnation", nil, PinGreen},
		{"case insensitive", "nybyggnation", nil, PinBlue},
		{"unknown category falls back", "Okänt", nil, DefaultPin},
		{"empty category falls back", "", nil, DefaultPin},
		{"selected filter overrides record", "Demontering", []string{"Nybyggnation"}, PinBlue},
		{"first selected wins", "Demontering", []string{"Ombyggnation", "Nybyggnation"}, PinGreen},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Resolve(tc.category, tc.selected); got != tc.want {
				t.Fatalf("Resolve(%q, %v) = %q, want %q", tc.category, tc.selected, got, tc.want)
			}
		})
	}
}

func TestResolveStoryIcons(t *testing.T) {
	r := NewResolver(StoryIcons(), DefaultPin)

	// A multi-category field resolves to the earliest configured match, not
	// the first tag in the field.
	if got := r.Resolve("Mobilitet, Grön energi", nil); got != PinPink {
		t.Fatalf("multi-category field = %q, want %q (Grön energi is configured first)", got, PinPink)
	}

	if got := r.Resolve("Vindkraft", nil); got != PinRed {
		t.Fatalf("Vindkraft = %q, want %q", got, PinRed)
	}

	if got := r.Resolve("Teater", nil); got != DefaultPin {
		t.Fatalf("unknown story category = %q, want fallback %q", got, DefaultPin)
	}
}
