package pins

import (
	"testing"

	"aterbruk-backend/internal/models"
)

func TestRecycleMarkers(t *testing.T) {
	lat, lon := 59.858227, 17.632252
	year := 2024
	resolver := NewResolver(RecycleIcons(), DefaultPin)

	data := []models.Recycle{
		{
			ID:          "on-map",
			MapItem:     models.MapItem{Latitude: &lat, Longitude: &lon, Name: "Hugin", Organisation: "Uppsala kommun", Year: &year, IsActive: true},
			ProjectType: "Rivning",
			Contact:     "atervinning@uppsala.se",
		},
		{
			ID:          "no-coords",
			MapItem:     models.MapItem{Name: "Utan position", IsActive: true},
			ProjectType: "Nybyggnation",
		},
		{
			ID:          "half-coords",
			MapItem:     models.MapItem{Latitude: &lat, Name: "Halv position", IsActive: true},
			ProjectType: "Nybyggnation",
		},
	}

	markers := RecycleMarkers(data, resolver, nil)
	if len(markers) != 1 {
		t.Fatalf("got %d markers, want 1 (entries without both coordinates are skipped)", len(markers))
	}

	m := markers[0]
	if m.ID != "on-map" || m.Latitude != lat || m.Longitude != lon {
		t.Fatalf("unexpected marker %+v", m)
	}
	if m.Icon != PinRed {
		t.Errorf("icon = %q, want %q", m.Icon, PinRed)
	}
	if m.Popup.ProjectType != models.ProjectTypeDemontering {
		t.Errorf("popup project type = %q, want legacy Rivning presented as %q", m.Popup.ProjectType, models.ProjectTypeDemontering)
	}
	if m.Popup.YearText != "Projektet startades 2024" {
		t.Errorf("popup year text = %q", m.Popup.YearText)
	}
	if m.Popup.Contact != "atervinning@uppsala.se" {
		t.Errorf("popup contact = %q", m.Popup.Contact)
	}
}

func TestRecycleMarkersFilterRecolor(t *testing.T) {
	lat, lon := 59.85, 17.63
	resolver := NewResolver(RecycleIcons(), DefaultPin)

	data := []models.Recycle{
		{ID: "a", MapItem: models.MapItem{Latitude: &lat, Longitude: &lon, IsActive: true}, ProjectType: "Demontering"},
		{ID: "b", MapItem: models.MapItem{Latitude: &lat, Longitude: &lon, IsActive: true}, ProjectType: "Ombyggnation"},
	}

	markers := RecycleMarkers(data, resolver, []string{"Nybyggnation"})
	for _, m := range markers {
		if m.Icon != PinBlue {
			t.Fatalf("marker %s icon = %q, want every pin recolored to %q", m.ID, m.Icon, PinBlue)
		}
	}
}

func TestStoryMarkersPopupFallbacks(t *testing.T) {
	lat, lon := 59.85, 17.63
	resolver := NewResolver(StoryIcons(), DefaultPin)

	data := []models.Story{
		{
			ID:              "bare",
			MapItem:         models.MapItem{Latitude: &lat, Longitude: &lon, Name: "Utan detaljer", IsActive: true},
			CategorySwedish: "Mobilitet",
		},
	}

	markers := StoryMarkers(data, resolver, nil)
	if len(markers) != 1 {
		t.Fatalf("got %d markers, want 1", len(markers))
	}

	popup := markers[0].Popup
	if popup.YearText != "Inget startår angivets" {
		t.Errorf("year fallback = %q", popup.YearText)
	}
	if popup.Contact != "Ingen kontaktinformation tillgänglig" {
		t.Errorf("contact fallback = %q", popup.Contact)
	}
	if markers[0].Icon != PinPaleGreen {
		t.Errorf("icon = %q, want %q", markers[0].Icon, PinPaleGreen)
	}
}
