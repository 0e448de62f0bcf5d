package pins

import (
	"fmt"

	"aterbruk-backend/internal/models"
)

// Marker is one renderable map pin.
type Marker struct {
	ID        string  `json:"id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Icon      string  `json:"icon"`
	Popup     Popup   `json:"popup"`
}

// Popup is the content shown when a pin is clicked. Optional sections are
// omitted entirely when the underlying field is empty.
type Popup struct {
	Title               string `json:"title,omitempty"`
	Organisation        string `json:"organisation,omitempty"`
	YearText            string `json:"yearText,omitempty"`
	ProjectType         string `json:"projectType,omitempty"`
	Description         string `json:"description,omitempty"`
	Contact             string `json:"contact,omitempty"`
	ExternalLinks       string `json:"externalLinks,omitempty"`
	AvailableMaterials  string `json:"availableMaterials,omitempty"`
	LookingForMaterials string `json:"lookingForMaterials,omitempty"`
	Videos              string `json:"videos,omitempty"`
	ReportLink          string `json:"reportLink,omitempty"`
	ReportTitle         string `json:"reportTitle,omitempty"`
	OpenData            string `json:"openData,omitempty"`
	PdfCase             string `json:"pdfCase,omitempty"`
}

// RecycleMarkers projects recycle entries onto map markers. Entries missing
// either coordinate produce no marker. selectedCategories is the project
// type dimension of the active filter; when non-empty its first entry
// decides every pin's color.
func RecycleMarkers(data []models.Recycle, resolver *Resolver, selectedCategories []string) []Marker {
	markers := make([]Marker, 0, len(data))
	for i := range data {
		rec := &data[i]
		if rec.MapItem.Latitude == nil || rec.MapItem.Longitude == nil {
			continue
		}
		markers = append(markers, Marker{
			ID:        rec.ID,
			Latitude:  *rec.MapItem.Latitude,
			Longitude: *rec.MapItem.Longitude,
			Icon:      resolver.Resolve(rec.ProjectType, selectedCategories),
			Popup:     recyclePopup(rec),
		})
	}
	return markers
}

// StoryMarkers projects story entries onto map markers, with the same
// coordinate and color rules as RecycleMarkers.
func StoryMarkers(data []models.Story, resolver *Resolver, selectedCategories []string) []Marker {
	markers := make([]Marker, 0, len(data))
	for i := range data {
		story := &data[i]
		if story.MapItem.Latitude == nil || story.MapItem.Longitude == nil {
			continue
		}
		markers = append(markers, Marker{
			ID:        story.ID,
			Latitude:  *story.MapItem.Latitude,
			Longitude: *story.MapItem.Longitude,
			Icon:      resolver.Resolve(story.CategorySwedish, selectedCategories),
			Popup:     storyPopup(story),
		})
	}
	return markers
}

func recyclePopup(rec *models.Recycle) Popup {
	return Popup{
		Title:               rec.MapItem.Name,
		Organisation:        rec.MapItem.Organisation,
		YearText:            yearText(rec.MapItem.Year),
		ProjectType:         models.DisplayProjectType(rec.ProjectType),
		Description:         rec.Description,
		Contact:             contactText(rec.Contact),
		ExternalLinks:       rec.ExternalLinks,
		AvailableMaterials:  rec.AvailableMaterials,
		LookingForMaterials: rec.LookingForMaterials,
	}
}

func storyPopup(story *models.Story) Popup {
	return Popup{
		Title:        story.MapItem.Name,
		Organisation: story.MapItem.Organisation,
		YearText:     yearText(story.MapItem.Year),
		Description:  story.DescriptionSwedish,
		Contact:      contactText(story.ReportContact),
		Videos:       story.Videos,
		ReportLink:   story.ReportLink,
		ReportTitle:  story.ReportTitle,
		OpenData:     story.OpenData,
		PdfCase:      story.PdfCase,
	}
}

func yearText(year *int) string {
	if year == nil {
		return "Inget startår angivets"
	}
	return fmt.Sprintf("Projektet startades %d", *year)
}

func contactText(contact string) string {
	if contact == "" {
		return "Ingen kontaktinformation tillgänglig"
	}
	return contact
}
