package stories

// MapItemRequest mirrors the embedded location part of a story create or
// update request.
type MapItemRequest struct {
	Latitude     *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude" validate:"omitempty,longitude"`
	Name         string   `json:"name"`
	Organisation string   `json:"organisation" validate:"required"`
	Year         *int     `json:"year" validate:"omitempty,year"`
	Address      string   `json:"address"`
	Postcode     string   `json:"postcode"`
	City         string   `json:"city"`
}

type UpsertRequest struct {
	MapItem            MapItemRequest `json:"mapItem" validate:"required"`
	Categories         []string       `json:"categories" validate:"dive,tag"`
	EducationalProgram string         `json:"educationalProgram"`
	Description        string         `json:"description"`
	ReportLink         string         `json:"reportLink" validate:"omitempty,url"`
	ReportSite         string         `json:"reportSite" validate:"omitempty,url"`
	ReportTitle        string         `json:"reportTitle"`
	Videos             string         `json:"videos"`
	PdfCase            string         `json:"pdfCase"`
	OpenData           string         `json:"openData"`
	ReportAuthor       string         `json:"reportAuthor"`
	ReportContact      string         `json:"reportContact"`
	IsEnergyStory      bool           `json:"isEnergyStory"`
	IsActive           *bool          `json:"isActive"`
}
