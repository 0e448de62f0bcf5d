package recycle

// MapItemRequest is the embedded location part of a create or update
// request. Entries without coordinates are accepted; they just never render
// as markers.
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
	MapItem             MapItemRequest `json:"mapItem" validate:"required"`
	ProjectType         string         `json:"projectType" validate:"required,tag"`
	Month               *int           `json:"month" validate:"omitempty,month"`
	Description         string         `json:"description"`
	Contact             string         `json:"contact"`
	ExternalLinks       string         `json:"externalLinks"`
	AvailableMaterials  []string       `json:"availableMaterials" validate:"dive,tag"`
	LookingForMaterials []string       `json:"lookingForMaterials" validate:"dive,tag"`
	Attachment          []byte         `json:"attachment"`
	IsPublic            *bool          `json:"isPublic"`
	IsActive            *bool          `json:"isActive"`
}
