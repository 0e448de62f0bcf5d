package models

import (
	"strings"
	"time"
)

const (
	// ProjectType values stored on Recycle entries. "Rivning" is legacy data
	// and is presented as "Demontering" on reads.
	ProjectTypeRivning      = "Rivning"
	ProjectTypeDemontering  = "Demontering"
	ProjectTypeNybyggnation = "Nybyggnation"
	ProjectTypeOmbyggnation = "Ombyggnation"

	UserRoleAdmin       = "admin"
	UserRoleRecycler    = "recycler"
	UserRoleStoryteller = "storyteller"

	// TagDelimiter joins multi-category fields (availableMaterials,
	// lookingForMaterials, categorySwedish). No tag may contain it.
	TagDelimiter = ", "

	// MaxAttachmentBytes caps the binary attachment on a Recycle entry.
	MaxAttachmentBytes = 1 << 20
)

// MapItem is the shared geo/organisation part embedded in both Recycle and
// Story entries. Entries without both coordinates stay off the map.
type MapItem struct {
	Latitude     *float64 `bson:"latitude,omitempty" json:"latitude"`
	Longitude    *float64 `bson:"longitude,omitempty" json:"longitude"`
	Name         string   `bson:"name,omitempty" json:"name,omitempty"`
	Organisation string   `bson:"organisation,omitempty" json:"organisation,omitempty"`
	Year         *int     `bson:"year,omitempty" json:"year"`
	Address      string   `bson:"address,omitempty" json:"address,omitempty"`
	Postcode     string   `bson:"postcode,omitempty" json:"postcode,omitempty"`
	City         string   `bson:"city,omitempty" json:"city,omitempty"`
	IsActive     bool     `bson:"isActive" json:"isActive"`
}

// Recycle is a surplus building material listing pinned on the map.
type Recycle struct {
	ID                  string    `bson:"_id,omitempty" json:"id"`
	MapItem             MapItem   `bson:"mapItem" json:"mapItem"`
	ProjectType         string    `bson:"projectType" json:"projectType"`
	Month               *int      `bson:"month,omitempty" json:"month"`
	Description         string    `bson:"description,omitempty" json:"description,omitempty"`
	Contact             string    `bson:"contact,omitempty" json:"contact,omitempty"`
	ExternalLinks       string    `bson:"externalLinks,omitempty" json:"externalLinks,omitempty"`
	AvailableMaterials  string    `bson:"availableMaterials,omitempty" json:"availableMaterials,omitempty"`
	LookingForMaterials string    `bson:"lookingForMaterials,omitempty" json:"lookingForMaterials,omitempty"`
	Attachment          []byte    `bson:"attachment,omitempty" json:"attachment,omitempty"`
	IsPublic            bool      `bson:"isPublic" json:"isPublic"`
	CreatedAt           time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Story is a student project case study pinned on the map.
type Story struct {
	ID                 string    `bson:"_id,omitempty" json:"id"`
	MapItem            MapItem   `bson:"mapItem" json:"mapItem"`
	CategorySwedish    string    `bson:"categorySwedish,omitempty" json:"categorySwedish,omitempty"`
	EducationalProgram string    `bson:"educationalProgram,omitempty" json:"educationalProgram,omitempty"`
	DescriptionSwedish string    `bson:"descriptionSwedish,omitempty" json:"descriptionSwedish,omitempty"`
	ReportLink         string    `bson:"reportLink,omitempty" json:"reportLink,omitempty"`
	ReportSite         string    `bson:"reportSite,omitempty" json:"reportSite,omitempty"`
	ReportTitle        string    `bson:"reportTitle,omitempty" json:"reportTitle,omitempty"`
	Videos             string    `bson:"videos,omitempty" json:"videos,omitempty"`
	PdfCase            string    `bson:"pdfCase,omitempty" json:"pdfCase,omitempty"`
	OpenData           string    `bson:"openData,omitempty" json:"openData,omitempty"`
	ReportAuthor       string    `bson:"reportAuthor,omitempty" json:"reportAuthor,omitempty"`
	ReportContact      string    `bson:"reportContact,omitempty" json:"reportContact,omitempty"`
	IsEnergyStory      bool      `bson:"isEnergyStory" json:"isEnergyStory"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}

// User is an account that may create or edit map entries. A recycler is
// scoped to the organisations listed on the account.
type User struct {
	ID                   string    `bson:"_id,omitempty" json:"id"`
	Email                string    `bson:"email" json:"email"`
	PasswordHash         string    `bson:"passwordHash" json:"-"`
	IsAdmin              bool      `bson:"isAdmin" json:"isAdmin"`
	IsRecycler           bool      `bson:"isRecycler" json:"isRecycler"`
	IsStoryteller        bool      `bson:"isStoryteller" json:"isStoryteller"`
	RecycleOrganisations []string  `bson:"recycleOrganisations,omitempty" json:"recycleOrganisations,omitempty"`
	CreatedAt            time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DisplayProjectType maps the legacy "Rivning" value to its current label.
func DisplayProjectType(projectType string) string {
	if strings.EqualFold(projectType, ProjectTypeRivning) {
		return ProjectTypeDemontering
	}
	return projectType
}
