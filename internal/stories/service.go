package stories

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"aterbruk-backend/internal/auth"
	"aterbruk-backend/internal/filter"
	"aterbruk-backend/internal/metrics"
	"aterbruk-backend/internal/models"
	"aterbruk-backend/internal/pins"
	"aterbruk-backend/internal/sanitize"
	"aterbruk-backend/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("story not found")

type Service struct {
	repo      Repository
	sanitizer *sanitize.Sanitizer
	resolver  *pins.Resolver
	collector *metrics.Collector
	location  *time.Location
}

func NewService(repo Repository, sanitizer *sanitize.Sanitizer, collector *metrics.Collector, location *time.Location) *Service {
	return &Service{
		repo:      repo,
		sanitizer: sanitizer,
		resolver:  pins.NewResolver(pins.StoryIcons(), pins.DefaultPin),
		collector: collector,
		location:  location,
	}
}

func (s *Service) Create(ctx context.Context, req UpsertRequest) (models.Story, error) {
	now := time.Now().In(s.location)
	item := models.Story{
		ID:                 primitive.NewObjectID().Hex(),
		MapItem:            s.buildMapItem(req.MapItem, req.IsActive),
		CategorySwedish:    joinCategories(req.Categories),
		EducationalProgram: utils.CapitalizeFirst(req.EducationalProgram),
		DescriptionSwedish: s.sanitizer.Text(req.Description),
		ReportLink:         strings.TrimSpace(req.ReportLink),
		ReportSite:         strings.TrimSpace(req.ReportSite),
		ReportTitle:        s.sanitizer.Text(req.ReportTitle),
		Videos:             strings.TrimSpace(req.Videos),
		PdfCase:            strings.TrimSpace(req.PdfCase),
		OpenData:           strings.TrimSpace(req.OpenData),
		ReportAuthor:       s.sanitizer.Text(req.ReportAuthor),
		ReportContact:      s.sanitizer.Text(req.ReportContact),
		IsEnergyStory:      req.IsEnergyStory,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return models.Story{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpsertRequest) (models.Story, error) {
	set := bson.M{
		"mapItem":            s.buildMapItem(req.MapItem, req.IsActive),
		"categorySwedish":    joinCategories(req.Categories),
		"educationalProgram": utils.CapitalizeFirst(req.EducationalProgram),
		"descriptionSwedish": s.sanitizer.Text(req.Description),
		"reportLink":         strings.TrimSpace(req.ReportLink),
		"reportSite":         strings.TrimSpace(req.ReportSite),
		"reportTitle":        s.sanitizer.Text(req.ReportTitle),
		"videos":             strings.TrimSpace(req.Videos),
		"pdfCase":            strings.TrimSpace(req.PdfCase),
		"openData":           strings.TrimSpace(req.OpenData),
		"reportAuthor":       s.sanitizer.Text(req.ReportAuthor),
		"reportContact":      s.sanitizer.Text(req.ReportContact),
		"isEnergyStory":      req.IsEnergyStory,
		"updatedAt":          time.Now().In(s.location),
	}

	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Story{}, ErrNotFound
		}
		return models.Story{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (models.Story, error) {
	item, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Story{}, ErrNotFound
		}
		return models.Story{}, err
	}
	return item, nil
}

// ListForViewer returns the active stories for everyone; admins also see
// inactive ones.
func (s *Service) ListForViewer(ctx context.Context, identity *auth.Identity) ([]models.Story, error) {
	var (
		items []models.Story
		err   error
	)
	if identity != nil && identity.IsAdmin {
		items, err = s.repo.ListAll(ctx)
	} else {
		items, err = s.repo.ListActive(ctx)
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		a := strings.ToLower(items[i].MapItem.Name)
		b := strings.ToLower(items[j].MapItem.Name)
		if a != b {
			return a < b
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

// Markers runs the filter pipeline over the viewer's stories and projects
// the survivors onto map markers.
func (s *Service) Markers(ctx context.Context, identity *auth.Identity, f filter.StoryFilter) ([]pins.Marker, filter.StoryBadges, error) {
	items, err := s.ListForViewer(ctx, identity)
	if err != nil {
		return nil, filter.StoryBadges{}, err
	}

	filtered := filter.RunStoryFilters(items, f)
	markers := pins.StoryMarkers(filtered, s.resolver, f.Categories)

	if s.collector != nil {
		s.collector.RecordFilterRun("stories")
		s.collector.RecordMarkersBuilt("stories", len(markers))
	}
	return markers, f.Badges(), nil
}

func (s *Service) buildMapItem(req MapItemRequest, isActive *bool) models.MapItem {
	item := models.MapItem{
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Name:         strings.TrimSpace(req.Name),
		Organisation: strings.TrimSpace(req.Organisation),
		Year:         req.Year,
		Address:      strings.TrimSpace(req.Address),
		Postcode:     strings.TrimSpace(req.Postcode),
		City:         strings.TrimSpace(req.City),
		IsActive:     true,
	}
	if isActive != nil {
		item.IsActive = *isActive
	}
	return item
}

// joinCategories normalizes each category tag before storing them as one
// delimited string.
func joinCategories(categories []string) string {
	clean := make([]string, 0, len(categories))
	for _, category := range categories {
		if c := utils.CapitalizeFirst(category); c != "" {
			clean = append(clean, c)
		}
	}
	return utils.JoinTags(clean)
}
