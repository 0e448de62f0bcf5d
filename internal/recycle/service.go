package recycle

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

var (
	ErrNotFound           = errors.New("recycle entry not found")
	ErrAttachmentTooLarge = errors.New("attachment too large")
	ErrWrongOrganisation  = errors.New("organisation not allowed for this account")
)

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
		resolver:  pins.NewResolver(pins.RecycleIcons(), pins.DefaultPin),
		collector: collector,
		location:  location,
	}
}

func (s *Service) Create(ctx context.Context, identity *auth.Identity, req UpsertRequest) (models.Recycle, error) {
	if err := s.authoriseOrganisation(identity, req.MapItem.Organisation); err != nil {
		return models.Recycle{}, err
	}
	if len(req.Attachment) > models.MaxAttachmentBytes {
		return models.Recycle{}, ErrAttachmentTooLarge
	}

	now := time.Now().In(s.location)
	item := models.Recycle{
		ID:                  primitive.NewObjectID().Hex(),
		MapItem:             s.buildMapItem(req.MapItem, req.IsActive),
		ProjectType:         strings.TrimSpace(req.ProjectType),
		Month:               req.Month,
		Description:         s.sanitizer.Text(req.Description),
		Contact:             s.sanitizer.Text(req.Contact),
		ExternalLinks:       s.sanitizer.Text(req.ExternalLinks),
		AvailableMaterials:  utils.JoinTags(req.AvailableMaterials),
		LookingForMaterials: utils.JoinTags(req.LookingForMaterials),
		Attachment:          req.Attachment,
		IsPublic:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if req.IsPublic != nil {
		item.IsPublic = *req.IsPublic
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return models.Recycle{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, identity *auth.Identity, id string, req UpsertRequest) (models.Recycle, error) {
	if err := s.authoriseOrganisation(identity, req.MapItem.Organisation); err != nil {
		return models.Recycle{}, err
	}
	if len(req.Attachment) > models.MaxAttachmentBytes {
		return models.Recycle{}, ErrAttachmentTooLarge
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	set := bson.M{
		"mapItem":             s.buildMapItem(req.MapItem, req.IsActive),
		"projectType":         strings.TrimSpace(req.ProjectType),
		"month":               req.Month,
		"description":         s.sanitizer.Text(req.Description),
		"contact":             s.sanitizer.Text(req.Contact),
		"externalLinks":       s.sanitizer.Text(req.ExternalLinks),
		"availableMaterials":  utils.JoinTags(req.AvailableMaterials),
		"lookingForMaterials": utils.JoinTags(req.LookingForMaterials),
		"attachment":          req.Attachment,
		"isPublic":            isPublic,
		"updatedAt":           time.Now().In(s.location),
	}

	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Recycle{}, ErrNotFound
		}
		return models.Recycle{}, err
	}
	return displayEntry(updated), nil
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

func (s *Service) GetByID(ctx context.Context, id string) (models.Recycle, error) {
	item, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Recycle{}, ErrNotFound
		}
		return models.Recycle{}, err
	}
	return displayEntry(item), nil
}

// ListForViewer returns the entries the viewer may see: the public active
// set for everyone, plus the viewer's own organisations for a recycler,
// plus everything (inactive included) for an admin. The merged list is
// deduplicated and sorted.
func (s *Service) ListForViewer(ctx context.Context, identity *auth.Identity) ([]models.Recycle, error) {
	items, err := s.repo.ListPublic(ctx)
	if err != nil {
		return nil, err
	}

	if identity != nil && identity.IsRecycler && len(identity.RecycleOrganisations) > 0 {
		own, err := s.repo.ListByOrganisations(ctx, identity.RecycleOrganisations)
		if err != nil {
			return nil, err
		}
		items = append(items, own...)
	}

	if identity != nil && identity.IsAdmin {
		all, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, all...)
	}

	items = dedupe(items)
	sort.SliceStable(items, func(i, j int) bool {
		a := strings.ToLower(items[i].MapItem.Name)
		b := strings.ToLower(items[j].MapItem.Name)
		if a != b {
			return a < b
		}
		return items[i].ID < items[j].ID
	})

	for i := range items {
		items[i] = displayEntry(items[i])
	}
	return items, nil
}

// Markers runs the filter pipeline over the viewer's entries and projects
// the survivors onto map markers.
func (s *Service) Markers(ctx context.Context, identity *auth.Identity, f filter.RecycleFilter) ([]pins.Marker, filter.RecycleBadges, error) {
	items, err := s.ListForViewer(ctx, identity)
	if err != nil {
		return nil, filter.RecycleBadges{}, err
	}

	filtered := filter.RunRecycleFilters(items, f)
	markers := pins.RecycleMarkers(filtered, s.resolver, f.ProjectType)

	if s.collector != nil {
		s.collector.RecordFilterRun("recycle")
		s.collector.RecordMarkersBuilt("recycle", len(markers))
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

// authoriseOrganisation limits recyclers to the organisations on their
// account. Admins may write for any organisation.
func (s *Service) authoriseOrganisation(identity *auth.Identity, organisation string) error {
	if identity == nil || identity.IsAdmin {
		return nil
	}
	organisation = strings.TrimSpace(organisation)
	for _, org := range identity.RecycleOrganisations {
		if org == organisation {
			return nil
		}
	}
	return ErrWrongOrganisation
}

func displayEntry(item models.Recycle) models.Recycle {
	item.ProjectType = models.DisplayProjectType(item.ProjectType)
	return item
}

func dedupe(items []models.Recycle) []models.Recycle {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		out = append(out, item)
	}
	return out
}
