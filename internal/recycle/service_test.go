package recycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"aterbruk-backend/internal/auth"
	"aterbruk-backend/internal/filter"
	"aterbruk-backend/internal/models"
	"aterbruk-backend/internal/sanitize"

	"github.com/google/go-cmp/cmp"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeRepo serves canned entries and records writes, standing in for the
// mongo collection.
type fakeRepo struct {
	public  []models.Recycle
	byOrg   map[string][]models.Recycle
	all     []models.Recycle
	created []models.Recycle
}

func (f *fakeRepo) Create(ctx context.Context, item models.Recycle) error {
	f.created = append(f.created, item)
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, set bson.M) (models.Recycle, error) {
	return models.Recycle{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) Delete(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (models.Recycle, error) {
	for _, item := range f.all {
		if item.ID == id {
			return item, nil
		}
	}
	return models.Recycle{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) ListPublic(ctx context.Context) ([]models.Recycle, error) {
	return append([]models.Recycle(nil), f.public...), nil
}

func (f *fakeRepo) ListByOrganisations(ctx context.Context, organisations []string) ([]models.Recycle, error) {
	var out []models.Recycle
	for _, org := range organisations {
		out = append(out, f.byOrg[org]...)
	}
	return out, nil
}

func (f *fakeRepo) ListAll(ctx context.Context) ([]models.Recycle, error) {
	return append([]models.Recycle(nil), f.all...), nil
}

func testService(repo Repository) *Service {
	return NewService(repo, sanitize.New(), nil, time.UTC)
}

func TestListForViewerRoleExpansion(t *testing.T) {
	public := models.Recycle{ID: "p1", MapItem: models.MapItem{Name: "Allmän", IsActive: true}, IsPublic: true}
	own := models.Recycle{ID: "o1", MapItem: models.MapItem{Name: "Egen", Organisation: "Uppsalahem", IsActive: true}}
	hidden := models.Recycle{ID: "h1", MapItem: models.MapItem{Name: "Dold", IsActive: false}}

	repo := &fakeRepo{
		public: []models.Recycle{public},
		byOrg:  map[string][]models.Recycle{"Uppsalahem": {own}},
		all:    []models.Recycle{public, own, hidden},
	}
	svc := testService(repo)
	ctx := context.Background()

	t.Run("anonymous sees public only", func(t *testing.T) {
		items, err := svc.ListForViewer(ctx, nil)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"p1"}, itemIDs(items)); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("recycler sees public plus own organisations", func(t *testing.T) {
		identity := &auth.Identity{IsRecycler: true, RecycleOrganisations: []string{"Uppsalahem"}}
		items, err := svc.ListForViewer(ctx, identity)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"p1", "o1"}, itemIDs(items)); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("admin sees everything deduplicated", func(t *testing.T) {
		identity := &auth.Identity{IsAdmin: true}
		items, err := svc.ListForViewer(ctx, identity)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"p1", "h1", "o1"}, itemIDs(items)); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestListForViewerNormalizesLegacyProjectType(t *testing.T) {
	repo := &fakeRepo{
		public: []models.Recycle{
			{ID: "r1", MapItem: models.MapItem{Name: "Gammal", IsActive: true}, ProjectType: "Rivning", IsPublic: true},
		},
	}
	svc := testService(repo)

	items, err := svc.ListForViewer(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if items[0].ProjectType != models.ProjectTypeDemontering {
		t.Fatalf("project type = %q, want %q", items[0].ProjectType, models.ProjectTypeDemontering)
	}
}

func TestCreateSanitizesAndJoinsTags(t *testing.T) {
	repo := &fakeRepo{}
	svc := testService(repo)

	lat, lon := 59.86, 17.63
	req := UpsertRequest{
		MapItem: MapItemRequest{
			Latitude:     &lat,
			Longitude:    &lon,
			Name:         " Hugin ",
			Organisation: "Uppsala kommun",
		},
		ProjectType:        "Demontering",
		Description:        "<b>Betong</b> och stål",
		AvailableMaterials: []string{" Betong", "Stål "},
	}

	item, err := svc.Create(context.Background(), nil, req)
	if err != nil {
		t.Fatal(err)
	}
	if item.Description != "Betong och stål" {
		t.Errorf("description = %q, markup should be stripped", item.Description)
	}
	if item.AvailableMaterials != "Betong, Stål" {
		t.Errorf("available materials = %q", item.AvailableMaterials)
	}
	if item.MapItem.Name != "Hugin" {
		t.Errorf("name = %q, should be trimmed", item.MapItem.Name)
	}
	if !item.MapItem.IsActive || !item.IsPublic {
		t.Error("new entries default to active and public")
	}
	if item.ID == "" {
		t.Error("entry should get an id")
	}
	if len(repo.created) != 1 {
		t.Fatalf("repo writes = %d, want 1", len(repo.created))
	}
}

func TestCreateRejectsOversizedAttachment(t *testing.T) {
	svc := testService(&fakeRepo{})

	req := UpsertRequest{
		MapItem:     MapItemRequest{Organisation: "Uppsala kommun"},
		ProjectType: "Demontering",
		Attachment:  make([]byte, models.MaxAttachmentBytes+1),
	}
	if _, err := svc.Create(context.Background(), nil, req); !errors.Is(err, ErrAttachmentTooLarge) {
		t.Fatalf("err = %v, want ErrAttachmentTooLarge", err)
	}
}

func TestCreateEnforcesRecyclerOrganisation(t *testing.T) {
	svc := testService(&fakeRepo{})
	identity := &auth.Identity{IsRecycler: true, RecycleOrganisations: []string{"Uppsalahem"}}

	req := UpsertRequest{
		MapItem:     MapItemRequest{Organisation: "Vasakronan"},
		ProjectType: "Demontering",
	}
	if _, err := svc.Create(context.Background(), identity, req); !errors.Is(err, ErrWrongOrganisation) {
		t.Fatalf("err = %v, want ErrWrongOrganisation", err)
	}

	req.MapItem.Organisation = "Uppsalahem"
	if _, err := svc.Create(context.Background(), identity, req); err != nil {
		t.Fatalf("own organisation rejected: %v", err)
	}
}

func TestMarkersComposesFilterAndProjection(t *testing.T) {
	lat, lon := 59.86, 17.63
	repo := &fakeRepo{
		public: []models.Recycle{
			{ID: "demo", MapItem: models.MapItem{Latitude: &lat, Longitude: &lon, Name: "A", IsActive: true}, ProjectType: "Demontering", IsPublic: true},
			{ID: "nybygg", MapItem: models.MapItem{Latitude: &lat, Longitude: &lon, Name: "B", IsActive: true}, ProjectType: "Nybyggnation", IsPublic: true},
			{ID: "no-coords", MapItem: models.MapItem{Name: "C", IsActive: true}, ProjectType: "Demontering", IsPublic: true},
		},
	}
	svc := testService(repo)

	markers, badges, err := svc.Markers(context.Background(), nil, filter.RecycleFilter{ProjectType: []string{"Demontering"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(markers) != 1 || markers[0].ID != "demo" {
		t.Fatalf("markers = %+v, want only entry demo", markers)
	}
	if !badges.ProjectType {
		t.Error("project type badge should be set")
	}
}

func itemIDs(items []models.Recycle) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}
