package recycle

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"aterbruk-backend/internal/cache"
	"aterbruk-backend/internal/filter"
	"aterbruk-backend/internal/models"
	"aterbruk-backend/internal/pins"
	"aterbruk-backend/internal/sanitize"
	"aterbruk-backend/internal/validation"
)

// memCache is a map-backed cache for handler tests.
type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (m *memCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func testHandler(repo Repository, c cache.Cache) *Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(repo, sanitize.New(), nil, time.UTC)
	return NewHandler(svc, validation.New(), c, time.Minute, log)
}

func TestMarkersEndpoint(t *testing.T) {
	lat, lon := 59.86, 17.63
	year := 2024
	repo := &fakeRepo{
		public: []models.Recycle{
			{ID: "demo", MapItem: models.MapItem{Latitude: &lat, Longitude: &lon, Name: "Hugin", Year: &year, IsActive: true}, ProjectType: "Demontering", IsPublic: true},
			{ID: "nybygg", MapItem: models.MapItem{Latitude: &lat, Longitude: &lon, Name: "Rosendal", IsActive: true}, ProjectType: "Nybyggnation", IsPublic: true},
		},
	}
	h := testHandler(repo, cache.NewNoop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recycle/markers?projectType=Demontering&search=hugin", nil)
	rec := httptest.NewRecorder()
	h.Markers(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Markers []pins.Marker        `json:"markers"`
		Badges  filter.RecycleBadges `json:"badges"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(body.Markers) != 1 || body.Markers[0].ID != "demo" {
		t.Fatalf("markers = %+v, want only entry demo", body.Markers)
	}
	if !body.Badges.ProjectType || !body.Badges.Search {
		t.Fatalf("badges = %+v, want projectType and search set", body.Badges)
	}
}

func TestMarkersEndpointRejectsBadYear(t *testing.T) {
	h := testHandler(&fakeRepo{}, cache.NewNoop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recycle/markers?years=abc", nil)
	rec := httptest.NewRecorder()
	h.Markers(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestListCachesAnonymousResponse(t *testing.T) {
	repo := &fakeRepo{
		public: []models.Recycle{
			{ID: "p1", MapItem: models.MapItem{Name: "Allmän", IsActive: true}, IsPublic: true},
		},
	}
	c := newMemCache()
	h := testHandler(repo, c)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recycle", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if _, ok := c.data[cache.KeyRecyclePublic]; !ok {
		t.Fatal("anonymous list should be written to the cache")
	}

	// A second anonymous request is served from cache with the same content.
	first := strings.TrimSpace(rec.Body.String())
	rec2 := httptest.NewRecorder()
	h.List(rec2, httptest.NewRequest(http.MethodGet, "/api/v1/recycle", nil))
	if strings.TrimSpace(rec2.Body.String()) != first {
		t.Fatal("cache hit should reproduce the original payload")
	}
}
