package stories

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"aterbruk-backend/internal/cache"
	"aterbruk-backend/internal/filter"
	"aterbruk-backend/internal/httpx"
	"aterbruk-backend/internal/middleware"
	"aterbruk-backend/internal/transport"
	"aterbruk-backend/internal/validation"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service  *Service
	val      *validation.Validator
	cache    cache.Cache
	cacheTTL time.Duration
	log      *slog.Logger
}

func NewHandler(service *Service, val *validation.Validator, c cache.Cache, cacheTTL time.Duration, log *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		val:      val,
		cache:    c,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	identity := middleware.IdentityFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if identity == nil {
		if payload, ok, err := h.cache.Get(ctx, cache.KeyStoriesPublic); err == nil && ok {
			log.Info("stories list: cache hit")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(payload)
			return
		}
	}

	items, err := h.service.ListForViewer(ctx, identity)
	if err != nil {
		log.Error("stories list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	body := map[string]interface{}{
		"items": items,
	}
	if identity == nil {
		if payload, err := json.Marshal(body); err == nil {
			if err := h.cache.Set(ctx, cache.KeyStoriesPublic, payload, h.cacheTTL); err != nil {
				log.Warn("stories list: cache set failed", slog.String("error", err.Error()))
			}
		}
	}

	log.Info("stories list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, body)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("stories get: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("stories get: not found", slog.String("story_id", id))
			transport.WriteError(w, http.StatusNotFound, "story not found", nil)
			return
		}
		log.Error("stories get: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("stories get: ok", slog.String("story_id", id))
	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) Markers(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	identity := middleware.IdentityFromContext(r.Context())

	f, err := parseStoryFilter(r)
	if err != nil {
		log.Warn("stories markers: invalid query", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	markers, badges, err := h.service.Markers(ctx, identity, f)
	if err != nil {
		log.Error("stories markers: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("stories markers: ok", slog.Int("count", len(markers)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"markers": markers,
		"badges":  badges,
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req UpsertRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("stories create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("stories create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Create(ctx, req)
	if err != nil {
		log.Error("stories create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	h.invalidateCache(ctx, log)
	log.Info("stories create: ok", slog.String("story_id", item.ID))
	transport.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("stories update: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	var req UpsertRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("stories update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("stories update: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("stories update: not found", slog.String("story_id", id))
			transport.WriteError(w, http.StatusNotFound, "story not found", nil)
			return
		}
		log.Error("stories update: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	h.invalidateCache(ctx, log)
	log.Info("stories update: ok", slog.String("story_id", id))
	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("stories delete: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("stories delete: not found", slog.String("story_id", id))
			transport.WriteError(w, http.StatusNotFound, "story not found", nil)
			return
		}
		log.Error("stories delete: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	h.invalidateCache(ctx, log)
	log.Info("stories delete: ok", slog.String("story_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) invalidateCache(ctx context.Context, log *slog.Logger) {
	if err := h.cache.Delete(ctx, cache.KeyStoriesPublic); err != nil {
		log.Warn("stories cache invalidate failed", slog.String("error", err.Error()))
	}
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}

func parseStoryFilter(r *http.Request) (filter.StoryFilter, error) {
	q := r.URL.Query()

	years, err := httpx.ParseIntList(q, "years")
	if err != nil {
		return filter.StoryFilter{}, err
	}

	return filter.StoryFilter{
		Categories:   httpx.ParseStringList(q, "categories"),
		Years:        years,
		Organisation: httpx.ParseStringList(q, "organisation"),
		ShowInactive: httpx.ParseBool(q, "showInactive"),
		EnergyStory:  httpx.ParseBool(q, "energyStory"),
		SearchInput:  strings.TrimSpace(q.Get("search")),
	}, nil
}
