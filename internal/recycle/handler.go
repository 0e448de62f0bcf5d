package recycle

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

// List returns the entries the viewer may see. Anonymous responses are the
// same for everyone, so they are served from cache when possible.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	identity := middleware.IdentityFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if identity == nil {
		if payload, ok, err := h.cache.Get(ctx, cache.KeyRecyclePublic); err == nil && ok {
			log.Info("recycle list: cache hit")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(payload)
			return
		}
	}

	items, err := h.service.ListForViewer(ctx, identity)
	if err != nil {
		log.Error("recycle list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	body := map[string]interface{}{
		"items": items,
	}
	if identity == nil {
		if payload, err := json.Marshal(body); err == nil {
			if err := h.cache.Set(ctx, cache.KeyRecyclePublic, payload, h.cacheTTL); err != nil {
				log.Warn("recycle list: cache set failed", slog.String("error", err.Error()))
			}
		}
	}

	log.Info("recycle list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, body)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("recycle get: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("recycle get: not found", slog.String("recycle_id", id))
			transport.WriteError(w, http.StatusNotFound, "recycle entry not found", nil)
			return
		}
		log.Error("recycle get: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("recycle get: ok", slog.String("recycle_id", id))
	transport.WriteJSON(w, http.StatusOK, item)
}

// Markers runs the filter pipeline with the state carried in the query
// string and returns markers plus filter badges.
func (h *Handler) Markers(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	identity := middleware.IdentityFromContext(r.Context())

	f, err := parseRecycleFilter(r)
	if err != nil {
		log.Warn("recycle markers: invalid query", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	markers, badges, err := h.service.Markers(ctx, identity, f)
	if err != nil {
		log.Error("recycle markers: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("recycle markers: ok", slog.Int("count", len(markers)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"markers": markers,
		"badges":  badges,
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req UpsertRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("recycle create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("recycle create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Create(ctx, middleware.IdentityFromContext(r.Context()), req)
	if err != nil {
		h.writeServiceError(w, log, "recycle create", err)
		return
	}

	h.invalidateCache(ctx, log)
	log.Info("recycle create: ok", slog.String("recycle_id", item.ID))
	transport.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("recycle update: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	var req UpsertRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("recycle update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("recycle update: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Update(ctx, middleware.IdentityFromContext(r.Context()), id, req)
	if err != nil {
		h.writeServiceError(w, log, "recycle update", err)
		return
	}

	h.invalidateCache(ctx, log)
	log.Info("recycle update: ok", slog.String("recycle_id", id))
	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("recycle delete: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("recycle delete: not found", slog.String("recycle_id", id))
			transport.WriteError(w, http.StatusNotFound, "recycle entry not found", nil)
			return
		}
		log.Error("recycle delete: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	h.invalidateCache(ctx, log)
	log.Info("recycle delete: ok", slog.String("recycle_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		log.Warn(op + ": not found")
		transport.WriteError(w, http.StatusNotFound, "recycle entry not found", nil)
	case errors.Is(err, ErrAttachmentTooLarge):
		log.Warn(op + ": attachment too large")
		transport.WriteError(w, http.StatusRequestEntityTooLarge, "attachment too large", nil)
	case errors.Is(err, ErrWrongOrganisation):
		log.Warn(op + ": organisation not allowed")
		transport.WriteError(w, http.StatusForbidden, "organisation not allowed for this account", nil)
	default:
		log.Error(op+": database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
	}
}

func (h *Handler) invalidateCache(ctx context.Context, log *slog.Logger) {
	if err := h.cache.Delete(ctx, cache.KeyRecyclePublic); err != nil {
		log.Warn("recycle cache invalidate failed", slog.String("error", err.Error()))
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

func parseRecycleFilter(r *http.Request) (filter.RecycleFilter, error) {
	q := r.URL.Query()

	years, err := httpx.ParseIntList(q, "years")
	if err != nil {
		return filter.RecycleFilter{}, err
	}
	months, err := httpx.ParseIntList(q, "months")
	if err != nil {
		return filter.RecycleFilter{}, err
	}

	return filter.RecycleFilter{
		ProjectType:          httpx.ParseStringList(q, "projectType"),
		Years:                years,
		Months:               months,
		AvailableCategories:  httpx.ParseStringList(q, "available"),
		LookingForCategories: httpx.ParseStringList(q, "lookingFor"),
		Organisation:         httpx.ParseStringList(q, "organisation"),
		ShowInactive:         httpx.ParseBool(q, "showInactive"),
		Attachment:           httpx.ParseBool(q, "attachment"),
		SearchInput:          strings.TrimSpace(q.Get("search")),
	}, nil
}
