package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"aterbruk-backend/internal/auth"
	"aterbruk-backend/internal/httpx"
	"aterbruk-backend/internal/models"
	"aterbruk-backend/internal/transport"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserCreateRequest struct {
	Email                string   `json:"email" validate:"required,email"`
	Password             string   `json:"password" validate:"required,min=8"`
	IsAdmin              bool     `json:"isAdmin"`
	IsRecycler           bool     `json:"isRecycler"`
	IsStoryteller        bool     `json:"isStoryteller"`
	RecycleOrganisations []string `json:"recycleOrganisations"`
}

type UserUpdateRequest struct {
	Password             string   `json:"password" validate:"omitempty,min=8"`
	IsAdmin              *bool    `json:"isAdmin"`
	IsRecycler           *bool    `json:"isRecycler"`
	IsStoryteller        *bool    `json:"isStoryteller"`
	RecycleOrganisations []string `json:"recycleOrganisations"`
}

// AdminListUsers returns every account, paginated.
func (s *Server) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	limit, offset, err := httpx.ParseLimitOffset(r.URL.Query(), 20, 100)
	if err != nil {
		log.Warn("admin users list: invalid query", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	total, err := s.Cols.Users.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Error("admin users list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "email", Value: 1}}).
		SetLimit(limit).
		SetSkip(offset)
	cursor, err := s.Cols.Users.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Error("admin users list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			log.Error("admin users list: decode error", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
			return
		}
		users = append(users, user)
	}
	if err := cursor.Err(); err != nil {
		log.Error("admin users list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin users list: ok", slog.Int("count", len(users)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items":  users,
		"limit":  limit,
		"offset": offset,
		"total":  total,
	})
}

// AdminCreateUser creates an account with any combination of roles.
func (s *Server) AdminCreateUser(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req UserCreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin users create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	req.Email = normalizeEmail(req.Email)
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin users create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(s.Val.ValidationErrors(err)))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Error("admin users create: hash error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "password error", nil)
		return
	}

	now := time.Now().In(s.Cfg.Timezone)
	user := models.User{
		ID:                   primitive.NewObjectID().Hex(),
		Email:                req.Email,
		PasswordHash:         hash,
		IsAdmin:              req.IsAdmin,
		IsRecycler:           req.IsRecycler,
		IsStoryteller:        req.IsStoryteller,
		RecycleOrganisations: trimmedOrganisations(req.RecycleOrganisations),
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := s.Cols.Users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Warn("admin users create: duplicate", slog.String("email", req.Email))
			transport.WriteError(w, http.StatusConflict, "email already exists", nil)
			return
		}
		log.Error("admin users create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin users create: ok", slog.String("user_id", user.ID))
	transport.WriteJSON(w, http.StatusCreated, user)
}

// AdminUpdateUser changes roles, organisations, or the password of an
// account. Omitted fields are left alone.
func (s *Server) AdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("admin users update: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	var req UserUpdateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin users update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin users update: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(s.Val.ValidationErrors(err)))
		return
	}

	set := bson.M{"updatedAt": time.Now().In(s.Cfg.Timezone)}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			log.Error("admin users update: hash error", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusInternalServerError, "password error", nil)
			return
		}
		set["passwordHash"] = hash
	}
	if req.IsAdmin != nil {
		set["isAdmin"] = *req.IsAdmin
	}
	if req.IsRecycler != nil {
		set["isRecycler"] = *req.IsRecycler
	}
	if req.IsStoryteller != nil {
		set["isStoryteller"] = *req.IsStoryteller
	}
	if req.RecycleOrganisations != nil {
		set["recycleOrganisations"] = trimmedOrganisations(req.RecycleOrganisations)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := s.Cols.Users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		log.Error("admin users update: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	if res.MatchedCount == 0 {
		log.Warn("admin users update: not found", slog.String("user_id", id))
		transport.WriteError(w, http.StatusNotFound, "user not found", nil)
		return
	}

	log.Info("admin users update: ok", slog.String("user_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// AdminDeleteUser removes an account.
func (s *Server) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("admin users delete: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := s.Cols.Users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Error("admin users delete: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	if res.DeletedCount == 0 {
		log.Warn("admin users delete: not found", slog.String("user_id", id))
		transport.WriteError(w, http.StatusNotFound, "user not found", nil)
		return
	}

	log.Info("admin users delete: ok", slog.String("user_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func trimmedOrganisations(orgs []string) []string {
	out := make([]string, 0, len(orgs))
	for _, org := range orgs {
		if o := strings.TrimSpace(org); o != "" {
			out = append(out, o)
		}
	}
	return out
}
