package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"aterbruk-backend/internal/auth"
	"aterbruk-backend/internal/httpx"
	"aterbruk-backend/internal/models"
	"aterbruk-backend/internal/transport"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	SetupKey string `json:"setupKey" validate:"required"`
}

type SessionResponse struct {
	Status   string        `json:"status"`
	Identity auth.Identity `json:"identity"`
}

// Login checks the credentials and sets the session cookies.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req LoginRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("login: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	req.Email = normalizeEmail(req.Email)
	if err := s.Val.Struct(req); err != nil {
		log.Warn("login: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(s.Val.ValidationErrors(err)))
		return
	}
	if s.Auth == nil || len(s.Auth.Secret) == 0 {
		log.Warn("login: auth not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "auth not configured", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := s.Cols.Users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user); err != nil {
		log.Warn("login: unknown email", slog.String("email", req.Email))
		transport.WriteError(w, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	if err := auth.ComparePassword(user.PasswordHash, req.Password); err != nil {
		log.Warn("login: wrong password", slog.String("user_id", user.ID))
		transport.WriteError(w, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	identity := identityFromUser(user)
	if err := s.issueSession(w, identity); err != nil {
		log.Error("login: token error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}

	log.Info("login: ok", slog.String("user_id", user.ID))
	transport.WriteJSON(w, http.StatusOK, SessionResponse{Status: "ok", Identity: identity})
}

// Refresh rotates both cookies from a valid refresh cookie.
func (s *Server) Refresh(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	if s.Auth == nil || len(s.Auth.Secret) == 0 {
		log.Warn("refresh: auth not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "auth not configured", nil)
		return
	}

	cookie, err := r.Cookie(auth.RefreshCookie)
	if err != nil || cookie.Value == "" {
		log.Warn("refresh: missing cookie")
		transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	claims, err := s.Auth.Parse(cookie.Value)
	if err != nil {
		log.Warn("refresh: invalid token")
		transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	// Re-read the account so role or organisation changes take effect on
	// the next refresh instead of at cookie expiry.
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := s.Cols.Users.FindOne(ctx, bson.M{"_id": claims.UserID}).Decode(&user); err != nil {
		log.Warn("refresh: account gone", slog.String("user_id", claims.UserID))
		auth.ClearAuthCookies(w, s.Cfg.CookieSecure)
		transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	identity := identityFromUser(user)
	if err := s.issueSession(w, identity); err != nil {
		log.Error("refresh: token error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}

	log.Info("refresh: ok", slog.String("user_id", user.ID))
	transport.WriteJSON(w, http.StatusOK, SessionResponse{Status: "ok", Identity: identity})
}

// Logout clears the session cookies.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	auth.ClearAuthCookies(w, s.Cfg.CookieSecure)
	log.Info("logout: ok")
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Register bootstraps the first admin account. It is gated on the setup key
// so the endpoint can stay mounted in production.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req RegisterRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("register: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	req.Email = normalizeEmail(req.Email)
	if err := s.Val.Struct(req); err != nil {
		log.Warn("register: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(s.Val.ValidationErrors(err)))
		return
	}
	if s.Cfg.AdminSetupKey == "" {
		log.Warn("register: setup key missing")
		transport.WriteError(w, http.StatusServiceUnavailable, "registration not configured", nil)
		return
	}
	if s.Auth == nil || len(s.Auth.Secret) == 0 {
		log.Warn("register: auth not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "auth not configured", nil)
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.SetupKey), []byte(s.Cfg.AdminSetupKey)) != 1 {
		log.Warn("register: invalid setup key", slog.String("email", req.Email))
		transport.WriteError(w, http.StatusUnauthorized, "invalid setup key", nil)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Error("register: hash error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "password error", nil)
		return
	}

	now := time.Now().In(s.Cfg.Timezone)
	user := models.User{
		ID:           primitive.NewObjectID().Hex(),
		Email:        req.Email,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := s.Cols.Users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Warn("register: duplicate", slog.String("email", req.Email))
			transport.WriteError(w, http.StatusConflict, "email already exists", nil)
			return
		}
		log.Error("register: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	identity := identityFromUser(user)
	if err := s.issueSession(w, identity); err != nil {
		log.Error("register: token error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}

	log.Info("register: ok", slog.String("user_id", user.ID))
	transport.WriteJSON(w, http.StatusCreated, SessionResponse{Status: "ok", Identity: identity})
}

func (s *Server) issueSession(w http.ResponseWriter, identity auth.Identity) error {
	access, err := s.Auth.NewAccessToken(identity)
	if err != nil {
		return err
	}
	refresh, err := s.Auth.NewRefreshToken(identity)
	if err != nil {
		return err
	}
	auth.SetAuthCookies(w, access, refresh, s.Auth.AccessTTL, s.Auth.RefreshTTL, s.Cfg.CookieSecure)
	return nil
}

func identityFromUser(user models.User) auth.Identity {
	return auth.Identity{
		UserID:               user.ID,
		Email:                user.Email,
		IsAdmin:              user.IsAdmin,
		IsRecycler:           user.IsRecycler,
		IsStoryteller:        user.IsStoryteller,
		RecycleOrganisations: user.RecycleOrganisations,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
