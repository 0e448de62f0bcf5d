package handlers

import (
	"log/slog"
	"net/http"

	"aterbruk-backend/internal/auth"
	"aterbruk-backend/internal/config"
	"aterbruk-backend/internal/db"
	"aterbruk-backend/internal/middleware"
	"aterbruk-backend/internal/validation"
)

// Server holds the shared dependencies of the account and session handlers.
type Server struct {
	Cfg  *config.Config
	Cols *db.Collections
	Val  *validation.Validator
	Auth *auth.Manager
	Log  *slog.Logger
}

func (s *Server) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return s.Log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return s.Log.With(slog.String("request_id", id))
	}
	return s.Log
}
