package middleware

import (
	"context"
	"net/http"

	"aterbruk-backend/internal/auth"
	"aterbruk-backend/internal/transport"
)

type identityKey struct{}

// Identity extracts the session cookie when present and attaches the parsed
// identity to the request context. It never rejects: public list endpoints
// use it to widen what a logged-in recycler or admin sees.
func Identity(manager *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if manager != nil {
				if cookie, err := r.Cookie(auth.AccessCookie); err == nil && cookie.Value != "" {
					if claims, err := manager.Parse(cookie.Value); err == nil {
						ctx := context.WithValue(r.Context(), identityKey{}, &claims.Identity)
						r = r.WithContext(ctx)
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func IdentityFromContext(ctx context.Context) *auth.Identity {
	if v := ctx.Value(identityKey{}); v != nil {
		if id, ok := v.(*auth.Identity); ok {
			return id
		}
	}
	return nil
}

// RequireAdmin admits requests carrying the static admin API key or an
// admin session cookie.
func RequireAdmin(adminKey string, manager *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminKey == "" && manager == nil {
				transport.WriteError(w, http.StatusServiceUnavailable, "auth not configured", nil)
				return
			}

			if adminKey != "" && r.Header.Get("X-Admin-Key") == adminKey {
				next.ServeHTTP(w, r)
				return
			}

			if id := sessionIdentity(r, manager); id != nil && id.IsAdmin {
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, id)))
				return
			}

			transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		})
	}
}

// RequireRecycler admits recyclers and admins.
func RequireRecycler(manager *auth.Manager) func(http.Handler) http.Handler {
	return requireRole(manager, func(id *auth.Identity) bool {
		return id.IsRecycler || id.IsAdmin
	})
}

// RequireStoryteller admits storytellers and admins.
func RequireStoryteller(manager *auth.Manager) func(http.Handler) http.Handler {
	return requireRole(manager, func(id *auth.Identity) bool {
		return id.IsStoryteller || id.IsAdmin
	})
}

func requireRole(manager *auth.Manager, allowed func(*auth.Identity) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if manager == nil {
				transport.WriteError(w, http.StatusServiceUnavailable, "auth not configured", nil)
				return
			}
			id := sessionIdentity(r, manager)
			if id == nil || !allowed(id) {
				transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, id)))
		})
	}
}

func sessionIdentity(r *http.Request, manager *auth.Manager) *auth.Identity {
	if manager == nil {
		return nil
	}
	cookie, err := r.Cookie(auth.AccessCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	claims, err := manager.Parse(cookie.Value)
	if err != nil {
		return nil
	}
	return &claims.Identity
}
