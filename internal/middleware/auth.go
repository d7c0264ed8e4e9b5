package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/campdir/campdir-api/internal/crypto"
	"github.com/campdir/campdir-api/internal/model"
)

type contextKey string

const userKey contextKey = "user"

// SessionCookie is the name of the session token cookie.
const SessionCookie = "token"

// UserLoader resolves an authenticated user id to its record.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// RequireAuth validates the session token from the Authorization header or
// the token cookie, loads the user record, and stores it in the request
// context for downstream handlers.
func RequireAuth(secret string, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				writeAuthError(w, "Not authorized to access this route")
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				writeAuthError(w, "Not authorized to access this route")
				return
			}

			user, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				writeAuthError(w, "Not authorized to access this route")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles restricts a route to users holding one of the given roles.
// It must run after RequireAuth.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				writeAuthError(w, "Not authorized to access this route")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"error":   "User role " + user.Role + " is not authorized to access this route",
			})
		})
	}
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok
}

// ContextWithUser returns ctx carrying user. Exposed for handler tests.
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// extractToken pulls the session token from a Bearer header, falling back to
// the token cookie. A non-Bearer Authorization header does not block the
// cookie fallback.
func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, found := strings.CutPrefix(header, "Bearer "); found && token != "" {
			return token
		}
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}
