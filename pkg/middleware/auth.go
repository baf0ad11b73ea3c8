package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/automart/pkg/auth"
	"github.com/shashiranjanraj/automart/pkg/response"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	roleKey
)

// Authenticate rejects requests without a valid access token and stores
// the caller's id and role in the request context.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearer(r)
		if !ok {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateAccess(token)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), claims)))
	})
}

// OptionalAuth attaches the caller's identity when a valid access token is
// present and otherwise lets the request through anonymously.
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := bearer(r); ok {
			if claims, err := auth.ValidateAccess(token); err == nil {
				r = r.WithContext(withIdentity(r.Context(), claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func bearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func withIdentity(ctx context.Context, c *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, userIDKey, c.UserID)
	return context.WithValue(ctx, roleKey, c.Role)
}

// UserIDFromCtx returns the authenticated user's id.
func UserIDFromCtx(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value(userIDKey).(uint)
	return id, ok && id != 0
}

// RoleFromCtx returns the authenticated user's role.
func RoleFromCtx(r *http.Request) (string, bool) {
	role, ok := r.Context().Value(roleKey).(string)
	return role, ok && role != ""
}
