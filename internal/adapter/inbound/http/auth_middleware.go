package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/Sentinel-Gate/storefront/internal/ctxkey"
	"github.com/Sentinel-Gate/storefront/internal/domain/user"
)

// UserFromContext returns the user stored by requireAuth, or nil.
func UserFromContext(ctx context.Context) *user.User {
	u, _ := ctx.Value(ctxkey.UserKey{}).(*user.User)
	return u
}

// bearerToken returns the token of an "Authorization: Bearer <token>"
// header, or "".
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// requireAuth resolves the bearer token to a user before calling next.
func (h *APIHandler) requireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			h.respondError(w, r, http.StatusUnauthorized, "Not authorized, no token")
			return
		}
		u, err := h.users.Authenticate(r.Context(), token)
		if err != nil {
			LoggerFromContext(r.Context()).Debug("token rejected", "error", err)
			h.respondError(w, r, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}
		logger := LoggerFromContext(r.Context()).With("user_id", u.ID)
		ctx := context.WithValue(r.Context(), ctxkey.UserKey{}, u)
		ctx = context.WithValue(ctx, ctxkey.LoggerKey{}, logger)
		next(w, r.WithContext(ctx))
	})
}

// requireAdmin is requireAuth plus an administrator check.
func (h *APIHandler) requireAdmin(next http.HandlerFunc) http.Handler {
	return h.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		if u := UserFromContext(r.Context()); u == nil || !u.IsAdmin {
			h.respondError(w, r, http.StatusForbidden, "Not authorized as an admin")
			return
		}
		next(w, r)
	})
}
