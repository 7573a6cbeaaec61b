package http

import (
	"context"
	"net/http"
	"strings"

	"proptrack-backend/internal/access"
	"proptrack-backend/internal/domain"
	"proptrack-backend/internal/security"
)

type contextKey string

const actorContextKey contextKey = "actor"

// AuthMiddleware validates the bearer credential and attaches the actor to
// the request context. Token issuance happens elsewhere; this backend only
// consumes the opaque credential.
func AuthMiddleware(validator security.TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respondJSON(w, http.StatusUnauthorized, errorResponse{
					Kind: "unauthorized", Message: "missing bearer token",
				})
				return
			}

			claims, err := validator.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respondJSON(w, http.StatusUnauthorized, errorResponse{
					Kind: "unauthorized", Message: err.Error(),
				})
				return
			}

			actor := access.Actor{ID: claims.UserID, Role: domain.Role(claims.Role)}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorContextKey, actor)))
		})
	}
}

// actorFrom returns the authenticated actor placed by AuthMiddleware.
func actorFrom(r *http.Request) (access.Actor, bool) {
	actor, ok := r.Context().Value(actorContextKey).(access.Actor)
	return actor, ok
}
