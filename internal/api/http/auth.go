package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"mealbox/internal/domain"
	"mealbox/internal/service"
)

type contextKey string

const actorContextKey contextKey = "actor"

// TokenParser verifies a bearer token and yields its claims.
type TokenParser interface {
	ParseToken(token string) (*service.Claims, error)
}

// AuthMiddleware resolves the caller's JWT into a domain.Actor and stores it
// on the request context. Services receive the actor explicitly; no handler
// reads identity from anywhere else.
func AuthMiddleware(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := extractBearerToken(r)
			if err != nil {
				http.Error(w, "unauthorized: missing token", http.StatusUnauthorized)
				return
			}

			claims, err := parser.ParseToken(tokenStr)
			if err != nil {
				http.Error(w, "unauthorized: invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), claims.Actor())))
		})
	}
}

// WithActor stores the authenticated caller on the context.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// GetActor returns the authenticated caller stored by AuthMiddleware.
func GetActor(r *http.Request) (domain.Actor, error) {
	actor, ok := r.Context().Value(actorContextKey).(domain.Actor)
	if !ok {
		return domain.Actor{}, errors.New("no actor in context")
	}
	return actor, nil
}

func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization format")
	}
	return parts[1], nil
}

// RequireRole rejects callers whose role is not in the allowed set.
func RequireRole(allowedRoles ...domain.Role) func(http.HandlerFunc) http.HandlerFunc {
	allowed := make(map[domain.Role]bool, len(allowedRoles))
	for _, role := range allowedRoles {
		allowed[role] = true
	}

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			actor, err := GetActor(r)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if !allowed[actor.Role] {
				http.Error(w, "forbidden: insufficient role", http.StatusForbidden)
				return
			}
			next(w, r)
		}
	}
}
