package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/peerfund/server/internal/auth"
	"github.com/peerfund/server/internal/models"
)

const claimsKey = "claims"

// UserFinder is the single store lookup the admin guard needs.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// RequireAuth validates the Authorization bearer token and injects the
// decoded claims into the request context.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, `{"message":"unauthorized access"}`, http.StatusUnauthorized)
				return
			}
			raw := strings.TrimPrefix(header, "Bearer ")
			if raw == header {
				http.Error(w, `{"message":"unauthorized access"}`, http.StatusUnauthorized)
				return
			}

			claims, err := auth.Verify(secret, raw)
			if err != nil {
				http.Error(w, `{"message":"unauthorized access"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects callers whose stored user record is missing or
// not an admin. Must run after RequireAuth; performs one store lookup
// per request.
func RequireAdmin(users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := EmailFrom(r.Context())
			if email == "" {
				http.Error(w, `{"message":"forbidden access"}`, http.StatusForbidden)
				return
			}

			user, err := users.FindByEmail(r.Context(), email)
			if err != nil {
				http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
				return
			}
			if !user.IsAdmin() {
				http.Error(w, `{"message":"forbidden access"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFrom returns the decoded token claims attached by RequireAuth,
// or nil when the request never passed through it.
func ClaimsFrom(ctx context.Context) jwt.MapClaims {
	claims, _ := ctx.Value(claimsKey).(jwt.MapClaims)
	return claims
}

// EmailFrom returns the email claim of the authenticated caller, or ""
// when absent.
func EmailFrom(ctx context.Context) string {
	email, _ := ClaimsFrom(ctx)["email"].(string)
	return email
}

// WithClaims returns a context carrying the given claims, the same way
// RequireAuth attaches them. Used by tests and internal callers.
func WithClaims(ctx context.Context, claims jwt.MapClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}
