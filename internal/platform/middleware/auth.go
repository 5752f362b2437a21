package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"presales/pkg/roles"
)

// Principal is the authenticated caller extracted from a validated token.
type Principal struct {
	UserID      string
	Email       string
	DisplayName string
	Role        roles.Role
}

// TokenValidator validates a bearer token and returns the principal it
// represents.
type TokenValidator interface {
	Validate(token string) (*Principal, error)
}

type principalKey struct{}

// GetPrincipal retrieves the authenticated principal from the context.
func GetPrincipal(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Missing or invalid credentials"}`))
}

// RequireAuth rejects requests without a valid bearer token and stores the
// principal in the request context. This is the only place the server
// interprets the Authorization header.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const bearerPrefix = "Bearer "
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || token == "" {
				logger.WarnContext(r.Context(), "unauthorized access - missing token",
					"path", r.URL.Path,
					"request_id", GetRequestID(r.Context()),
				)
				writeUnauthorized(w)
				return
			}

			principal, err := validator.Validate(token)
			if err != nil {
				logger.WarnContext(r.Context(), "unauthorized access - invalid token",
					"error", err,
					"path", r.URL.Path,
					"request_id", GetRequestID(r.Context()),
				)
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireMasterAdmin gates master-list mutations behind the role capability
// check. Must be mounted inside RequireAuth.
func RequireMasterAdmin(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipal(r.Context())
			if !ok || !roles.CanManageMasters(principal.Role) {
				logger.WarnContext(r.Context(), "forbidden - master management requires admin",
					"path", r.URL.Path,
					"request_id", GetRequestID(r.Context()),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"Insufficient permissions"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
