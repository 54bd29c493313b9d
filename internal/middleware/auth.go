// Package middleware provides HTTP middleware for authentication, request
// IDs, and rate limiting.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
)

// UserService resolves credentials and usernames to broker users.
type UserService interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Auth tries HTTP Basic first, then a Bearer JWT signed with the shared
// HS256 secret. Either way the resolved user's authorities are attached to
// the request context. Returns 401 if both fail.
func Auth(users UserService, jwtSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if username, password, ok := r.BasicAuth(); ok {
				user, err := users.Authenticate(r.Context(), username, password)
				if err == nil {
					ctx := domain.WithPrincipal(r.Context(), domain.ContextPrincipal{
						Username:    user.Username,
						Authorities: user.Authorities,
					})
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				tokenStr := strings.TrimPrefix(auth, "Bearer ")
				token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
					return jwtSecret, nil
				}, jwt.WithValidMethods([]string{"HS256"}))

				if err == nil && token.Valid {
					if claims, ok := token.Claims.(jwt.MapClaims); ok {
						if sub, ok := claims["sub"].(string); ok && sub != "" {
							user, err := users.FindByUsername(r.Context(), sub)
							if err == nil {
								ctx := domain.WithPrincipal(r.Context(), domain.ContextPrincipal{
									Username:    user.Username,
									Authorities: user.Authorities,
								})
								next.ServeHTTP(w, r.WithContext(ctx))
								return
							}
						}
					}
				}
			}

			writeUnauthorized(w)
		})
	}
}

// RequireAuthority rejects requests whose principal does not carry the given
// authority tag with 403.
func RequireAuthority(authority string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := domain.PrincipalFromContext(r.Context())
			if !ok || !principal.HasAuthority(authority) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"code":    http.StatusForbidden,
					"message": "insufficient authority",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="broker"`)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    http.StatusUnauthorized,
		"message": "unauthorized: provide valid basic credentials or a Bearer token",
	})
}
