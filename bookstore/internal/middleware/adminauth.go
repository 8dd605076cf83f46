package middleware

import (
	"net/http"
	"strings"

	"bookstore-admin/bookstore/internal/service"
)

// AdminTokenAuth rejects requests without a valid admin bearer token and
// puts the token's claims in the request context.
func AdminTokenAuth(auth *service.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := ""
			if strings.HasPrefix(strings.ToLower(header), "bearer ") {
				token = strings.TrimSpace(header[7:])
			}
			if token == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			claims, err := auth.ValidateToken(token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := service.ContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminBasicAuth guards the HTML console with the admin credentials.
func AdminBasicAuth(auth *service.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || auth.Verify(user, pass) != nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="bookstore"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(service.ContextWithClaims(r.Context(), service.AdminClaims{Username: user})))
		})
	}
}
