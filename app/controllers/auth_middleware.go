package controllers

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// AuthMiddleware guards the payment routes with the static API key.
// Requests must carry "Authorization: Bearer <API_KEY>". When no key is
// configured the check is skipped, with a warning, so local setups keep
// working.
func (server *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := server.AppConfig.APIKey

		if apiKey == "" {
			server.Log.Warn("API_KEY not configured, skipping authentication")
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			server.respondError(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			server.respondError(w, http.StatusUnauthorized, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(apiKey)) != 1 {
			server.respondError(w, http.StatusUnauthorized, "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}
