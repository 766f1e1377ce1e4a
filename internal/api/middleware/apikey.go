package middleware

import (
	"net/http"

	"github.com/realtrackapp/BackOffice-Backend/internal/api/response"
)

// KeyVerifier reports whether a presented API key is valid.
// Satisfied by service.SystemService.
type KeyVerifier interface {
	VerifyReportAPIKey(candidate string) bool
}

// RequireAPIKey gates a route group behind the X-API-Key header.
// Used for the developer namespace (materialized rebuild trigger); the
// regular report endpoints are not gated.
func RequireAPIKey(verifier KeyVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if !verifier.VerifyReportAPIKey(key) {
				response.RespondError(w, http.StatusUnauthorized, "invalid or missing API key", "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
