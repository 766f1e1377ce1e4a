package middleware

import (
	"github.com/go-chi/cors"
)

// NewCORS creates the CORS middleware for the back-office dashboard.
// The API is cookie-less JSON; the only custom request header is X-API-Key,
// used by the developer namespace.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Content-Type",
			"X-API-Key",
		},
		ExposedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
