package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler builds a CORS middleware for the browser planner. Entries
// in allowedOrigins are full origins (scheme + host, no trailing slash);
// the method and header lists cover the API's REST surface.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler
}
