package api

import (
	"net/http"

	"github.com/rs/cors"
)

// requestIDHeader is the custom header the frontend sends to identify requests
const requestIDHeader = "X-Requested-With"

// NewOriginGuard wraps next with the CORS policy. Requests that carry an Origin
// outside the allow-list are answered by reject before the CORS layer runs,
// preflights included. Preflights for paths that knownRoute rejects are
// answered by reject as well.
// Requests without an Origin header (server to server) pass through.
func NewOriginGuard(allowedOrigins []string, knownRoute func(*http.Request) bool, reject, next http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Content-Type", "Authorization", requestIDHeader},
		AllowCredentials: true,
	})
	withCORS := c.Handler(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Origin") != "" && !c.OriginAllowed(r) {
			reject.ServeHTTP(w, r)
			return
		}
		if isPreflight(r) && !knownRoute(r) {
			reject.ServeHTTP(w, r)
			return
		}
		withCORS.ServeHTTP(w, r)
	})
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
}
