package api

import (
	"net/http"

	"github.com/paymesh/paymesh-server/internal/config"
	"github.com/paymesh/paymesh-server/internal/handler"

	_ "github.com/paymesh/paymesh-server/docs"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers.
// Everything that is not a known route answers 401 UNAUTHORIZED ORIGIN.
func SetupRouter(cfg *config.Config, paymeshHandler *handler.PaymeshHandler) http.Handler {
	router := mux.NewRouter()

	// Swagger UI
	if cfg.SwaggerEnabled {
		router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler).Methods(http.MethodGet)
	}

	// PayMesh endpoints
	router.HandleFunc("/", paymeshHandler.Status).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/pay_member", paymeshHandler.PayMember).Methods(http.MethodPost)

	router.NotFoundHandler = http.HandlerFunc(paymeshHandler.Unauthorized)
	router.MethodNotAllowedHandler = http.HandlerFunc(paymeshHandler.Unauthorized)

	if !cfg.CORSEnabled {
		return router
	}
	return NewOriginGuard(cfg.Origins(), pathRouted(router), http.HandlerFunc(paymeshHandler.Unauthorized), router)
}

// pathRouted reports whether some route serves the request path, whatever the method.
// With the fallback handlers set, Match always succeeds; MatchErr tells unknown paths apart.
func pathRouted(router *mux.Router) func(*http.Request) bool {
	return func(r *http.Request) bool {
		var match mux.RouteMatch
		router.Match(r, &match)
		return match.MatchErr != mux.ErrNotFound
	}
}
