// Package api provides the HTTP API server and handlers for the Reserve application.
package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/reserveapp/reserve-server/internal/logger"
	"github.com/reserveapp/reserve-server/internal/ratelimit"
	"github.com/reserveapp/reserve-server/internal/search"
	"github.com/reserveapp/reserve-server/internal/store"
)

const apiVersion = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    *store.Store
	index    *search.Index
	services *Services
	router   *chi.Mux
	api      huma.API
	logger   *logger.Logger

	// generateLimiter throttles the endpoints that call the text backend,
	// keyed per client.
	generateLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, index *search.Index, services *Services, log *logger.Logger) *Server {
	s := &Server{
		store:           st,
		index:           index,
		services:        services,
		router:          chi.NewRouter(),
		logger:          log,
		generateLimiter: ratelimit.New(2, 10),
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Reserve API", apiVersion)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerConciergeRoutes()
	s.registerEditionRoutes()
	s.registerSummaryRoutes()
	s.registerContextRoutes()
	s.registerCatalogRoutes()
	s.registerLibraryRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-held resources.
func (s *Server) Close() {
	s.generateLimiter.Stop()
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Client-ID"},
		MaxAge:         300,
	}))
	s.router.Use(s.limitGenerative)
}
