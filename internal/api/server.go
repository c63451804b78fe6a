// Package api provides the HTTP API server and handlers for the Forkplan application.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/forkplan/forkplan-server/internal/store"
	"github.com/forkplan/forkplan-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store     store.Store
	services  *Services
	router    *chi.Mux
	api       huma.API
	validator *validation.Validator
	logger    *slog.Logger

	// householdUser is the profile that owns preferences, blocked
	// ingredients, and the pantry. The server is single-household.
	householdUser string
	defaults      PlannerDefaults

	limiter *RateLimiter
}

// PlannerDefaults fill in generation settings the request leaves out.
type PlannerDefaults struct {
	CooldownDays  int
	People        int
	LunchSpanDays int
	PreferPantry  bool
}

// Options configure the API server.
type Options struct {
	Name          string
	HouseholdUser string
	Defaults      PlannerDefaults
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, opts Options, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	limiter := NewRateLimiter(600, time.Minute, 60)
	router.Use(RateLimitMiddleware(limiter, logger))

	humaConfig := huma.DefaultConfig(opts.Name, "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	humaAPI := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:         st,
		services:      services,
		router:        router,
		api:           humaAPI,
		validator:     validation.New(),
		logger:        logger,
		householdUser: opts.HouseholdUser,
		defaults:      opts.Defaults,
		limiter:       limiter,
	}

	s.registerHealthRoutes()
	s.registerPlanRoutes()
	s.registerRecipeRoutes()
	s.registerIngredientRoutes()
	s.registerPantryRoutes()
	s.registerPreferenceRoutes()
	s.registerBlockedRoutes()
	s.registerUndoRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-held resources.
func (s *Server) Close() {
	s.limiter.Stop()
}
