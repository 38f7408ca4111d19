// Package server provides HTTP server management and lifecycle handling for
// the catalog API, including middleware configuration, route setup and
// graceful shutdown.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/omimtools/catalog-api/config"
	"github.com/omimtools/catalog-api/handlers"
	"github.com/omimtools/catalog-api/interfaces"
	"github.com/omimtools/catalog-api/logging"
	"github.com/omimtools/catalog-api/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents the HTTP server.
type Server struct {
	server    *http.Server
	router    chi.Router
	dataStore interfaces.DataStore
	checker   interfaces.HealthChecker
	config    *config.Config
}

// NewServer creates a new server instance.
func NewServer(cfg *config.Config, dataStore interfaces.DataStore, checker interfaces.HealthChecker) *Server {
	router := chi.NewRouter()

	server := &Server{
		server: &http.Server{
			Handler:      router,
			Addr:         cfg.Address + ":" + cfg.Port,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router:    router,
		dataStore: dataStore,
		checker:   checker,
		config:    cfg,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures all middleware.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.Middleware(logging.Logger()))
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)
	s.router.Use(RequestSizeMiddleware(s.config))
	s.router.Use(RateLimitMiddleware())
	s.router.Use(metrics.Metrics)
}

// setupRoutes configures all routes.
func (s *Server) setupRoutes() {
	s.router.Get("/entries/{mimNumber}", handlers.GetEntry(s.dataStore))
	s.router.Get("/entries/{mimNumber}/replacements", handlers.GetReplacements(s.dataStore))
	s.router.Get("/genes", handlers.GetGeneMap(s.dataStore))
	s.router.Get("/genes/{mimNumber}", handlers.GetGene(s.dataStore))
	s.router.Get("/phenotypes", handlers.GetPhenotypeMap(s.dataStore))
	s.router.Get("/nomenclature/{mimNumber}", handlers.GetSymbol(s.dataStore))
	s.router.Get("/hgnc/{symbol}", handlers.GetHgncID(s.dataStore))
	s.router.Get("/series/{seriesId}", handlers.GetSeries(s.dataStore))
	s.router.Get("/morbid/{mimNumber}", handlers.GetMorbid(s.dataStore))
	s.router.Get("/references/{mimNumber}", handlers.GetReferences(s.dataStore))
	s.router.Get("/health", handlers.HealthCheck(s.checker))
	s.router.Handle("/metrics", promhttp.Handler())
}

// Start starts the server.
func (s *Server) Start() error {
	logging.Info("Starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		if err := s.server.Close(); err != nil {
			logging.Error("Server close error", "error", err)
			return err
		}
	}

	logging.Info("Server shutdown complete")
	return nil
}
