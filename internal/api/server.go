package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dgallion1/itemsplit/internal/config"
	"github.com/dgallion1/itemsplit/internal/pipeline"
	"github.com/dgallion1/itemsplit/internal/segment"
)

// Server is the HTTP API server for itemsplit.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	catalog      *segment.Catalog
	gatherer     prometheus.Gatherer
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. catalog is the one the
// workers segment against; gatherer backs /metrics.
func NewServer(orch *pipeline.Orchestrator, catalog *segment.Catalog, gatherer prometheus.Gatherer, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		catalog:      catalog,
		gatherer:     gatherer,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/segment", s.handleSegment)
		r.Get("/api/segment/{jobID}/status", s.handleSegmentStatus)
		r.Get("/api/segment/{jobID}/result", s.handleSegmentResult)
		r.Post("/api/segment/batch", s.handleBatchSegment)
		r.Get("/api/stats/segment", s.handleStats)
		r.Get("/api/catalog", s.handleCatalog)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
