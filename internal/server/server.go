package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"schedsim/internal/sched"
)

// Server is the schedsim HTTP API. It is a thin consumer of the engine:
// every request runs its own simulations and nothing is kept between them.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    sched.Config
	startTime time.Time
}

// New creates a new Server with all routes registered. cfg supplies the
// defaults for fields a simulate request leaves out.
func New(cfg sched.Config, logger *slog.Logger) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/policies", s.handleListPolicies)
		r.Group(func(r chi.Router) {
			r.Use(bodyLimit(maxBodyBytes))
			r.Post("/simulate", s.handleSimulate)
			r.Post("/workloads", s.handleGenerateWorkload)
		})
	})
}
