// Package api serves problem sets and diagrams over HTTP.
//
// # Routes
//
//	GET    /healthz                               liveness probe
//	GET    /v1/version                            build information
//	POST   /v1/sets                               generate and store a set
//	GET    /v1/sets?kind=&limit=                  list stored sets, newest first
//	GET    /v1/sets/{id}                          fetch a stored set
//	DELETE /v1/sets/{id}                          delete a stored set
//	GET    /v1/sets/{id}/worksheet?answers=true   worksheet PDF
//	GET    /v1/sets/{id}/problems/{n}/diagram     render one problem's diagram
//	POST   /v1/diagrams?format=svg                render a caller-described diagram
//
// Request bodies are validated against the JSON schemas in schemas/. Errors
// are returned as
//
//	{"error": {"code": "INVALID_LEVEL", "message": "...", "request_id": "..."}}
//
// with the status derived from the code.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/mathproblem/pkg/pipeline"
	"github.com/matzehuels/mathproblem/pkg/store"
)

// DefaultMaxBodyBytes bounds request bodies when Config leaves it unset.
const DefaultMaxBodyBytes = 1 << 20

// Config wires a Server to its dependencies. Runner and Store are required.
type Config struct {
	Runner       *pipeline.Runner
	Store        store.Store
	Logger       *log.Logger
	MaxBodyBytes int64
	// Timeout bounds each request; zero disables the limit.
	Timeout time.Duration
}

// Server is the HTTP API. It is an http.Handler.
type Server struct {
	runner  *pipeline.Runner
	store   store.Store
	logger  *log.Logger
	maxBody int64
	timeout time.Duration
	router  chi.Router
}

// New builds the router.
func New(cfg Config) *Server {
	s := &Server{
		runner:  cfg.Runner,
		store:   cfg.Store,
		logger:  cfg.Logger,
		maxBody: cfg.MaxBodyBytes,
		timeout: cfg.Timeout,
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	if s.timeout > 0 {
		r.Use(middleware.Timeout(s.timeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: errorDetail{Code: "NOT_FOUND", Message: "no such route"}})
	})

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/version", s.handleVersion)
		r.Route("/sets", func(r chi.Router) {
			r.Post("/", s.handleCreateSet)
			r.Get("/", s.handleListSets)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSet)
				r.Delete("/", s.handleDeleteSet)
				r.Get("/worksheet", s.handleWorksheet)
				r.Get("/problems/{n}/diagram", s.handleProblemDiagram)
			})
		})
		r.Post("/diagrams", s.handleRenderDiagram)
	})
	return r
}
