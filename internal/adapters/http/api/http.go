// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/rondo/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	SolveDependencies
	ValidateDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	solveHandler     *SolveHandler
	validateHandler  *ValidateHandler
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	dashboardHandler *dashboardHandler
	corsOrigins      []string
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithCORSOrigins sets the origins allowed on API responses. A single
// "*" entry allows any caller.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		solveHandler:     NewSolveHandler(deps),
		validateHandler:  NewValidateHandler(deps),
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(deps),
		dashboardHandler: newDashboardHandler(),
		corsOrigins:      []string{"*"},
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	cors := CORSMiddleware(s.corsOrigins)
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleMetrics, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(cors(s.statsHandler.HandleStats), "stats"))
	mux.HandleFunc("/api/health", MetricsMiddleware(cors(s.healthHandler.HandleHealth), "health"))
	mux.HandleFunc("/api/solve", MetricsMiddleware(cors(s.solveHandler.HandleSolve), "solve"))
	mux.HandleFunc("/api/validate", MetricsMiddleware(cors(s.validateHandler.HandleValidate), "validate"))
}

// solveRequest mirrors the OpenAPI schema for POST /api/solve.
type solveRequest struct {
	Players []model.PlayerRecord `json:"players"`
	Options solveOptions         `json:"options"`
}

// solveOptions carries optional solver knobs. Pointers distinguish an
// absent knob from a zero one.
type solveOptions struct {
	Seed      *int64 `json:"seed"`
	TimeoutMS *int   `json:"timeout_ms"`
}

// validateRequest mirrors the OpenAPI schema for POST /api/validate.
type validateRequest struct {
	Players []model.RawRecord `json:"players"`
}

// healthResponse is the body served by GET /api/health.
type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Engine  string `json:"engine"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeFailure sends an unsuccessful solve-shaped body, the same shape
// the engine itself returns for rejections.
func writeFailure(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.Failure(msg, 0))
}
