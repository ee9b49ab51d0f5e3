// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/okian/cambios/internal/app"
	"github.com/okian/cambios/internal/domain/model"
	"github.com/okian/cambios/internal/domain/teams"
	"github.com/okian/cambios/pkg/logger"
)

// Dependencies required by HTTP handlers. *service.Service satisfies it.
type Dependencies interface {
	StatsProvider

	Scan(ctx context.Context, req service.ScanRequest) (model.Analysis, error)
	Get(ctx context.Context, id string) (model.Analysis, error)
	Evaluate(ctx context.Context, id string, req service.EvaluateRequest) (model.ImpactReport, error)
	Delete(ctx context.Context, id string) error
	Teams() []teams.Team
}

const (
	defaultMaxUploadBytes = 20 << 20
	defaultRateLimitRPS   = 20
	defaultRateLimitBurst = 40
)

// Server wires HTTP routes for the business API.
type Server struct {
	deps           Dependencies
	logger         logger.Logger
	maxUploadBytes int64
	rps            float64
	burst          int

	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	analysesHandler *AnalysesHandler
	limiter         *IPRateLimiter
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		deps:           deps,
		maxUploadBytes: defaultMaxUploadBytes,
		rps:            defaultRateLimitRPS,
		burst:          defaultRateLimitBurst,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("api")
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(deps)
	s.analysesHandler = NewAnalysesHandler(deps, s.logger, s.maxUploadBytes)
	if s.rps > 0 {
		s.limiter = NewIPRateLimiter(s.rps, s.burst)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /teams", MetricsMiddleware(s.handleTeams, "teams"))

	h := s.analysesHandler
	mux.HandleFunc("POST /analyses", s.limited(h.HandleCreate, "analyses_create"))
	mux.HandleFunc("GET /analyses/{id}", s.limited(h.HandleGet, "analyses_get"))
	mux.HandleFunc("DELETE /analyses/{id}", s.limited(h.HandleDelete, "analyses_delete"))
	mux.HandleFunc("POST /analyses/{id}/impact", s.limited(h.HandleImpact, "analyses_impact"))
	mux.HandleFunc("GET /analyses/{id}/export.xlsx", s.limited(h.HandleExportXLSX, "export_xlsx"))
	mux.HandleFunc("GET /analyses/{id}/export.csv", s.limited(h.HandleExportCSV, "export_csv"))
	mux.HandleFunc("GET /analyses/{id}/text", s.limited(h.HandleText, "analyses_text"))
}

func (s *Server) limited(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	if s.limiter != nil {
		next = RateLimitMiddleware(s.limiter, next)
	}
	return MetricsMiddleware(next, endpoint)
}

type teamResponse struct {
	ID      model.TeamID `json:"id"`
	Display string       `json:"display"`
	Aliases []string     `json:"aliases"`
}

func (s *Server) handleTeams(w http.ResponseWriter, _ *http.Request) {
	catalog := s.deps.Teams()
	out := make([]teamResponse, 0, len(catalog))
	for _, t := range catalog {
		out = append(out, teamResponse{ID: t.ID, Display: t.Display, Aliases: t.Aliases})
	}
	writeJSON(w, http.StatusOK, out)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// fail writes err with the status its kind maps to. Server errors are logged.
func fail(ctx context.Context, log logger.Logger, w http.ResponseWriter, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		log.Error(ctx, "request failed", logger.Error(err))
	}
	writeError(w, status, code, err)
}
