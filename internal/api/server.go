package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MikeSquared-Agency/breakdowns/internal/breakdown"
	"github.com/MikeSquared-Agency/breakdowns/internal/flow"
)

// DetectConfig holds the detection defaults applied to API requests.
type DetectConfig struct {
	PatternSize   int
	Workers       int
	DeafThreshold float64
}

type Server struct {
	router *chi.Mux
	port   int
	graph  *flow.Graph
	detect DetectConfig
	logger *slog.Logger
}

// NewServer creates the API server. graph may be nil, in which case flow
// discontinuation requests are rejected. An empty apiToken disables auth.
func NewServer(port int, apiToken string, graph *flow.Graph, detect DetectConfig, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if detect.PatternSize == 0 {
		detect.PatternSize = breakdown.DefaultPatternSize
	}

	s := &Server{
		router: router,
		port:   port,
		graph:  graph,
		detect: detect,
		logger: logger,
	}

	router.Get("/health", s.health)
	router.Route("/api/v1/breakdowns", func(r chi.Router) {
		r.Get("/status", s.status)
		r.Group(func(r chi.Router) {
			r.Use(BearerAuthMiddleware(apiToken))
			r.Post("/detect", s.detectBreakdowns)
		})
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	components := make([]string, 0, len(breakdown.AllKinds))
	for _, k := range breakdown.AllKinds {
		components = append(components, string(k))
	}

	body := map[string]any{
		"agent":        "breakdowns",
		"status":       "ready",
		"components":   components,
		"pattern_size": s.detect.PatternSize,
		"flow_loaded":  s.graph != nil,
	}
	if s.graph != nil {
		body["flow_nodes"] = len(s.graph.Nodes())
		body["flow_edges"] = s.graph.EdgeCount()
	}
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
