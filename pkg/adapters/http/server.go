package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/adapters/input"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/session"
	"github.com/aretw0/arbor/pkg/shape"
)

// MaxBuildBody caps the size of a POST /build request body.
const MaxBuildBody = 64 << 10

// Visualizer is the part of arbor.Visualizer the server drives.
type Visualizer interface {
	Build(ctx context.Context, values []int) (*arbor.Run, error)
	BuildShaped(ctx context.Context, kind shape.Kind, values []int) (*arbor.Run, error)
	Traverse(ctx context.Context, kind domain.TraversalKind) (*arbor.Run, error)
	Clear(ctx context.Context) (*arbor.Run, error)
	Snapshot() session.Snapshot
}

// Server implements ServerInterface on top of a Visualizer.
type Server struct {
	Visualizer Visualizer
	Streams    *StreamManager

	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

var _ ServerInterface = (*Server)(nil)

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger for the Server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithStreams shares a StreamManager that already receives the animation events.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithMetrics serves g on /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// BuildRequest is the body of POST /build.
type BuildRequest struct {
	Values []int  `json:"values,omitempty"`
	Input  string `json:"input,omitempty"`
	Shape  string `json:"shape,omitempty"`
}

// Accepted is the body of a 202 response.
type Accepted struct {
	Operation string               `json:"operation"`
	Order     []int                `json:"order,omitempty"`
	Kind      domain.TraversalKind `json:"kind,omitempty"`
}

// NewHandler creates the HTTP handler for v.
func NewHandler(v Visualizer, opts ...Option) http.Handler {
	server := &Server{Visualizer: v}
	for _, opt := range opts {
		opt(server)
	}
	if server.logger == nil {
		server.logger = logging.NewNop()
	}
	if server.Streams == nil {
		server.Streams = NewStreamManager(0, server.logger)
	}

	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		spec, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load OpenAPI document", http.StatusInternalServerError)
			server.logger.Error("Failed to load OpenAPI document", "error", err)
			return
		}
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(spec)
	})
	if server.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.gatherer, promhttp.HandlerOpts{}))
	}

	handler := HandlerFromMux(server, r)
	return enableCORS(handler)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Build handles POST /build.
func (s *Server) Build(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBuildBody)

	var body BuildRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		http.Error(w, "Invalid request body", status)
		s.logger.Warn("Build: Invalid request body", "error", err, "status", status)
		return
	}
	if err := input.CheckCount(len(body.Values)); err != nil {
		s.fail(w, "Build", err)
		return
	}

	values := body.Values
	if len(values) == 0 && body.Input != "" {
		parsed, err := input.Parse(body.Input)
		if err != nil {
			s.fail(w, "Build", err)
			return
		}
		values = parsed
	}

	var (
		run *arbor.Run
		err error
	)
	if body.Shape != "" {
		kind, perr := shape.Parse(body.Shape)
		if perr != nil {
			s.fail(w, "Build", perr)
			return
		}
		run, err = s.Visualizer.BuildShaped(r.Context(), kind, values)
	} else {
		run, err = s.Visualizer.Build(r.Context(), values)
	}
	if err != nil {
		s.fail(w, "Build", err)
		return
	}

	writeJSON(w, http.StatusAccepted, Accepted{Operation: "build", Order: run.Result()}, s.logger)
}

// Traverse handles POST /traverse/{kind}.
func (s *Server) Traverse(w http.ResponseWriter, r *http.Request, kind string) {
	k, err := domain.ParseTraversal(kind)
	if err != nil {
		s.fail(w, "Traverse", err)
		return
	}
	if _, err := s.Visualizer.Traverse(r.Context(), k); err != nil {
		s.fail(w, "Traverse", err)
		return
	}
	writeJSON(w, http.StatusAccepted, Accepted{Operation: "traverse", Kind: k}, s.logger)
}

// ClearTree handles DELETE /tree.
func (s *Server) ClearTree(w http.ResponseWriter, r *http.Request) {
	if _, err := s.Visualizer.Clear(r.Context()); err != nil {
		s.fail(w, "Clear", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTree handles GET /tree.
func (s *Server) GetTree(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Visualizer.Snapshot(), s.logger)
}

// GetMermaid handles GET /tree/mermaid.
func (s *Server) GetMermaid(w http.ResponseWriter, r *http.Request, params GetMermaidParams) {
	snap := s.Visualizer.Snapshot()

	var overlay *graph.GraphOverlay
	if params.Kind != nil {
		kind, err := domain.ParseTraversal(*params.Kind)
		if err != nil {
			s.fail(w, "GetMermaid", err)
			return
		}
		overlay = &graph.GraphOverlay{Visited: snap.Results[kind]}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(snap.Tree, overlay))
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "arbor-http",
		"version":     strings.TrimSpace(arbor.Version),
		"api_version": apiVersion,
	}, s.logger)
}

// SubscribeEvents handles GET /events (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request, params SubscribeEventsParams) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	var filter []domain.EventType
	if params.Types != nil {
		for _, t := range *params.Types {
			if t = strings.TrimSpace(t); t != "" {
				filter = append(filter, domain.EventType(t))
			}
		}
	}

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	s.logger.Info("SSE: Client connected", "filter", filter)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: Client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if len(filter) > 0 && !slices.Contains(filter, msg.Type) {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Type, msg.Data)
			flusher.Flush()
		}
	}
}

// fail maps core errors to HTTP statuses.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrBusy):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrEmptyTree):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrEmptyInput),
		errors.Is(err, domain.ErrUnknownTraversal),
		errors.Is(err, shape.ErrUnknownShape),
		errors.Is(err, input.ErrInputTooLarge),
		errors.Is(err, input.ErrInvalidUTF8):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error(op+" failed", "error", err)
	} else {
		s.logger.Warn(op+": Request refused", "error", err, "status", status)
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Response encode failed", "error", err)
	}
}
