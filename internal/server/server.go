// Package server exposes the form demo over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/goliatone/go-schemaform/internal/config"
	"github.com/goliatone/go-schemaform/internal/jsonschema/loader"
	"github.com/goliatone/go-schemaform/internal/metrics"
	"github.com/goliatone/go-schemaform/pkg/orchestrator"
	"github.com/goliatone/go-schemaform/pkg/renderers/daisyui"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

const shutdownTimeout = 5 * time.Second

// Route describes one endpoint for the startup banner.
type Route struct {
	Method      string
	Path        string
	Description string
}

// Routes lists the endpoints in the order they are announced.
func Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/", Description: "Main demo with pre-filled form"},
		{Method: http.MethodGet, Path: "/empty", Description: "Empty form without values"},
		{Method: http.MethodGet, Path: "/compact", Description: "Compact form layout"},
		{Method: http.MethodGet, Path: "/form.json", Description: "Form model as JSON"},
		{Method: http.MethodPost, Path: "/submit", Description: "Coerce a submission to typed JSON"},
		{Method: http.MethodGet, Path: "/defaults", Description: "Schema defaults as JSON"},
		{Method: http.MethodGet, Path: "/metrics", Description: "Prometheus metrics"},
		{Method: http.MethodGet, Path: "/healthz", Description: "Liveness probe"},
	}
}

// Options wires the server collaborators. Orchestrator and Metrics are built
// on demand when nil.
type Options struct {
	Settings     config.Settings
	Orchestrator *orchestrator.Orchestrator
	Metrics      *metrics.Metrics
	Logger       *slog.Logger
}

// Server serves the form pages and the submission endpoint.
type Server struct {
	addr    string
	logger  *slog.Logger
	handler http.Handler
	server  *http.Server
}

// New validates the settings and builds the route table.
func New(opts Options) (*Server, error) {
	if err := opts.Settings.Validate(); err != nil {
		return nil, err
	}
	source, err := schema.ParseSource(opts.Settings.SchemaPath)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	orch := opts.Orchestrator
	if orch == nil {
		registry, err := daisyui.NewRegistry()
		if err != nil {
			return nil, err
		}
		variant := opts.Settings.Theme
		if variant == "" {
			variant = daisyui.DefaultVariant
		}
		orch = orchestrator.New(
			orchestrator.WithLoader(loader.NewWithOptions(schema.WithHTTPFallback(opts.Settings.RemoteTimeout))),
			orchestrator.WithThemeProvider(registry, daisyui.ThemeName, variant),
		)
	}

	h := &handlers{
		settings: opts.Settings,
		target:   orchestrator.Target{Source: source, Component: opts.Settings.Component},
		orch:     orch,
		metrics:  m,
		logger:   logger,
	}

	mux := http.NewServeMux()
	route := func(pattern, name string, fn http.HandlerFunc) {
		mux.Handle(pattern, instrument(name, m, logger, fn))
	}
	route("GET /{$}", "/", h.index)
	route("GET /empty", "/empty", h.empty)
	route("GET /compact", "/compact", h.compact)
	route("GET /form.json", "/form.json", h.formJSON)
	route("POST /submit", "/submit", h.submit)
	route("GET /defaults", "/defaults", h.defaults)
	route("GET /healthz", "/healthz", h.healthz)
	mux.Handle("GET /metrics", m.Handler())

	addr := opts.Settings.Addr()
	return &Server{
		addr:    addr,
		logger:  logger,
		handler: mux,
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler exposes the route table for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("starting server", "addr", s.addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return s.shutdown()
	}
}

func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down server")
	return s.server.Shutdown(ctx)
}
