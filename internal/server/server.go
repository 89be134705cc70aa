// Package server exposes the navigation tree over HTTP.
package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/nav"
	"git.home.luguber.info/inful/docnav/internal/render"
)

const shutdownTimeout = 5 * time.Second

// Source returns the tree to serve. It is called per request so that a
// watcher can swap the tree underneath a running server.
type Source func() (nav.Menu, error)

// Server serves the navigation tree in every registered render format.
type Server struct {
	Addr     string
	router   *chi.Mux
	server   *http.Server
	source   Source
	registry *prom.Registry
	errs     *errors.HTTPErrorAdapter
	logger   *slog.Logger
}

// New creates a server for source. A nil registry disables /metrics.
func New(addr string, source Source, registry *prom.Registry) *Server {
	logger := slog.Default()
	s := &Server{
		Addr:     addr,
		router:   chi.NewRouter(),
		source:   source,
		registry: registry,
		errs:     errors.NewHTTPErrorAdapter(logger),
		logger:   logger,
	}
	s.setupRoutes()

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.GetHead)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(recoverer(s.logger, s.errs))
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Get("/healthz", s.handleHealth)

	s.router.Get("/nav", s.handleFormat(render.FormatJSON))
	s.router.Get("/nav.json", s.handleFormat(render.FormatJSON))
	s.router.Get("/nav.yaml", s.handleFormat(render.FormatYAML))
	s.router.Get("/nav.html", s.handleFormat(render.FormatHTML))
	s.router.Get("/nav.md", s.handleFormat(render.FormatMarkdown))
	s.router.Get("/nav.ts", s.handleFormat(render.FormatVitePress))
	s.router.Get("/nav/links", s.handleLinks)
	s.router.Get("/nav/stats", s.handleStats)
	s.router.Get("/nav/formats/{format}", s.handleNamedFormat)

	if s.registry != nil {
		s.router.Method(http.MethodGet, "/metrics", metrics.HTTPHandler(s.registry))
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler { return s.router }

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", logfields.URL("http://"+ln.Addr().String()))
		errCh <- s.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.WrapError(err, errors.CategoryRuntime, "HTTP server failed").Build()
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	slog.Info("HTTP server shutting down")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "HTTP server shutdown failed").Build()
	}
	return nil
}

// ListenAndServe listens on Addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.Addr)
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to listen").WithContext("addr", s.Addr).Build()
	}
	return s.Serve(ctx, ln)
}
