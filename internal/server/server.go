// Package server runs the console dev server: the API proxy in front of the
// backend plus a few console endpoints for inspecting the route table.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dimitrije/eduadmin/internal/config"
	"github.com/dimitrije/eduadmin/internal/devproxy"
	"github.com/dimitrije/eduadmin/internal/handlers"
	"github.com/dimitrije/eduadmin/internal/metrics"
	consolemw "github.com/dimitrije/eduadmin/internal/middleware"
	"github.com/dimitrije/eduadmin/internal/routes"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	MetricsPath     = "/metrics"
	shutdownTimeout = 10 * time.Second
)

type Server struct {
	cfg     *config.Config
	logger  zerolog.Logger
	metrics *metrics.Manager
	table   *routes.Table

	proxy   *devproxy.Proxy
	console http.Handler
	handler http.Handler
}

func New(cfg *config.Config, proxyCfg *config.ProxyConfig, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.NewManager()
	}
	if s.table == nil {
		s.table = routes.Default()
	}

	proxy, err := devproxy.New(proxyCfg,
		devproxy.WithLogger(s.logger.With().Str("component", "devproxy").Logger()),
		devproxy.WithMetrics(s.metrics),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build dev proxy: %w", err)
	}
	s.proxy = proxy
	s.console = consolemw.Instrument(s.metrics)(s.newConsoleApp())

	s.handler = consolemw.RequestID(consolemw.AccessLog(s.logger)(http.HandlerFunc(s.dispatch)))
	return s, nil
}

func (s *Server) newConsoleApp() http.Handler {
	app := drift.New()

	if s.cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", consolemw.HeaderRequestID},
		MaxAge:       86400,
	}))
	app.Use(consolemw.BindRequestID())

	routesHandler := handlers.NewRoutesHandler(s.table)

	console := app.Group("/__console")
	console.Get("/health", handlers.Health)
	console.Get("/routes", routesHandler.List)
	console.Get("/routes/resolve", routesHandler.Resolve)

	return app
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == MetricsPath {
		s.metrics.Handler().ServeHTTP(w, r)
		return
	}
	if _, ok := s.proxy.Match(r.URL.Path); ok {
		s.proxy.ServeHTTP(w, r)
		return
	}
	s.console.ServeHTTP(w, r)
}

// Handler is the complete dev server, middleware included.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("dev server starting")
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("dev server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down dev server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down dev server: %w", err)
	}
	return nil
}
