// Package httpserver wires the HTTP surface of the render service: routing,
// CORS, the middleware chain and graceful lifecycle management.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/rs/cors"

	"git.home.luguber.info/inful/bolgen/internal/bol"
	"git.home.luguber.info/inful/bolgen/internal/config"
	derrors "git.home.luguber.info/inful/bolgen/internal/errors"
	"git.home.luguber.info/inful/bolgen/internal/metrics"
	"git.home.luguber.info/inful/bolgen/internal/server/handlers"
	smw "git.home.luguber.info/inful/bolgen/internal/server/middleware"
)

// Options carries optional server dependencies.
type Options struct {
	// Recorder receives request and render metrics. Nil means no metrics.
	Recorder metrics.Recorder
	// MetricsHandler, when set, is mounted at GET /metrics.
	MetricsHandler http.Handler
	// Logger for request logging; defaults to slog.Default().
	Logger *slog.Logger
}

// Server manages the render service's single HTTP endpoint set.
type Server struct {
	cfg          *config.Config
	opts         Options
	httpServer   *http.Server
	errorAdapter *derrors.HTTPErrorAdapter

	monitoringHandlers *handlers.MonitoringHandlers
	renderHandlers     *handlers.RenderHandlers

	mchain func(http.Handler) http.Handler
}

// New constructs a server from configuration. Render options (services line,
// reference exclusions, signature blocks) come from cfg.Render.
func New(cfg *config.Config, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}

	s := &Server{
		cfg:          cfg,
		opts:         opts,
		errorAdapter: derrors.NewHTTPErrorAdapter(opts.Logger),
	}

	renderOpts := bol.Options{
		Title:                  cfg.PDF.Title,
		IncludeServicesLine:    cfg.Render.IncludeServices(),
		ReferenceExclusions:    cfg.Render.ReferenceExclusions,
		IncludeSignatureBlocks: cfg.Render.IncludeSignatures(),
	}

	s.monitoringHandlers = handlers.NewMonitoringHandlers(opts.Logger)
	s.renderHandlers = handlers.NewRenderHandlers(renderOpts, opts.Logger, opts.Recorder, s.errorAdapter)
	s.mchain = smw.Chain(opts.Logger, s.errorAdapter, opts.Recorder)

	return s
}

// Handler builds the complete HTTP handler: routes wrapped in CORS and the
// middleware chain. Exposed separately so tests can drive it with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.monitoringHandlers.HandleHealthCheck)
	mux.HandleFunc("POST /api/v1/render/shipment-confirmation", s.renderHandlers.HandleRenderShipmentConfirmation)
	mux.HandleFunc("POST /api/v1/render/shipment-confirmation/base64", s.renderHandlers.HandleRenderShipmentConfirmationBase64)
	if s.opts.MetricsHandler != nil {
		mux.Handle("GET /metrics", s.opts.MetricsHandler)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins(),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-Id"},
	})

	return s.mchain(c.Handler(mux))
}

func (s *Server) allowedOrigins() []string {
	if len(s.cfg.Server.CORSOrigins) == 0 {
		return []string{"*"}
	}
	return s.cfg.Server.CORSOrigins
}

// Start binds the configured address and begins serving. The listener is
// bound synchronously so a port conflict fails fast instead of surfacing as a
// log line from the serving goroutine.
func (s *Server) Start(ctx context.Context) error {
	addr := s.cfg.Addr()

	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", addr, err)
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		if serr := s.httpServer.Serve(ln); serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			s.opts.Logger.Error("HTTP server terminated unexpectedly", slog.String("error", serr.Error()))
		}
	}()

	s.opts.Logger.Info("HTTP server started", slog.String("addr", addr))
	return nil
}

// Stop gracefully shuts down the server, honoring the context deadline.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.opts.Logger.Info("shutting down HTTP server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
