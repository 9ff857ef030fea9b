// Package server exposes the localized catalog over HTTP: a JSON API under
// /api/{locale}/, server-rendered previews under /{locale}/developer-section/,
// health and metrics endpoints, and a websocket that tells open previews
// when the content has been reloaded.
package server

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/conneroisu/lectern/internal/catalog"
	"github.com/conneroisu/lectern/internal/config"
	"github.com/conneroisu/lectern/internal/errors"
	"github.com/conneroisu/lectern/internal/locale"
	"github.com/conneroisu/lectern/internal/logging"
	"github.com/conneroisu/lectern/internal/messages"
	"github.com/conneroisu/lectern/internal/monitoring"
	"github.com/conneroisu/lectern/internal/registry"
	"github.com/conneroisu/lectern/internal/renderer"
)

// Server serves the catalog held by a registry
type Server struct {
	config   *config.Config
	registry *registry.Registry
	catalog  *catalog.Service
	messages *messages.Catalog
	renderer *renderer.Renderer
	metrics  *monitoring.Metrics
	health   *monitoring.HealthMonitor
	reloads  *monitoring.ReloadTracker
	hub      *Hub
	logger   logging.Logger
	errors   *errors.ErrorHandler

	httpServer   *http.Server
	serverMutex  sync.RWMutex
	shutdownOnce sync.Once
}

// New creates a server for cfg reading content from reg.
func New(cfg *config.Config, reg *registry.Registry, logger logging.Logger) *Server {
	logger = logger.WithComponent("server")

	var metrics *monitoring.Metrics
	opts := []catalog.Option{}
	if cfg.Metrics.Enabled {
		metrics = monitoring.NewMetrics()
		current, gen := reg.Snapshot()
		metrics.ObserveSnapshot(gen, current.Stats())
		opts = append(opts, catalog.WithRecorder(metrics))
	}

	msgs := messages.MustNew(logger)
	reloads := &monitoring.ReloadTracker{}

	health := monitoring.NewHealthMonitor(logger)
	health.RegisterCheck(monitoring.SnapshotHealthChecker(reg))
	health.RegisterCheck(reloads.Checker())

	return &Server{
		config:   cfg,
		registry: reg,
		catalog:  catalog.New(reg, opts...),
		messages: msgs,
		renderer: renderer.New(msgs, renderer.WithLiveReload(cfg.Content.Watch)),
		metrics:  metrics,
		health:   health,
		reloads:  reloads,
		hub:      NewHub(cfg.Server.AllowedOrigins, metrics, logger),
		logger:   logger,
		errors:   errors.NewErrorHandler(logger),
	}
}

// Handler builds the routed, middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/{locale}/docs", s.handleDocuments)
	mux.HandleFunc("GET /api/{locale}/docs/{id}", s.handleDocument)
	mux.HandleFunc("GET /api/{locale}/kotlin-course", s.handleKotlinCourse)
	mux.HandleFunc("GET /api/{locale}/kotlin-course/{id}", s.handleKotlinLesson)
	mux.HandleFunc("GET /api/{locale}/react-course", s.handleWebCourse)
	mux.HandleFunc("GET /api/{locale}/react-course/{id}", s.handleWebLesson)
	mux.HandleFunc("GET /api/{locale}/blog/{id}", s.handleBlogPost)
	mux.HandleFunc("GET /api/{locale}/blog/category/{slug}", s.handleCategory)
	mux.HandleFunc("/api/", s.handleAPINotFound)

	for _, l := range locale.Supported {
		prefix := "/" + string(l)
		mux.HandleFunc("GET "+prefix, s.previewIndex(l))
		mux.HandleFunc("GET "+prefix+"/{$}", s.previewIndex(l))
		mux.HandleFunc("GET "+prefix+renderer.DocsPath+"{id}", s.previewDocument(l))
		mux.HandleFunc("GET "+prefix+renderer.KotlinPath+"{id}", s.previewKotlinLesson(l))
		mux.HandleFunc("GET "+prefix+renderer.ReactPath+"{id}", s.previewWebLesson(l))
	}

	mux.HandleFunc("GET /health", s.health.HTTPHandler())
	if s.metrics != nil {
		mux.Handle("GET "+s.config.Metrics.Path, s.metrics.Handler())
	}
	if s.config.Content.Watch {
		mux.HandleFunc("GET /ws", s.hub.HandleWebSocket)
	}

	var handler http.Handler = mux
	handler = s.localeRedirect(handler)
	handler = s.cors(handler)
	handler = securityHeaders(handler)
	handler = s.instrument(handler)
	handler = s.recoverPanics(handler)
	handler = s.requestID(handler)
	return handler
}

// Start serves until ctx is cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	events := s.registry.Watch()
	defer s.registry.UnWatch(events)

	go s.hub.Run(ctx)
	go s.follow(ctx, events)

	s.serverMutex.Lock()
	s.httpServer = &http.Server{
		Addr:              s.config.Server.Address(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	server := s.httpServer
	s.serverMutex.Unlock()

	s.logger.Info(ctx, "Server starting",
		"address", server.Addr,
		"environment", s.config.Server.Environment,
		"live_reload", s.config.Content.Watch,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return errors.Wrap(err, errors.ErrorTypeInternal, errors.ErrCodeInternalError, "server error")
		}
		return nil
	case <-ctx.Done():
		timeout := s.config.Server.ShutdownTimeout
		if timeout <= 0 {
			timeout = config.DefaultShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// follow fans registry events out to metrics, health and websocket
// clients.
func (s *Server) follow(ctx context.Context, events <-chan registry.SnapshotEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			s.reloads.Observe(event)
			if s.metrics != nil {
				s.metrics.ObserveEvent(event)
			}
			if event.Type == registry.EventTypeReloadFailed {
				s.logger.Error(ctx, event.Err, "Content reload failed, keeping previous snapshot",
					"generation", event.Generation)
			} else {
				s.logger.Info(ctx, "Content snapshot replaced",
					"generation", event.Generation,
					"source", event.Source,
					"overrides", event.Stats.Overrides,
				)
			}
			s.hub.Broadcast(newUpdateMessage(event))
		}
	}
}

// Shutdown gracefully shuts down the server and closes websocket clients
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.logger.Info(ctx, "Shutting down server")
		s.hub.CloseAll()

		s.serverMutex.RLock()
		server := s.httpServer
		s.serverMutex.RUnlock()

		if server != nil {
			shutdownErr = server.Shutdown(ctx)
		}
	})

	return shutdownErr
}
