// Package server provides the HTTP surface for agent dispatch and workflow
// execution.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lewisedginton/travel_agent_orchestrator/internal/agents"
	appconfig "github.com/lewisedginton/travel_agent_orchestrator/internal/config"
	"github.com/lewisedginton/travel_agent_orchestrator/internal/monitoring"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/httpmiddleware"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/logger"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/metrics"
)

// Server encapsulates the HTTP server, the agent registry and the workflow
// executor behind the caller-facing API.
type Server struct {
	cfg      *appconfig.AppConfig
	log      logger.Logger
	registry *agents.Registry
	executor *agents.WorkflowExecutor
	monitor  *monitoring.HealthMonitor
	metrics  *metrics.Metrics
	server   *http.Server
}

// New creates a new Server over the given registry and executor.
func New(cfg *appconfig.AppConfig, log logger.Logger, registry *agents.Registry, executor *agents.WorkflowExecutor, monitor *monitoring.HealthMonitor, m *metrics.Metrics) *Server {
	s := &Server{
		cfg:      cfg,
		log:      log,
		registry: registry,
		executor: executor,
		monitor:  monitor,
		metrics:  m,
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.createRouter(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       cfg.IdleTimeout,
	}

	log.Info("HTTP server initialized", logger.IntField("port", cfg.Port))

	return s
}

// createRouter sets up all routes and middleware
func (s *Server) createRouter() http.Handler {
	router := chi.NewRouter()

	middlewareConfig := httpmiddleware.DefaultConfig()
	middlewareConfig.Logger = s.log
	middlewareConfig.EnableLogging = true
	middlewareConfig.Timeout = s.cfg.RequestTimeout
	if len(s.cfg.Security.CORSAllowedOrigins) > 0 {
		middlewareConfig.CORS.AllowedOrigins = s.cfg.Security.CORSAllowedOrigins
	}
	httpmiddleware.ApplyToRouter(router, middlewareConfig)

	if s.metrics != nil && s.metrics.TotalHTTPRequestsCounter != nil {
		router.Use(s.metrics.HTTPMiddleware())
	}

	router.Use(s.limitRequestSize)

	router.Route("/api/v1/agents", func(r chi.Router) {
		r.Get("/list", s.listAgentsHandler)
		r.Post("/workflow/execute", s.executeWorkflowHandler)
		r.Post("/{agentName}", s.dispatchAgentHandler)
	})

	if s.monitor != nil {
		s.monitor.RegisterRoutes(router)
	}

	return router
}

// limitRequestSize caps request bodies at the configured maximum.
func (s *Server) limitRequestSize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Security.MaxRequestSize)
		}
		next.ServeHTTP(w, r)
	})
}

// Listen starts the HTTP server and returns an error channel plus closers.
func (s *Server) Listen() (chan error, func(), func()) {
	errChan := make(chan error, 1)

	go func() {
		s.log.Info("Starting HTTP server", logger.StringField("addr", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	closer := func() {
		s.log.Info("Forcefully closing HTTP server")
		if err := s.Close(); err != nil {
			s.log.Error("Error during forced shutdown", logger.ErrorField(err))
		}
	}

	gracefulCloser := func() {
		s.log.Info("Gracefully closing HTTP server")
		if err := s.GracefulShutdown(); err != nil {
			s.log.Error("Error during graceful shutdown", logger.ErrorField(err))
		}
	}

	return errChan, closer, gracefulCloser
}

// GracefulShutdown gracefully shuts down the HTTP server
func (s *Server) GracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	return nil
}

// Close forcefully shuts down the server
func (s *Server) Close() error {
	if s.server != nil {
		return s.server.Close()
	}
	return nil
}
