// Package monitoring wires health checks for the orchestrator into HTTP
// probe endpoints.
package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lewisedginton/travel_agent_orchestrator/internal/agents"
	"github.com/lewisedginton/travel_agent_orchestrator/internal/planner"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/health"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/health/checkers"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/logger"
)

// Health status constants
const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusReady     = "ready"
	statusNotReady  = "not_ready"
)

// HealthMonitor manages health checks and monitoring endpoints for the application
type HealthMonitor struct {
	checker   *health.HealthChecker
	logger    logger.Logger
	version   string
	startTime time.Time
}

// Config holds configuration for the health monitor
type Config struct {
	Logger           logger.Logger
	Version          string                // Reported on the combined endpoint
	Registry         *agents.Registry      // Agent registry backing the readiness check
	PlannerFactory   agents.PlannerFactory // Optional: verified buildable on readiness
	ProviderAPIURL   string                // Optional: upstream LLM API endpoint checked on readiness
	Timeout          time.Duration         // Health check timeout
	FailureThreshold int                   // Consecutive failures before reporting unhealthy
}

// NewHealthMonitor creates a new health monitor with configured checks
func NewHealthMonitor(cfg Config) *HealthMonitor {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	failureThreshold := cfg.FailureThreshold
	if failureThreshold == 0 {
		failureThreshold = 3
	}

	checker := health.New(
		health.WithLogger(cfg.Logger),
		health.WithTimeout(timeout),
		health.WithFailureThreshold(failureThreshold),
	)

	// Process is alive if we can execute this check
	checker.AddLivenessCheck(health.NewCheckFunc("process", func(ctx context.Context) error {
		return nil
	}))

	if cfg.Registry != nil {
		checker.AddReadinessCheck(health.NewCheckFunc("agent_registry", func(ctx context.Context) error {
			if len(cfg.Registry.Names()) == 0 {
				return fmt.Errorf("no agents registered")
			}
			return nil
		}))
	}

	if cfg.PlannerFactory != nil {
		checker.AddReadinessCheck(health.NewCheckFunc("planner", func(ctx context.Context) error {
			_, err := cfg.PlannerFactory(planner.Config{})
			return err
		}))
	}

	if cfg.ProviderAPIURL != "" {
		checker.AddReadinessCheck(checkers.NewHTTPChecker(cfg.ProviderAPIURL, "llm_api"))
	}

	return &HealthMonitor{
		checker:   checker,
		logger:    cfg.Logger,
		version:   cfg.Version,
		startTime: time.Now(),
	}
}

// LivenessHandler returns an HTTP handler for Kubernetes liveness probes.
// GET /health/live - Returns 200 if the process is alive
func (hm *HealthMonitor) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := hm.checker.CheckLiveness(r.Context())

		response := map[string]any{
			"status":    statusHealthy,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(hm.startTime).String(),
			"checks":    status.Checks,
		}

		w.Header().Set("Content-Type", "application/json")

		if err != nil {
			response["status"] = statusUnhealthy
			response["error"] = err.Error()
			w.WriteHeader(http.StatusServiceUnavailable)
			if hm.logger != nil {
				hm.logger.Error("Liveness check failed", logger.ErrorField(err))
			}
		} else {
			w.WriteHeader(http.StatusOK)
		}

		_ = json.NewEncoder(w).Encode(response)
	}
}

// ReadinessHandler returns an HTTP handler for Kubernetes readiness probes.
// GET /health/ready - Returns 200 if the service can handle requests
func (hm *HealthMonitor) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := hm.checker.CheckReadiness(r.Context())

		response := map[string]any{
			"status":    statusReady,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"checks":    status.Checks,
		}

		w.Header().Set("Content-Type", "application/json")

		if err != nil {
			response["status"] = statusNotReady
			response["error"] = err.Error()
			w.WriteHeader(http.StatusServiceUnavailable)
			if hm.logger != nil {
				hm.logger.Error("Readiness check failed", logger.ErrorField(err))
			}
		} else {
			w.WriteHeader(http.StatusOK)
		}

		_ = json.NewEncoder(w).Encode(response)
	}
}

// HealthHandler returns a combined health endpoint covering both probes.
// GET /health - Returns comprehensive health status
func (hm *HealthMonitor) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		livenessStatus, livenessErr := hm.checker.CheckLiveness(r.Context())
		readinessStatus, readinessErr := hm.checker.CheckReadiness(r.Context())

		liveness := map[string]any{
			"status": statusHealthy,
			"checks": livenessStatus.Checks,
		}
		readiness := map[string]any{
			"status": statusReady,
			"checks": readinessStatus.Checks,
		}

		response := map[string]any{
			"status":    statusHealthy,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(hm.startTime).String(),
			"version":   hm.version,
			"liveness":  liveness,
			"readiness": readiness,
		}

		w.Header().Set("Content-Type", "application/json")

		healthy := true
		if livenessErr != nil {
			liveness["status"] = statusUnhealthy
			liveness["error"] = livenessErr.Error()
			healthy = false
		}
		if readinessErr != nil {
			readiness["status"] = statusNotReady
			readiness["error"] = readinessErr.Error()
			healthy = false
		}

		if !healthy {
			response["status"] = statusUnhealthy
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}

		_ = json.NewEncoder(w).Encode(response)
	}
}

// RegisterRoutes registers all health check endpoints on the given router.
func (hm *HealthMonitor) RegisterRoutes(router chi.Router) {
	router.Get("/health", hm.HealthHandler())
	router.Get("/health/live", hm.LivenessHandler())
	router.Get("/health/ready", hm.ReadinessHandler())
}
