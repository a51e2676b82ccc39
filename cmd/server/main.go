package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lewisedginton/travel_agent_orchestrator/internal/agents"
	appconfig "github.com/lewisedginton/travel_agent_orchestrator/internal/config"
	"github.com/lewisedginton/travel_agent_orchestrator/internal/monitoring"
	"github.com/lewisedginton/travel_agent_orchestrator/internal/planner/providers"
	"github.com/lewisedginton/travel_agent_orchestrator/internal/server"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/config"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/logger"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/metrics"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg appconfig.AppConfig
	if err := config.GetConfig(&cfg, os.Getenv("CONFIG_FILE"), true); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.NewLogger(logger.Config{
		Level:   cfg.GetLogLevel(),
		Format:  cfg.Logging.Format,
		Service: cfg.ServiceName,
	})
	cfg.LogConfig(log)

	factory, err := providers.NewFactory(&cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create planner provider: %w", err)
	}

	rounds := cfg.Planner.MaxToolRounds
	registry := agents.NewRegistry(log,
		agents.NewSearchAgent(rounds, agents.PlannerFactory(factory), log),
		agents.NewOptimizerAgent(rounds, agents.PlannerFactory(factory), log),
		agents.NewPaymentAgent(rounds, agents.PlannerFactory(factory), log),
		agents.NewNotificationAgent(rounds, agents.PlannerFactory(factory), log),
	)
	executor := agents.NewWorkflowExecutor(registry, log)

	log.Info("Agent registry initialized",
		logger.IntField("agents", len(registry.Names())),
	)

	monitor := monitoring.NewHealthMonitor(monitoring.Config{
		Logger:           log,
		Version:          cfg.Version,
		Registry:         registry,
		PlannerFactory:   agents.PlannerFactory(factory),
		ProviderAPIURL:   providerAPIURL(&cfg),
		Timeout:          cfg.Monitoring.HealthCheckTimeout,
		FailureThreshold: cfg.Monitoring.HealthFailureThreshold,
	})

	m := metrics.NewMetrics(cfg.Monitoring.MetricsEnabled, cfg.Monitoring.MetricsEnabled, log)
	var metricsErrChan chan error
	if cfg.Monitoring.MetricsEnabled {
		m.Listen(cfg.Monitoring.MetricsPort)
		metricsErrChan = m.ErrChan()
	} else {
		metricsErrChan = make(chan error)
	}

	srv := server.New(&cfg, log, registry, executor, monitor, &m)
	serverErrChan, _, gracefulCloser := srv.Listen()

	errChan := utils.MergeErrorChans(serverErrChan, metricsErrChan)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		log.Error("Listener failed", logger.ErrorField(err))
		gracefulCloser()
		return err
	case sig := <-sigChan:
		log.Info("Received shutdown signal", logger.StringField("signal", sig.String()))
		gracefulCloser()
	}

	log.Info("Server stopped")
	return nil
}

// providerAPIURL returns the upstream LLM API endpoint for the configured
// provider, or empty when the provider makes no network calls.
func providerAPIURL(cfg *appconfig.AppConfig) string {
	switch strings.ToLower(cfg.LLM.Provider) {
	case appconfig.ProviderAnthropic:
		return cfg.Anthropic.APIBaseURL
	case appconfig.ProviderOpenAI:
		return cfg.OpenAI.APIBaseURL
	default:
		return ""
	}
}
