// Package providers builds planner factories from application configuration,
// selecting between the Anthropic, OpenAI and direct implementations.
package providers

import (
	"fmt"
	"strings"

	appconfig "github.com/lewisedginton/travel_agent_orchestrator/internal/config"
	"github.com/lewisedginton/travel_agent_orchestrator/internal/planner"
	"github.com/lewisedginton/travel_agent_orchestrator/internal/planner/anthropic"
	"github.com/lewisedginton/travel_agent_orchestrator/internal/planner/direct"
	"github.com/lewisedginton/travel_agent_orchestrator/internal/planner/openai"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/logger"
)

// Factory is the per-agent planner constructor shape shared across providers.
type Factory func(cfg planner.Config) (planner.Planner, error)

// NewFactory returns a factory for the configured provider. The factory is
// invoked once per agent with the agent's own planner tuning.
func NewFactory(cfg *appconfig.AppConfig, log logger.Logger) (Factory, error) {
	provider := strings.ToLower(cfg.LLM.Provider)

	switch provider {
	case appconfig.ProviderAnthropic:
		log.Info("Initializing Anthropic planner provider",
			logger.StringField("model", cfg.Anthropic.Model))
		apiKey := cfg.Anthropic.APIKey
		model := cfg.Anthropic.Model
		return func(pc planner.Config) (planner.Planner, error) {
			return anthropic.New(apiKey, model, pc, log)
		}, nil

	case appconfig.ProviderOpenAI:
		log.Info("Initializing OpenAI planner provider",
			logger.StringField("model", cfg.OpenAI.Model))
		apiKey := cfg.OpenAI.APIKey
		model := cfg.OpenAI.Model
		return func(pc planner.Config) (planner.Planner, error) {
			return openai.New(apiKey, model, pc, log)
		}, nil

	case appconfig.ProviderDirect:
		log.Info("Initializing direct planner provider")
		return func(pc planner.Config) (planner.Planner, error) {
			return direct.New(log), nil
		}, nil

	default:
		return nil, fmt.Errorf("unsupported planner provider: %s", cfg.LLM.Provider)
	}
}
