package config

// LLM provider constants
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderDirect    = "direct"
)

// LLMConfig holds LLM provider selection configuration
type LLMConfig struct {
	// Provider specifies which planner provider to use: "anthropic", "openai", or "direct".
	// The direct provider runs fully deterministic tool dispatch with no LLM calls.
	Provider string `env:"LLM_PROVIDER" yaml:"provider" default:"anthropic"`
}

// PlannerConfig holds planner behaviour shared across providers
type PlannerConfig struct {
	MaxToolRounds int `env:"PLANNER_MAX_TOOL_ROUNDS" yaml:"max_tool_rounds" default:"5"`
}
