package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/lewisedginton/travel_agent_orchestrator/pkg/logger"
)

// AppConfig holds all application configuration
type AppConfig struct {
	// Service configuration
	ServiceName string `env:"SERVICE_NAME" yaml:"service_name" default:"travel-agent-orchestrator"`
	Version     string `env:"VERSION" yaml:"version" default:"dev"`
	Environment string `env:"ENVIRONMENT" yaml:"environment" default:"development"`

	// Server configuration
	Port           int           `env:"PORT" yaml:"port" default:"8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" yaml:"request_timeout" default:"60s"`
	IdleTimeout    time.Duration `env:"IDLE_TIMEOUT" yaml:"idle_timeout" default:"60s"`

	// LLM provider selection
	LLM LLMConfig `yaml:"llm,inline"`

	// Anthropic/Claude configuration
	Anthropic AnthropicConfig `yaml:"anthropic,inline"`

	// OpenAI configuration
	OpenAI OpenAIConfig `yaml:"openai,inline"`

	// Planner behaviour shared across providers
	Planner PlannerConfig `yaml:"planner,inline"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging,inline"`

	// Monitoring configuration
	Monitoring MonitoringConfig `yaml:"monitoring,inline"`

	// Security configuration
	Security SecurityConfig `yaml:"security,inline"`
}

// Validate validates the configuration and returns an error if invalid
func (c *AppConfig) Validate() error {
	var result error

	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	level := strings.ToLower(c.Logging.Level)
	valid := false
	for _, validLevel := range validLevels {
		if level == validLevel {
			valid = true
			break
		}
	}
	if !valid {
		result = multierror.Append(result, fmt.Errorf("log_level must be one of [debug, info, warn, error], got %q", c.Logging.Level))
	}

	// Validate log format
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		result = multierror.Append(result, fmt.Errorf("log_format must be either 'json' or 'text', got %q", c.Logging.Format))
	}

	// Validate port range
	if c.Port < 1 || c.Port > 65535 {
		result = multierror.Append(result, fmt.Errorf("port must be between 1 and 65535, got %d", c.Port))
	}

	// Validate timeout values
	if c.RequestTimeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("request_timeout must be greater than 0"))
	}

	// Validate provider selection and provider-specific requirements
	switch strings.ToLower(c.LLM.Provider) {
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			result = multierror.Append(result, fmt.Errorf("anthropic api_key is required when llm_provider is %q", ProviderAnthropic))
		}
		if c.Anthropic.Timeout <= 0 {
			result = multierror.Append(result, fmt.Errorf("anthropic_timeout must be greater than 0"))
		}
		if c.Anthropic.MaxRetries < 0 {
			result = multierror.Append(result, fmt.Errorf("anthropic_max_retries cannot be negative"))
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			result = multierror.Append(result, fmt.Errorf("openai api_key is required when llm_provider is %q", ProviderOpenAI))
		}
		if c.OpenAI.Timeout <= 0 {
			result = multierror.Append(result, fmt.Errorf("openai_timeout must be greater than 0"))
		}
	case ProviderDirect:
		// No credentials needed
	default:
		result = multierror.Append(result, fmt.Errorf("llm_provider must be one of [%s, %s, %s], got %q",
			ProviderAnthropic, ProviderOpenAI, ProviderDirect, c.LLM.Provider))
	}

	// Validate planner bounds
	if c.Planner.MaxToolRounds < 1 {
		result = multierror.Append(result, fmt.Errorf("planner_max_tool_rounds must be at least 1, got %d", c.Planner.MaxToolRounds))
	}

	// Validate security config
	if c.Security.MaxRequestSize <= 0 {
		result = multierror.Append(result, fmt.Errorf("max_request_size must be greater than 0"))
	}

	return result
}

// GetLogLevel returns the parsed logger level
func (c *AppConfig) GetLogLevel() logger.Level {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return logger.DebugLevel
	case "warn", "warning":
		return logger.WarnLevel
	case "error":
		return logger.ErrorLevel
	default:
		return logger.InfoLevel
	}
}

// IsProduction returns true if running in production environment
func (c *AppConfig) IsProduction() bool {
	return strings.ToLower(c.Environment) == "production"
}

// IsDevelopment returns true if running in development environment
func (c *AppConfig) IsDevelopment() bool {
	env := strings.ToLower(c.Environment)
	return env == "development" || env == "dev"
}

// LogConfig logs the current configuration (without sensitive data)
func (c *AppConfig) LogConfig(log logger.Logger) {
	log.Info("Application configuration loaded",
		logger.StringField("service_name", c.ServiceName),
		logger.StringField("version", c.Version),
		logger.StringField("environment", c.Environment),
		logger.IntField("port", c.Port),
		logger.StringField("llm_provider", c.LLM.Provider),
		logger.StringField("anthropic_model", c.Anthropic.Model),
		logger.StringField("openai_model", c.OpenAI.Model),
		logger.IntField("planner_max_tool_rounds", c.Planner.MaxToolRounds),
		logger.StringField("log_level", c.Logging.Level),
		logger.StringField("log_format", c.Logging.Format),
		logger.BoolField("metrics_enabled", c.Monitoring.MetricsEnabled),
	)
}
