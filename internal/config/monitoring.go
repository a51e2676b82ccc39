package config

import "time"

// MonitoringConfig holds health probe and metrics configuration
type MonitoringConfig struct {
	HealthCheckTimeout     time.Duration `env:"HEALTH_CHECK_TIMEOUT" yaml:"health_check_timeout" default:"10s"`
	HealthFailureThreshold int           `env:"HEALTH_FAILURE_THRESHOLD" yaml:"health_failure_threshold" default:"3"`
	MetricsEnabled         bool          `env:"METRICS_ENABLED" yaml:"metrics_enabled" default:"true"`
	MetricsPort            int           `env:"METRICS_PORT" yaml:"metrics_port" default:"9090"`
}
