package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nestedConfig struct {
	Temperature float64       `env:"TEST_TEMPERATURE" yaml:"temperature" default:"0.5"`
	MaxRounds   int           `env:"TEST_MAX_ROUNDS" yaml:"max_rounds" default:"5"`
	Timeout     time.Duration `env:"TEST_TIMEOUT" yaml:"timeout" default:"30s"`
}

type testConfig struct {
	ServiceName string       `env:"TEST_SERVICE_NAME" yaml:"service_name" default:"orchestrator"`
	APIKey      string       `env:"TEST_API_KEY" yaml:"api_key" required:"true"`
	Origins     []string     `env:"TEST_ORIGINS" yaml:"origins" default:"http://localhost:3000,http://localhost:8080"`
	Debug       bool         `env:"TEST_DEBUG" yaml:"debug" default:"false"`
	Planner     nestedConfig `yaml:",inline"`
}

type validatedConfig struct {
	Port int `env:"TEST_VALIDATED_PORT" yaml:"port" default:"8080"`
}

func (c validatedConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("port out of range")
	}
	return nil
}

func clearTestEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TEST_SERVICE_NAME", "TEST_API_KEY", "TEST_ORIGINS", "TEST_DEBUG",
		"TEST_TEMPERATURE", "TEST_MAX_ROUNDS", "TEST_TIMEOUT", "TEST_VALIDATED_PORT",
	} {
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestGetConfigFromEnvVars(t *testing.T) {
	clearTestEnv(t)
	t.Setenv("TEST_API_KEY", "sk-test")
	t.Setenv("TEST_TEMPERATURE", "0.7")
	t.Setenv("TEST_ORIGINS", "https://a.example, https://b.example")

	var cfg testConfig
	require.NoError(t, GetConfigFromEnvVars(&cfg))

	assert.Equal(t, "orchestrator", cfg.ServiceName, "default applied")
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, 0.7, cfg.Planner.Temperature, "env overrides default in nested struct")
	assert.Equal(t, 5, cfg.Planner.MaxRounds)
	assert.Equal(t, 30*time.Second, cfg.Planner.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins, "slice values trimmed")
	assert.False(t, cfg.Debug)
}

func TestGetConfigFromEnvVarsMissingRequired(t *testing.T) {
	clearTestEnv(t)

	var cfg testConfig
	err := GetConfigFromEnvVars(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TEST_API_KEY")
	assert.Empty(t, cfg.ServiceName, "config reset on failure")
}

func TestGetConfigFromEnvVarsBadValue(t *testing.T) {
	clearTestEnv(t)
	t.Setenv("TEST_API_KEY", "sk-test")
	t.Setenv("TEST_MAX_ROUNDS", "not-a-number")

	var cfg testConfig
	assert.Error(t, GetConfigFromEnvVars(&cfg))
}

func TestGetConfigFromYAMLFile(t *testing.T) {
	clearTestEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
service_name: from-file
api_key: sk-file
temperature: 0.3
`), 0o600))

	var cfg testConfig
	require.NoError(t, GetConfig(&cfg, path, false))

	assert.Equal(t, "from-file", cfg.ServiceName)
	assert.Equal(t, "sk-file", cfg.APIKey)
	assert.Equal(t, 0.3, cfg.Planner.Temperature)
	assert.Equal(t, 5, cfg.Planner.MaxRounds, "defaults still applied for untouched fields")
}

func TestGetConfigEnvOverridesFile(t *testing.T) {
	clearTestEnv(t)
	t.Setenv("TEST_SERVICE_NAME", "from-env")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("service_name: from-file\napi_key: sk-file\n"), 0o600))

	var cfg testConfig
	require.NoError(t, GetConfig(&cfg, path, false))
	assert.Equal(t, "from-env", cfg.ServiceName)
}

func TestGetConfigMissingFile(t *testing.T) {
	clearTestEnv(t)
	t.Setenv("TEST_API_KEY", "sk-test")

	var cfg testConfig
	assert.Error(t, GetConfig(&cfg, "/does/not/exist.yaml", false))
	assert.NoError(t, GetConfig(&cfg, "/does/not/exist.yaml", true), "file errors allowed falls back to env")
	assert.Equal(t, "sk-test", cfg.APIKey)
}

func TestGetConfigRunsValidator(t *testing.T) {
	clearTestEnv(t)
	t.Setenv("TEST_VALIDATED_PORT", "99999")

	var cfg validatedConfig
	err := GetConfigFromEnvVars(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port out of range")

	clearTestEnv(t)
	var ok validatedConfig
	assert.NoError(t, GetConfigFromEnvVars(&ok))
	assert.Equal(t, 8080, ok.Port)
}
