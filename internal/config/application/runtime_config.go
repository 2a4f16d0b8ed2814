package application

import (
	"os"
	"strings"
)

// RuntimeConfig holds all runtime configuration from CLI flags, environment variables, and .env file
type RuntimeConfig struct {
	// Pressure source root, normally /proc/pressure
	PressureRoot string

	// Serve mode configuration
	APIKey  string
	APIPort string

	// Development Mode
	DevMode bool

	// Logging Configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadRuntimeConfig loads configuration with precedence: CLI flags > env vars > .env file > defaults
func LoadRuntimeConfig(pressureRoot, apiKey, port, logLevel, logFormat, logOutput string, devMode bool) *RuntimeConfig {
	return &RuntimeConfig{
		PressureRoot: getValue(pressureRoot, "PSIPROBE_PRESSURE_ROOT", ""),
		APIKey:       getValue(apiKey, "PSIPROBE_API_KEY", ""),
		APIPort:      getValue(port, "PSIPROBE_API_PORT", "8080"),
		DevMode:      devMode || getBoolEnv("PSIPROBE_DEV_MODE", false),
		LogLevel:     getValue(logLevel, "PSIPROBE_LOG_LEVEL", "INFO"),
		LogFormat:    getValue(logFormat, "PSIPROBE_LOG_FORMAT", "text"),
		LogOutput:    getValue(logOutput, "PSIPROBE_LOG_OUTPUT", "stderr"),
	}
}

// getValue returns the first non-empty value from CLI flag, env var, or default
func getValue(cliValue, envKey, defaultValue string) string {
	if cliValue != "" {
		return cliValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolEnv gets a boolean environment variable
func getBoolEnv(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "true" || value == "1" || value == "yes" {
		return true
	}
	if value == "false" || value == "0" || value == "no" {
		return false
	}
	return defaultValue
}

// ValidateServe checks that serve-mode configuration is usable
func (c *RuntimeConfig) ValidateServe() error {
	if c.APIKey == "" && !c.DevMode {
		return &ConfigError{Field: "api-key", Message: "API key is required (set PSIPROBE_API_KEY or use --api-key flag)"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
