package config

import (
	"os"
	"strconv"

	"hypocalc/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Calc   CalcConfig
	Log    LogConfig
}

// ServerConfig holds HTTP surface settings
type ServerConfig struct {
	Port string
}

// CalcConfig holds calculator defaults offered by the console prompts
type CalcConfig struct {
	DefaultAlpha    float64
	OneSidedEnabled bool
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Calc: CalcConfig{
			DefaultAlpha:    getEnvFloatOrDefault("DEFAULT_ALPHA", 0.05),
			OneSidedEnabled: getEnvBoolOrDefault("ONE_SIDED_ENABLED", true),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "INFO"),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if cfg.Calc.DefaultAlpha <= 0 || cfg.Calc.DefaultAlpha >= 1 {
		return errors.ConfigInvalid("DEFAULT_ALPHA must lie strictly between 0 and 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
