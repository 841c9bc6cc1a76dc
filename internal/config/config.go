package config

import (
	"fmt"

	"github.com/JailtonJunior94/aop-logging/pkg/observability"
	"github.com/kelseyhightower/envconfig"
)

// Config holds process-level configuration.
type Config struct {
	ServiceName string `envconfig:"SERVICE_NAME" default:"aop-logging"`
	Log         LogConfig
	Metrics     MetricsConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"METRICS_PATH" default:"/metrics"`
}

// Load reads Config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	if _, err := observability.ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if _, err := observability.ParseLogFormat(c.Log.Format); err != nil {
		return fmt.Errorf("LOG_FORMAT: %w", err)
	}
	return nil
}

// LogLevel returns the validated log level.
func (c LogConfig) LogLevel() observability.LogLevel {
	level, _ := observability.ParseLogLevel(c.Level)
	return level
}

// LogFormat returns the validated log format.
func (c LogConfig) LogFormat() observability.LogFormat {
	format, _ := observability.ParseLogFormat(c.Format)
	return format
}
