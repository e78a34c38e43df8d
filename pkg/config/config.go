// Package config provides configuration loading and validation for the
// codemend CLI.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidLogLevel  = errors.New("invalid logging level")
	ErrInvalidLogFormat = errors.New("invalid logging format")
	ErrInvalidMaxPasses = errors.New("rewrite max passes must be positive")
)

// Default configuration values.
const (
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	defaultMaxPasses = 10
	defaultService   = "codemend"
)

// Config holds all configuration for the codemend CLI.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Rewrite   RewriteConfig   `mapstructure:"rewrite"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelemetryConfig holds tracing and metrics configuration.
type TelemetryConfig struct {
	Service      string `mapstructure:"service"`
	Env          string `mapstructure:"env"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

// RewriteConfig holds engine-level configuration.
type RewriteConfig struct {
	// MaxPasses bounds repeat-until-stable iteration per recipe and unit.
	MaxPasses int `mapstructure:"max_passes"`
}

// Load reads configuration from file and environment variables. An empty
// path falls back to config.yaml discovery in the working directory; a
// missing file is not an error, defaults apply.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("config")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
	}

	viperCfg.SetEnvPrefix("CODEMEND")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viperCfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := viperCfg.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("logging.level", defaultLogLevel)
	viperCfg.SetDefault("logging.format", defaultLogFormat)
	viperCfg.SetDefault("telemetry.service", defaultService)
	viperCfg.SetDefault("telemetry.env", "")
	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("rewrite.max_passes", defaultMaxPasses)
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %s", ErrInvalidLogLevel, c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %s", ErrInvalidLogFormat, c.Logging.Format)
	}

	if c.Rewrite.MaxPasses < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxPasses, c.Rewrite.MaxPasses)
	}

	return nil
}
