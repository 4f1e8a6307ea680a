// Package config loads lucenectl's configuration from built-in
// defaults, a project-local file, and environment variables, in that
// order of increasing precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the lucenectl CLI configuration.
type Config struct {
	Repair RepairConfig `mapstructure:"repair"`
	Output OutputConfig `mapstructure:"output"`
}

// RepairConfig tunes the repair pipeline's fixed-point search.
type RepairConfig struct {
	MaxResolveTimes int `mapstructure:"max_resolve_times"`
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// Load loads configuration from lucenectl.yml/yaml in the current
// directory, falling back to defaults when no file is present.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("repair.max_resolve_times", 10)
	v.SetDefault("output.format", "table")
	v.SetDefault("output.no_color", false)

	v.SetConfigName("lucenectl")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LUCENECTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Repair.MaxResolveTimes <= 0 {
		return fmt.Errorf("repair.max_resolve_times must be positive, got: %d", cfg.Repair.MaxResolveTimes)
	}
	switch cfg.Output.Format {
	case "table", "json":
	default:
		return fmt.Errorf("output.format must be 'table' or 'json', got: %s", cfg.Output.Format)
	}
	return nil
}
