package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the process configuration. Limits are handed to the batch
// runner at construction time, never read from globals, so two runners with
// different limits can coexist.
type Config struct {
	ListenAddress  string `mapstructure:"listen_address"`
	WindowSize     int    `mapstructure:"window_size"`
	PacingDelayMs  int    `mapstructure:"pacing_delay_ms"`
	MaxBatchSize   int    `mapstructure:"max_batch_size"`
	ProbeTimeoutMs int    `mapstructure:"probe_timeout_ms"`
	Debug          bool   `mapstructure:"debug"`
}

// Load reads the optional YAML config file and applies defaults. An empty
// path yields the defaults.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("listen_address", "127.0.0.1:8080")
	v.SetDefault("window_size", 8)
	v.SetDefault("pacing_delay_ms", 200)
	v.SetDefault("max_batch_size", 50)
	v.SetDefault("probe_timeout_ms", 15000)
	v.SetDefault("debug", false)

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validation
	if cfg.ListenAddress == "" {
		return nil, fmt.Errorf("listen_address is required")
	}
	if cfg.WindowSize <= 0 {
		return nil, fmt.Errorf("window_size must be positive, got %d", cfg.WindowSize)
	}
	if cfg.PacingDelayMs < 0 {
		return nil, fmt.Errorf("pacing_delay_ms must not be negative, got %d", cfg.PacingDelayMs)
	}
	if cfg.MaxBatchSize <= 0 {
		return nil, fmt.Errorf("max_batch_size must be positive, got %d", cfg.MaxBatchSize)
	}
	if cfg.ProbeTimeoutMs <= 0 {
		return nil, fmt.Errorf("probe_timeout_ms must be positive, got %d", cfg.ProbeTimeoutMs)
	}
	return &cfg, nil
}

// PacingDelay returns the inter-window delay as a duration.
func (c *Config) PacingDelay() time.Duration {
	return time.Duration(c.PacingDelayMs) * time.Millisecond
}
