// Package config loads process configuration via viper: built-in defaults,
// an optional YAML file, and SKYSCREEN_* environment overrides, so main
// stays lean.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures everything the binaries need at startup.
type Config struct {
	Addr     string `mapstructure:"addr"`
	LogLevel string `mapstructure:"log_level"`

	Ollama  OllamaConfig  `mapstructure:"ollama"`
	Airport AirportConfig `mapstructure:"airport"`
	Batch   BatchConfig   `mapstructure:"batch"`
}

// OllamaConfig configures the external analyzer. Probe and analyze carry
// divergent timeouts: the probe is a liveness check, the analysis a slow
// generative-model round trip.
type OllamaConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Model          string        `mapstructure:"model"`
	ProbeTimeout   time.Duration `mapstructure:"probe_timeout"`
	AnalyzeTimeout time.Duration `mapstructure:"analyze_timeout"`
}

// AirportConfig locates the airport-code reference CSV. Column is the
// zero-based index of the code column.
type AirportConfig struct {
	CSVPath string `mapstructure:"csv_path"`
	Column  int    `mapstructure:"column"`
}

// BatchConfig bounds concurrent analyses in batch endpoints and the CLI.
type BatchConfig struct {
	Parallelism int `mapstructure:"parallelism"`
}

// Load builds the configuration. path may be empty; a missing config file is
// fine, env vars and defaults still apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("ollama.base_url", "http://localhost:11434")
	v.SetDefault("ollama.model", "gemma3:4b")
	v.SetDefault("ollama.probe_timeout", 10*time.Second)
	v.SetDefault("ollama.analyze_timeout", 120*time.Second)
	v.SetDefault("airport.csv_path", "resources/countries.csv")
	v.SetDefault("airport.column", 1)
	v.SetDefault("batch.parallelism", 4)

	v.SetEnvPrefix("SKYSCREEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
