// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Ledger struct {
		Directory      string `mapstructure:"directory" yaml:"directory"`
		CategoriesFile string `mapstructure:"categories_file" yaml:"categories_file"`
	} `mapstructure:"ledger" yaml:"ledger"`

	AI struct {
		APIKey          string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
		EmbeddingModel  string `mapstructure:"embedding_model" yaml:"embedding_model"`
		GenerationModel string `mapstructure:"generation_model" yaml:"generation_model"`
		TimeoutSeconds  int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		EmbedBatchSize  int    `mapstructure:"embed_batch_size" yaml:"embed_batch_size"`
	} `mapstructure:"ai" yaml:"ai"`

	Retrieval struct {
		GlobalK   int     `mapstructure:"global_k" yaml:"global_k"`
		MinK      int     `mapstructure:"min_k" yaml:"min_k"`
		MaxK      int     `mapstructure:"max_k" yaml:"max_k"`
		Ratio     float64 `mapstructure:"ratio" yaml:"ratio"`
		Threshold float64 `mapstructure:"threshold" yaml:"threshold"`
		Policy    string  `mapstructure:"policy" yaml:"policy"`
	} `mapstructure:"retrieval" yaml:"retrieval"`

	Server struct {
		Port int `mapstructure:"port" yaml:"port"`
	} `mapstructure:"server" yaml:"server"`
}

// Retrieval policies. PolicyAuto picks threshold when the question carried no
// structured filters and dynamic-k otherwise.
const (
	PolicyAuto      = "auto"
	PolicyDynamicK  = "dynamic_k"
	PolicyThreshold = "threshold"
)

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional yaml config file, then RETECHFIN_* environment
// variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.retechfin")
	v.AddConfigPath(".retechfin")
	v.AddConfigPath(".")

	v.SetEnvPrefix("RETECHFIN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
		// No config file is fine, defaults and env vars apply.
	}

	// The Gemini key always comes from the conventional unprefixed variable.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ledger.directory", "data/ledger")
	v.SetDefault("ledger.categories_file", "")

	v.SetDefault("ai.embedding_model", "text-embedding-004")
	v.SetDefault("ai.generation_model", "gemini-1.5-flash")
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.embed_batch_size", 50)

	v.SetDefault("retrieval.global_k", 200)
	v.SetDefault("retrieval.min_k", 8)
	v.SetDefault("retrieval.max_k", 120)
	v.SetDefault("retrieval.ratio", 0.10)
	v.SetDefault("retrieval.threshold", 1.05)
	v.SetDefault("retrieval.policy", PolicyAuto)

	v.SetDefault("server.port", 8080)
}

func validateConfig(config *Config) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[config.Log.Level] {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[config.Log.Format] {
		return fmt.Errorf("invalid log format: %s", config.Log.Format)
	}

	r := config.Retrieval
	if r.GlobalK <= 0 {
		return fmt.Errorf("retrieval.global_k must be positive, got %d", r.GlobalK)
	}
	if r.MinK <= 0 || r.MaxK < r.MinK {
		return fmt.Errorf("retrieval min_k/max_k out of order: min_k=%d max_k=%d", r.MinK, r.MaxK)
	}
	if r.Ratio <= 0 || r.Ratio > 1 {
		return fmt.Errorf("retrieval.ratio must be in (0, 1], got %v", r.Ratio)
	}
	if r.Threshold <= 0 {
		return fmt.Errorf("retrieval.threshold must be positive, got %v", r.Threshold)
	}
	switch r.Policy {
	case PolicyAuto, PolicyDynamicK, PolicyThreshold:
	default:
		return fmt.Errorf("invalid retrieval.policy: %s", r.Policy)
	}

	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port: %d", config.Server.Port)
	}
	if config.AI.TimeoutSeconds <= 0 {
		return fmt.Errorf("ai.timeout_seconds must be positive, got %d", config.AI.TimeoutSeconds)
	}
	if config.AI.EmbedBatchSize <= 0 {
		return fmt.Errorf("ai.embed_batch_size must be positive, got %d", config.AI.EmbedBatchSize)
	}

	return nil
}
