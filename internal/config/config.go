// Package config loads pyfinder settings from flags, environment and an optional file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. PYFINDER_FETCH_TIMEOUT
const EnvPrefix = "PYFINDER"

// Config is the merged pyfinder configuration
type Config struct {
	GitHub   GitHubConfig   `mapstructure:"github"`
	Fetch    FetchConfig    `mapstructure:"fetch"`
	Finder   FinderConfig   `mapstructure:"finder"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Output   OutputConfig   `mapstructure:"output"`
	Log      LogConfig      `mapstructure:"log"`
}

// GitHubConfig holds API credentials and the API version header
type GitHubConfig struct {
	Token      string `mapstructure:"token"`
	TokenFile  string `mapstructure:"token_file"`
	APIVersion string `mapstructure:"api_version"`
}

// FetchConfig tunes HTTP requests and rate-limit handling
type FetchConfig struct {
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRateLimitRetries int           `mapstructure:"max_rate_limit_retries"`
	MaxRateLimitWait    time.Duration `mapstructure:"max_rate_limit_wait"`
	FallbackWait        time.Duration `mapstructure:"fallback_wait"`
	RequestsPerSecond   float64       `mapstructure:"requests_per_second"`
}

// FinderConfig tunes release walking and checksum fetching
type FinderConfig struct {
	MaxPages          int    `mapstructure:"max_pages"`
	ChecksumBatchSize int    `mapstructure:"checksum_batch_size"`
	UvConcurrency     int    `mapstructure:"uv_concurrency"`
	TablesFile        string `mapstructure:"tables_file"`
}

// PipelineConfig bounds a whole run
type PipelineConfig struct {
	Deadline time.Duration `mapstructure:"deadline"`
}

// OutputConfig selects the rendered table format
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// LogConfig controls the stderr logger
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Timestamps bool   `mapstructure:"timestamps"`
}

// SetDefaults registers every default on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("github.token", "")
	v.SetDefault("github.token_file", "token.txt")
	v.SetDefault("github.api_version", "2022-11-28")

	v.SetDefault("fetch.timeout", 15*time.Second)
	v.SetDefault("fetch.max_rate_limit_retries", 5)
	v.SetDefault("fetch.max_rate_limit_wait", 30*time.Minute)
	v.SetDefault("fetch.fallback_wait", 120*time.Second)
	v.SetDefault("fetch.requests_per_second", 0.0)

	v.SetDefault("finder.max_pages", 99)
	v.SetDefault("finder.checksum_batch_size", 20)
	v.SetDefault("finder.uv_concurrency", 8)
	v.SetDefault("finder.tables_file", "")

	v.SetDefault("pipeline.deadline", 30*time.Minute)

	v.SetDefault("output.format", "rust")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.timestamps", false)
}

// New returns a viper instance with defaults and environment binding applied
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// GITHUB_TOKEN is honoured without the prefix
	_ = v.BindEnv("github.token", EnvPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN")
	SetDefaults(v)
	return v
}

// Load reads configFile (when set, or pyfinder.yaml in the working
// directory when present) and unmarshals the merged settings
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("pyfinder")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no component can run with
func (c *Config) Validate() error {
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be positive, got %s", c.Fetch.Timeout)
	}
	if c.Fetch.MaxRateLimitRetries < 0 {
		return fmt.Errorf("fetch.max_rate_limit_retries must not be negative, got %d", c.Fetch.MaxRateLimitRetries)
	}
	if c.Fetch.RequestsPerSecond < 0 {
		return fmt.Errorf("fetch.requests_per_second must not be negative, got %v", c.Fetch.RequestsPerSecond)
	}
	if c.Finder.MaxPages < 1 {
		return fmt.Errorf("finder.max_pages must be at least 1, got %d", c.Finder.MaxPages)
	}
	if c.Finder.ChecksumBatchSize < 1 {
		return fmt.Errorf("finder.checksum_batch_size must be at least 1, got %d", c.Finder.ChecksumBatchSize)
	}
	if c.Finder.UvConcurrency < 1 {
		return fmt.Errorf("finder.uv_concurrency must be at least 1, got %d", c.Finder.UvConcurrency)
	}
	return nil
}
