// Package config provides centralized configuration management for the DeepL MCP server.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// ErrMissingAPIKey is reported by Validate when DEEPL_API_KEY is empty.
var ErrMissingAPIKey = errors.New("DEEPL_API_KEY is required")

// Config holds the complete configuration for the application
type Config struct {
	// DeepL API configuration
	DeepL struct {
		APIKey  string
		APIURL  string
		Timeout time.Duration
	}

	// Logging configuration
	Log struct {
		Level string
	}

	// Translation cache configuration
	Cache struct {
		Backend   string
		TTL       time.Duration
		RedisURL  string
		KeyPrefix string
	}

	// Metrics listener configuration, disabled when Addr is empty
	Metrics struct {
		Addr string
	}
}

// Load reads the configuration from environment variables.
func Load() *Config {
	v := viper.New()

	// Set default values
	v.SetDefault("deepl_timeout", "30s")
	v.SetDefault("log_level", "info")
	v.SetDefault("cache_backend", CacheNone)
	v.SetDefault("cache_ttl", "24h")
	v.SetDefault("cache_key_prefix", "deepl-mcp:")

	// Load from environment variables
	v.AutomaticEnv()

	config := &Config{}

	// DeepL
	config.DeepL.APIKey = strings.TrimSpace(v.GetString("deepl_api_key"))
	config.DeepL.APIURL = v.GetString("deepl_api_url")
	config.DeepL.Timeout = v.GetDuration("deepl_timeout")

	// Logging
	config.Log.Level = strings.ToLower(v.GetString("log_level"))

	// Cache
	config.Cache.Backend = strings.ToLower(v.GetString("cache_backend"))
	config.Cache.TTL = v.GetDuration("cache_ttl")
	config.Cache.RedisURL = v.GetString("redis_url")
	config.Cache.KeyPrefix = v.GetString("cache_key_prefix")

	// Metrics
	config.Metrics.Addr = v.GetString("metrics_addr")

	return config
}

// Validate checks if all required configuration values are set
func (c *Config) Validate() error {
	// List of validation errors
	var errs []error

	if c.DeepL.APIKey == "" {
		errs = append(errs, ErrMissingAPIKey)
	}

	if c.DeepL.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("DEEPL_TIMEOUT must be a positive duration, got %s", c.DeepL.Timeout))
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not a log level", c.Log.Level))
	}

	switch c.Cache.Backend {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when CACHE_BACKEND is redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("CACHE_BACKEND %q must be one of none, memory, redis", c.Cache.Backend))
	}

	if c.Cache.Backend != CacheNone && c.Cache.TTL < 0 {
		errs = append(errs, errors.New("CACHE_TTL must not be negative"))
	}

	// If any errors were found, return them as a combined error
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}

	return nil
}

// LogLevel returns the parsed log level, falling back to info.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}

	return level
}
