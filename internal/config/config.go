// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all client configuration.
type Config struct {
	BaseURL        string        // backend base path, e.g. http://localhost:8000/api/v1
	RequestTimeout time.Duration // per-request HTTP timeout
	DBPath         string        // sqlite file backing the session token
	HealthInterval time.Duration // health poll interval
	StatsInterval  time.Duration // statistics poll interval
	HistorySize    int           // prediction history capacity
	MetricsAddr    string        // prometheus /metrics listen address, "" disables
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		BaseURL:        getEnv("FRAUDWATCH_API_URL", "http://localhost:8000/api/v1"),
		RequestTimeout: getEnvDuration("FRAUDWATCH_REQUEST_TIMEOUT", 30*time.Second),
		DBPath:         getEnv("FRAUDWATCH_DB_PATH", "./data/fraudwatch.db"),
		HealthInterval: getEnvDuration("FRAUDWATCH_HEALTH_INTERVAL", 30*time.Second),
		StatsInterval:  getEnvDuration("FRAUDWATCH_STATS_INTERVAL", 10*time.Second),
		HistorySize:    getEnvInt("FRAUDWATCH_HISTORY_SIZE", 50),
		MetricsAddr:    getEnv("FRAUDWATCH_METRICS_ADDR", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required configuration fields are usable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("FRAUDWATCH_API_URL cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("FRAUDWATCH_DB_PATH cannot be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("FRAUDWATCH_REQUEST_TIMEOUT must be > 0")
	}
	if c.HealthInterval <= 0 || c.StatsInterval <= 0 {
		return fmt.Errorf("poll intervals must be > 0")
	}
	if c.HistorySize <= 0 {
		return fmt.Errorf("FRAUDWATCH_HISTORY_SIZE must be > 0")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
