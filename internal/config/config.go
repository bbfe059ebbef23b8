// Package config reads the console settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ashendes/beer-console/internal/apiclient"
)

// Config holds the console settings.
type Config struct {
	BaseURL        string
	Addr           string
	LogLevel       log.Level
	RemoteTimeout  time.Duration
	CircuitBreaker bool
	FanoutLimit    int
}

// Load reads the environment, applying defaults for unset variables.
func Load() (Config, error) {
	cfg := Config{
		BaseURL: getEnv("BEER_API_BASE_URL", apiclient.DefaultBaseURL),
		Addr:    getEnv("CONSOLE_ADDR", ":3000"),
	}

	level, err := log.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	timeout, err := time.ParseDuration(getEnv("REMOTE_TIMEOUT", "0s"))
	if err != nil {
		return Config{}, fmt.Errorf("REMOTE_TIMEOUT: %w", err)
	}
	if timeout < 0 {
		return Config{}, fmt.Errorf("REMOTE_TIMEOUT: must not be negative, got %s", timeout)
	}
	cfg.RemoteTimeout = timeout

	breaker, err := strconv.ParseBool(getEnv("REMOTE_CIRCUIT_BREAKER", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("REMOTE_CIRCUIT_BREAKER: %w", err)
	}
	cfg.CircuitBreaker = breaker

	fanout, err := strconv.Atoi(getEnv("FANOUT_LIMIT", "4"))
	if err != nil {
		return Config{}, fmt.Errorf("FANOUT_LIMIT: %w", err)
	}
	if fanout < 1 {
		return Config{}, fmt.Errorf("FANOUT_LIMIT: must be at least 1, got %d", fanout)
	}
	cfg.FanoutLimit = fanout

	return cfg, nil
}

// Client returns the transport settings.
func (c Config) Client() apiclient.Config {
	return apiclient.Config{
		BaseURL:        c.BaseURL,
		Timeout:        c.RemoteTimeout,
		CircuitBreaker: c.CircuitBreaker,
	}
}

// getEnv gets environment variable with fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
