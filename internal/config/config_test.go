package config

import (
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashendes/beer-console/internal/apiclient"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, apiclient.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)
	assert.Zero(t, cfg.RemoteTimeout)
	assert.False(t, cfg.CircuitBreaker)
	assert.Equal(t, 4, cfg.FanoutLimit)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BEER_API_BASE_URL", "http://beer:9090/api/v1")
	t.Setenv("CONSOLE_ADDR", ":8000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REMOTE_TIMEOUT", "3s")
	t.Setenv("REMOTE_CIRCUIT_BREAKER", "true")
	t.Setenv("FANOUT_LIMIT", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://beer:9090/api/v1", cfg.BaseURL)
	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.RemoteTimeout)
	assert.True(t, cfg.CircuitBreaker)
	assert.Equal(t, 2, cfg.FanoutLimit)

	assert.Equal(t, apiclient.Config{
		BaseURL:        "http://beer:9090/api/v1",
		Timeout:        3 * time.Second,
		CircuitBreaker: true,
	}, cfg.Client())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"LOG_LEVEL", "loud"},
		{"REMOTE_TIMEOUT", "soon"},
		{"REMOTE_TIMEOUT", "-1s"},
		{"REMOTE_CIRCUIT_BREAKER", "maybe"},
		{"FANOUT_LIMIT", "many"},
		{"FANOUT_LIMIT", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
