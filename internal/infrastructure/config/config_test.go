package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("FETCH_TAX", "")
	t.Setenv("ROUTES_LIMIT", "")
	t.Setenv("KIWI_TIMEOUT", "")
	t.Setenv("RUN_INTERVAL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, int64(500), cfg.FetchTax)
	assert.Equal(t, 30, cfg.RoutesLimit)
	assert.Equal(t, 15*time.Second, cfg.KiwiTimeout)
	assert.Equal(t, time.Duration(0), cfg.RunInterval)
	assert.Equal(t, "https://api.skypicker.com", cfg.KiwiBaseURL)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("FETCH_TAX", "250")
	t.Setenv("FETCH_CONCURRENCY", "1")
	t.Setenv("KIWI_TIMEOUT", "5s")
	t.Setenv("RUN_INTERVAL", "3600")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, int64(250), cfg.FetchTax)
	assert.Equal(t, 1, cfg.FetchConcurrency)
	assert.Equal(t, 5*time.Second, cfg.KiwiTimeout)
	assert.Equal(t, time.Hour, cfg.RunInterval)
}

func TestGetEnvAsDurationInvalid(t *testing.T) {
	t.Setenv("SOME_DURATION", "soon")
	assert.Equal(t, time.Minute, getEnvAsDuration("SOME_DURATION", time.Minute))
}
