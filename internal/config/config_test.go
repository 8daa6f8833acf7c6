package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "aliasguard/pkg/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://app.addy.io", cfg.AnonAddy.Host)
	assert.Equal(t, "https://haveibeenpwned.com", cfg.HIBP.Host)
	assert.Empty(t, cfg.AnonAddy.Token)
	assert.Empty(t, cfg.HIBP.APIKey)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ALIASGUARD_ANONADDY_TOKEN", "addy-token")
	t.Setenv("ALIASGUARD_ANONADDY_HOST", "https://my-instance.example.com/")
	t.Setenv("ALIASGUARD_HIBP_API_KEY", "hibp-key")
	t.Setenv("ALIASGUARD_HTTP_TIMEOUT", "10s")
	t.Setenv("ALIASGUARD_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "addy-token", cfg.AnonAddy.Token)
	// trailing slash is stripped so URL building stays predictable
	assert.Equal(t, "https://my-instance.example.com", cfg.AnonAddy.Host)
	assert.Equal(t, "hibp-key", cfg.HIBP.APIKey)
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsInvalidTimeout(t *testing.T) {
	t.Setenv("ALIASGUARD_HTTP_TIMEOUT", "soon")

	_, err := Load()
	var cfgErr *apperrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "http.timeout", cfgErr.Field)
}

func TestLoadRejectsNegativeTimeout(t *testing.T) {
	t.Setenv("ALIASGUARD_HTTP_TIMEOUT", "-5s")

	_, err := Load()
	var cfgErr *apperrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("ALIASGUARD_LOG_LEVEL", "loud")

	_, err := Load()
	var cfgErr *apperrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "log.level", cfgErr.Field)
}
