// Package config loads the aliasguard configuration from environment
// variables, with an optional .env file for local runs.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "aliasguard/pkg/errors"
)

// AnonAddyConfig addresses the alias provider.
type AnonAddyConfig struct {
	Host  string
	Token string
}

// HIBPConfig addresses the breach provider.
type HIBPConfig struct {
	Host   string
	APIKey string
}

// DiscordConfig enables the findings notifier when both fields are set.
type DiscordConfig struct {
	Token     string
	ChannelID string
}

// HTTPConfig tunes the shared HTTP transport.
type HTTPConfig struct {
	Timeout time.Duration
}

// LogConfig selects the log level: debug, info, warn, error.
type LogConfig struct {
	Level string
}

type Config struct {
	AnonAddy AnonAddyConfig
	HIBP     HIBPConfig
	Discord  DiscordConfig
	HTTP     HTTPConfig
	Log      LogConfig
}

// Load reads configuration from the environment. Precedence: process
// environment over .env file over defaults. Env prefix: ALIASGUARD_,
// e.g. ALIASGUARD_ANONADDY_TOKEN, ALIASGUARD_HIBP_API_KEY.
//
// Credentials are not validated here; the provider clients reject
// missing credentials at construction, before any scan starts.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetEnvPrefix("aliasguard")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("anonaddy.host", "https://app.addy.io")
	v.SetDefault("anonaddy.token", "")
	v.SetDefault("hibp.host", "https://haveibeenpwned.com")
	v.SetDefault("hibp.api_key", "")
	v.SetDefault("discord.token", "")
	v.SetDefault("discord.channel_id", "")
	v.SetDefault("http.timeout", "30s")
	v.SetDefault("log.level", "info")

	timeoutStr := v.GetString("http.timeout")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, apperrors.NewConfigError("http.timeout", timeoutStr, "must be a duration such as 30s")
	}
	if timeout <= 0 {
		return nil, apperrors.NewConfigError("http.timeout", timeoutStr, "must be positive")
	}

	level := strings.ToLower(v.GetString("log.level"))
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return nil, apperrors.NewConfigError("log.level", level, "must be one of debug, info, warn, error")
	}

	return &Config{
		AnonAddy: AnonAddyConfig{
			Host:  strings.TrimRight(v.GetString("anonaddy.host"), "/"),
			Token: v.GetString("anonaddy.token"),
		},
		HIBP: HIBPConfig{
			Host:   strings.TrimRight(v.GetString("hibp.host"), "/"),
			APIKey: v.GetString("hibp.api_key"),
		},
		Discord: DiscordConfig{
			Token:     v.GetString("discord.token"),
			ChannelID: v.GetString("discord.channel_id"),
		},
		HTTP: HTTPConfig{Timeout: timeout},
		Log:  LogConfig{Level: level},
	}, nil
}

// loadEnvFile picks up a .env from the working directory or its
// parent. Missing files are fine; the environment wins either way.
func loadEnvFile() {
	for _, path := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}
