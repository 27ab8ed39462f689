package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "development.yaml"), []byte(body), 0o644))
	t.Chdir(dir)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	writeConfig(t, "bot:\n  token: test-token\n")

	cfg, v, err := Load()
	require.NoError(t, err)
	require.NotNil(t, v)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "test-token", cfg.Bot.Token)
	assert.Equal(t, "polling", cfg.Bot.Mode)
	assert.Equal(t, "en", cfg.Bot.Language)
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "https://api.aladhan.com/v1", cfg.PrayerAPI.BaseURL)
	assert.Equal(t, 2, cfg.PrayerAPI.Method)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.Geocoding.BaseURL)
	assert.Equal(t, "Moscow", cfg.DefaultLocation.City)
	assert.Equal(t, "Russia", cfg.DefaultLocation.Country)
	assert.Equal(t, 20, cfg.RateLimit.PerUser.Limit)
	assert.Equal(t, "1m", cfg.RateLimit.PerUser.Window)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	writeConfig(t, `
bot:
  token: test-token
  mode: webhook
  webhook_url: https://bot.example.com/webhook
  timeout: 30s
server:
  port: ":9090"
default_location:
  city: Istanbul
  country: Turkey
`)

	cfg, _, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "webhook", cfg.Bot.Mode)
	assert.Equal(t, "https://bot.example.com/webhook", cfg.Bot.WebhookURL)
	assert.Equal(t, 30*time.Second, cfg.Bot.Timeout)
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "Istanbul", cfg.DefaultLocation.City)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	writeConfig(t, "bot:\n  token: file-token\n")
	t.Setenv("BOT_TOKEN", "env-token")

	cfg, _, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Bot.Token)
}

func TestLoad_MissingTokenFailsValidation(t *testing.T) {
	writeConfig(t, "server:\n  port: \":8080\"\n")

	_, _, err := Load()
	assert.Error(t, err)
}

func TestLoad_WebhookModeRequiresURL(t *testing.T) {
	writeConfig(t, "bot:\n  token: test-token\n  mode: webhook\n")

	_, _, err := Load()
	assert.Error(t, err)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := Load()
	assert.Error(t, err)
}
