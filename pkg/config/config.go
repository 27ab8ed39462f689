package config

import "time"

// Config holds runtime configuration for the solah reminder bot.
type Config struct {
	AppEnv string `mapstructure:"app_env"`

	Log             LogConfig             `mapstructure:"log"`
	Bot             BotConfig             `mapstructure:"bot"`
	Server          ServerConfig          `mapstructure:"server"`
	PrayerAPI       PrayerAPIConfig       `mapstructure:"prayer_api" validate:"required"`
	Geocoding       GeocodingConfig       `mapstructure:"geocoding" validate:"required"`
	DefaultLocation DefaultLocationConfig `mapstructure:"default_location"`
	RateLimit       RateLimitConfig       `mapstructure:"rate_limit"`
	Redis           RedisConfig           `mapstructure:"redis"`
	Sentry          SentryConfig          `mapstructure:"sentry"`
}

// LogConfig controls the slog output and optional file rotation.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// BotConfig configures the Telegram transport.
type BotConfig struct {
	Token      string        `mapstructure:"token" validate:"required"`
	Mode       string        `mapstructure:"mode" validate:"oneof=polling webhook"`
	Timeout    time.Duration `mapstructure:"timeout"`
	WebhookURL string        `mapstructure:"webhook_url" validate:"required_if=Mode webhook,omitempty,url"`
	// WebhookListen is the local address the webhook poller binds to.
	WebhookListen string `mapstructure:"webhook_listen"`
	Language      string `mapstructure:"language"`
}

// ServerConfig configures the health and metrics HTTP listener.
type ServerConfig struct {
	Port            string        `mapstructure:"port" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// PrayerAPIConfig configures the Al Adhan prayer-times client.
type PrayerAPIConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Method  int           `mapstructure:"method" validate:"min=0"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// GeocodingConfig configures the Nominatim reverse-geocoding client.
type GeocodingConfig struct {
	BaseURL  string        `mapstructure:"base_url" validate:"required,url"`
	Language string        `mapstructure:"language"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// DefaultLocationConfig is the location answered for users who never shared one.
type DefaultLocationConfig struct {
	City    string `mapstructure:"city" validate:"required"`
	Country string `mapstructure:"country" validate:"required"`
}

// RateLimitRule pairs a request budget with its sliding window.
type RateLimitRule struct {
	Limit  int    `mapstructure:"limit"`
	Window string `mapstructure:"window"`
}

// RateLimitConfig configures per-user throttling of bot commands.
type RateLimitConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	PerUser   RateLimitRule `mapstructure:"per_user"`
	Whitelist []int64       `mapstructure:"whitelist"`
}

// RedisConfig configures the optional Redis backend used for rate limiting
// and update deduplication. When disabled the bot falls back to in-memory
// equivalents.
type RedisConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Addr            string        `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password        string        `mapstructure:"password"`
	DB              int           `mapstructure:"db"`
	PoolSize        int           `mapstructure:"pool_size"`
	MinIdleConns    int           `mapstructure:"min_idle_conns"`
	PoolTimeout     time.Duration `mapstructure:"pool_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	MaxRetries      int           `mapstructure:"max_retries"`
	MinRetryBackoff time.Duration `mapstructure:"min_retry_backoff"`
	MaxRetryBackoff time.Duration `mapstructure:"max_retry_backoff"`
}

// SentryConfig configures error reporting.
type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn" validate:"required_if=Enabled true"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}
