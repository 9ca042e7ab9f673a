// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import "time"

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
//
// ============================================================
// DEVELOPER: Add new configuration fields here.
// ============================================================
// Use struct tags to define:
// - `env:"VAR_NAME"` - the environment variable name
// - `env:",required"` - make it required
// - `envDefault:"value"` - set a default value
//
// Example:
//   NewFeature bool `env:"ENABLE_NEW_FEATURE" envDefault:"false"`
//
// After adding fields here, update loader.go Validate() if custom
// validation is needed.
// ============================================================
type Config struct {
	// ============================================================
	// Spotlight server (REQUIRED)
	// ============================================================
	BaseURL       string `env:"SPOTLIGHT_BASE_URL,required,notEmpty"`
	SessionCookie string `env:"SPOTLIGHT_SESSION_COOKIE"`
	HTTPTimeoutMs int    `env:"HTTP_TIMEOUT_MS" envDefault:"10000"`

	// ============================================================
	// Service configuration
	// ============================================================
	MetricsPort       int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment       string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName       string `env:"SERVICE_NAME" envDefault:"SpotlightSession"`
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	StartupMaxRetries int    `env:"STARTUP_MAX_RETRIES" envDefault:"5"`

	// ============================================================
	// Poller schedule
	// ============================================================
	SchedulePath string `env:"SCHEDULE_PATH" envDefault:"config/schedule.yaml"`

	// ============================================================
	// Journal (optional, disabled when the address is empty)
	// ============================================================
	JournalRedisAddr     string `env:"JOURNAL_REDIS_ADDR"`
	JournalRedisPassword string `env:"JOURNAL_REDIS_PASSWORD"`
	JournalSubject       string `env:"JOURNAL_SUBJECT" envDefault:"local"`

	// ============================================================
	// Telemetry configuration
	// ============================================================
	OtelEnabled    bool   `env:"OTEL_ENABLED" envDefault:"true"`
	ZipkinEndpoint string `env:"ZIPKIN_ENDPOINT"`

	// ============================================================
	// DEVELOPER: Add your custom configuration fields below
	// ============================================================
}

// HTTPTimeout is HTTPTimeoutMs as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutMs) * time.Millisecond
}

// JournalEnabled reports whether transitions are journaled to Redis.
func (c *Config) JournalEnabled() bool {
	return c.JournalRedisAddr != ""
}
