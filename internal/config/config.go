// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv          string        `envconfig:"APP_ENV" default:"development"`
	AppAddr         string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout  time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"30s"`
	AppIdleTimeout  time.Duration `envconfig:"APP_IDLE_TIMEOUT" default:"60s"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL     string        `envconfig:"DATABASE_URL" required:"true"`
	DBMaxConns      int32         `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns      int32         `envconfig:"DB_MIN_CONNS" default:"5"`
	DBConnLifetime  time.Duration `envconfig:"DB_CONN_LIFETIME" default:"1h"`
	DBConnIdleTime  time.Duration `envconfig:"DB_CONN_IDLE_TIME" default:"30m"`

	// RedisAddr enables the dashboard report cache and the low-stock
	// alert queue. Empty disables both (noop cache, logged alerts).
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:""`
	RedisPassword string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL      time.Duration `envconfig:"DASHBOARD_CACHE_TTL" default:"30s"`

	SMTPHost   string `envconfig:"SMTP_HOST" default:"127.0.0.1"`
	SMTPPort   int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser   string `envconfig:"SMTP_USER" default:""`
	SMTPPass   string `envconfig:"SMTP_PASS" default:""`
	AlertFrom  string `envconfig:"ALERT_FROM" default:"inventory@uniformdesk.local"`
	AlertTo    string `envconfig:"ALERT_TO" default:""`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL must be provided")
	}
	return &cfg, nil
}

// IsDevelopment returns true when the application runs in development.
func (c *Config) IsDevelopment() bool {
	return c != nil && c.AppEnv == "development"
}
