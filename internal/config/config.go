// Package config holds runtime settings for the linkboard server.
// Every value has a development default and can be overridden through
// environment variables (a .env file is loaded by the caller).
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// DatabaseURL is the document store connection string.
	DatabaseURL  string
	DatabaseUser string
	DatabasePass string
	DatabaseName string

	Port          string
	SessionSecret string

	// TracingEnabled makes the request-id middleware trust an inbound
	// X-Request-ID header instead of minting a fresh one, so ids line up
	// across services when a tracing proxy sits in front.
	TracingEnabled bool

	HealthInterval time.Duration
	HealthTimeout  time.Duration
}

// LoadDefaults populates Config with development defaults.
// NOTE: the session secret must be overridden in production.
func (c *Config) LoadDefaults() {
	c.DatabaseURL = "mongodb://127.0.0.1:27017"
	c.DatabaseUser = ""
	c.DatabasePass = ""
	c.DatabaseName = "user_posts"
	c.Port = "8080"
	c.SessionSecret = "secret_key_change_me"
	c.TracingEnabled = false
	c.HealthInterval = 5 * time.Second
	c.HealthTimeout = 2 * time.Second
}

// Load builds a Config by applying defaults and overlaying values from
// the environment.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.loadEnv()
	return cfg
}

func (c *Config) loadEnv() {
	overlayString(&c.DatabaseURL, "DATABASE_URL")
	overlayString(&c.DatabaseUser, "DATABASE_USER")
	overlayString(&c.DatabasePass, "DATABASE_PASS")
	overlayString(&c.DatabaseName, "DATABASE_NAME")
	overlayString(&c.Port, "PORT")
	overlayString(&c.SessionSecret, "SESSION_SECRET")
	overlayBool(&c.TracingEnabled, "TRACING_ENABLED")
	overlaySeconds(&c.HealthInterval, "HEALTHCHECK_INTERVAL")
	overlaySeconds(&c.HealthTimeout, "HEALTHCHECK_TIMEOUT")
}

func overlayString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overlayBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func overlaySeconds(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*dst = time.Duration(n) * time.Second
		}
	}
}
