package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "mongodb://127.0.0.1:27017", c.DatabaseURL)
	assert.Equal(t, "user_posts", c.DatabaseName)
	assert.Equal(t, "8080", c.Port)
	assert.False(t, c.TracingEnabled)
	assert.Equal(t, 5*time.Second, c.HealthInterval)
	assert.Equal(t, 2*time.Second, c.HealthTimeout)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "mongodb://db.internal:27017")
	t.Setenv("DATABASE_NAME", "linkboard_test")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("HEALTHCHECK_INTERVAL", "30")

	c := Load()
	require.NotNil(t, c)

	assert.Equal(t, "mongodb://db.internal:27017", c.DatabaseURL)
	assert.Equal(t, "linkboard_test", c.DatabaseName)
	assert.True(t, c.TracingEnabled)
	assert.Equal(t, 30*time.Second, c.HealthInterval)
	// untouched values keep their defaults
	assert.Equal(t, "8080", c.Port)
}

func TestLoad_IgnoresMalformedOverrides(t *testing.T) {
	t.Setenv("TRACING_ENABLED", "not-a-bool")
	t.Setenv("HEALTHCHECK_INTERVAL", "-3")

	c := Load()

	assert.False(t, c.TracingEnabled)
	assert.Equal(t, 5*time.Second, c.HealthInterval)
}
