package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DATABASE_URL", "APP_ENV", "APP_VERSION",
		"SIMULATOR_STEP_MS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "STATS_CRON",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Empty(t, cfg.Store.DatabaseURL)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, 2*time.Second, cfg.Simulator.Step)
	assert.Zero(t, cfg.RateLimit.RPS)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
	assert.Equal(t, "0 */5 * * * *", cfg.Stats.Spec)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("DATABASE_URL", "redis://localhost:6379")
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_VERSION", "2.3.4")
	t.Setenv("SIMULATOR_STEP_MS", "250")
	t.Setenv("RATE_LIMIT_RPS", "12.5")
	t.Setenv("RATE_LIMIT_BURST", "3")
	t.Setenv("STATS_CRON", "off")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9001", cfg.Server.Port)
	assert.Equal(t, "redis://localhost:6379", cfg.Store.DatabaseURL)
	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, "2.3.4", cfg.App.Version)
	assert.Equal(t, 250*time.Millisecond, cfg.Simulator.Step)
	assert.Equal(t, 12.5, cfg.RateLimit.RPS)
	assert.Equal(t, 3, cfg.RateLimit.Burst)
	assert.Equal(t, "off", cfg.Stats.Spec)
}

func TestLoadIgnoresUnparsableNumbers(t *testing.T) {
	t.Setenv("SIMULATOR_STEP_MS", "soon")
	t.Setenv("RATE_LIMIT_RPS", "lots")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Simulator.Step)
	assert.Zero(t, cfg.RateLimit.RPS)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8000"},
			Simulator: SimulatorConfig{Step: time.Second},
			RateLimit: RateLimitConfig{RPS: 0, Burst: 20},
			Stats:     StatsConfig{Spec: "off"},
		}
	}

	t.Run("accepts a well-formed config", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("rejects a missing port", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Port = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects a non-positive simulator step", func(t *testing.T) {
		cfg := valid()
		cfg.Simulator.Step = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects a negative rate limit", func(t *testing.T) {
		cfg := valid()
		cfg.RateLimit.RPS = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects a zero burst when limiting is enabled", func(t *testing.T) {
		cfg := valid()
		cfg.RateLimit.RPS = 5
		cfg.RateLimit.Burst = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects an empty stats spec", func(t *testing.T) {
		cfg := valid()
		cfg.Stats.Spec = ""
		assert.Error(t, cfg.Validate())
	})
}
