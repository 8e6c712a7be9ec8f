package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	App       AppConfig
	Simulator SimulatorConfig
	RateLimit RateLimitConfig
	Stats     StatsConfig
}

type ServerConfig struct {
	Port string
}

type StoreConfig struct {
	// DatabaseURL selects the backend by scheme (redis://, rediss://,
	// postgres://, postgresql://). Empty disables the store: the service
	// still boots and resource endpoints answer 503.
	DatabaseURL string
}

type AppConfig struct {
	Environment string
	Version     string
}

type SimulatorConfig struct {
	// Step is the pause before each lifecycle status transition.
	Step time.Duration
}

type RateLimitConfig struct {
	// RPS of 0 disables the limiter.
	RPS   float64
	Burst int
}

type StatsConfig struct {
	// Spec is a 6-field cron expression (seconds first); "off" disables
	// the collection stats reporter.
	Spec string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8000"),
		},
		Store: StoreConfig{
			DatabaseURL: getEnv("DATABASE_URL", ""),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Simulator: SimulatorConfig{
			Step: time.Duration(getEnvAsInt("SIMULATOR_STEP_MS", 2000)) * time.Millisecond,
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvAsFloat("RATE_LIMIT_RPS", 0),
			Burst: getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
		Stats: StatsConfig{
			Spec: getEnv("STATS_CRON", "0 */5 * * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Simulator.Step <= 0 {
		return fmt.Errorf("SIMULATOR_STEP_MS must be positive")
	}

	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative")
	}

	if c.RateLimit.RPS > 0 && c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be positive when rate limiting is enabled")
	}

	if c.Stats.Spec == "" {
		return fmt.Errorf("STATS_CRON is required (use \"off\" to disable)")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}
