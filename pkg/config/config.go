package config

import (
	"errors"
	"os"
	"strconv"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv/autoload"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Extractor     ExtractorConfig
	Watch         WatchConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Host               string
	Port               int
	RateLimitPerSecond int
	RateLimitBurst     int
}

// ExtractorConfig points at the external text-extraction service that turns
// bulletin PDFs into per-page text and images.
type ExtractorConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// WatchConfig drives the scheduled bulletin watch job.
type WatchConfig struct {
	Enabled       bool
	Schedule      string // cron expression
	BulletinURL   string // bulletin reference handed to the extractor
	PortfolioPath string // CSV with the owned marks used by scheduled runs
}

type ObservabilityConfig struct {
	MetricsEnabled bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:               getEnv("SERVER_HOST", "localhost"),
			Port:               getEnvAsInt("SERVER_PORT", 8080),
			RateLimitPerSecond: getEnvAsInt("SERVER_RATE_LIMIT_PER_SECOND", 20),
			RateLimitBurst:     getEnvAsInt("SERVER_RATE_LIMIT_BURST", 40),
		},
		Extractor: ExtractorConfig{
			BaseURL:        getEnv("EXTRACTOR_BASE_URL", ""),
			TimeoutSeconds: getEnvAsInt("EXTRACTOR_TIMEOUT_SECONDS", 60),
		},
		Watch: WatchConfig{
			Enabled:       getEnvAsBool("WATCH_ENABLED", false),
			Schedule:      getEnv("WATCH_SCHEDULE", "0 7 * * *"),
			BulletinURL:   getEnv("WATCH_BULLETIN_URL", ""),
			PortfolioPath: getEnv("WATCH_PORTFOLIO_CSV", ""),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
		},
	}

	if cfg.Watch.Enabled {
		if cfg.Watch.BulletinURL == "" {
			return nil, errors.New("WATCH_BULLETIN_URL is required when WATCH_ENABLED is set")
		}
		if cfg.Extractor.BaseURL == "" {
			return nil, errors.New("EXTRACTOR_BASE_URL is required when WATCH_ENABLED is set")
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
