package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	Secret               string
	MaxAge               time.Duration
	CookieSecure         bool
	LogoutOnUnauthorized bool
	SnapshotTTL          time.Duration
}

type ObservabilityConfig struct {
	ServiceName  string
	MetricsAddr  string
	OTLPEndpoint string
	PprofAddr    string
}

type Config struct {
	API           APIConfig
	Session       SessionConfig
	Observability ObservabilityConfig
	ServerPort    string
	LogLevel      string
	LogFormat     string
}

func Load() (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnvOrDefault("API_BASE_URL", ""), "/"),
			Timeout: getDurationOrDefault("API_TIMEOUT", 15*time.Second),
		},
		Session: SessionConfig{
			Secret:               getEnvOrDefault("SESSION_SECRET", ""),
			MaxAge:               getDurationOrDefault("SESSION_MAX_AGE", 7*24*time.Hour),
			CookieSecure:         getBoolOrDefault("COOKIE_SECURE", false),
			LogoutOnUnauthorized: getBoolOrDefault("LOGOUT_ON_UNAUTHORIZED", false),
			SnapshotTTL:          getDurationOrDefault("SNAPSHOT_TTL", 5*time.Minute),
		},
		Observability: ObservabilityConfig{
			ServiceName:  getEnvOrDefault("SERVICE_NAME", "lms-portal"),
			MetricsAddr:  getEnvOrDefault("METRICS_ADDR", ":9092"),
			OTLPEndpoint: getEnvOrDefault("OTLP_ENDPOINT", ""),
			PprofAddr:    getEnvOrDefault("PPROF_ADDR", ""),
		},
		ServerPort: getEnvOrDefault("SERVER_PORT", "8091"),
		LogLevel:   getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:  getEnvOrDefault("LOG_FORMAT", "console"),
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL environment variable is required")
	}
	if len(cfg.Session.Secret) < 32 {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required (min 32 chars)")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
