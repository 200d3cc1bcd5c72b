package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	// AdminKey guards POST /api/clean. Empty disables the endpoint.
	AdminKey string

	LeaderboardRefresh time.Duration
	LeaderboardLimit   int
	AuditLogLimit      int
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "pledgewall"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		AdminKey:    os.Getenv("ADMIN_KEY"),

		LeaderboardRefresh: envDuration("LEADERBOARD_REFRESH", 3*time.Second),
		LeaderboardLimit:   envInt("LEADERBOARD_LIMIT", 20),
		AuditLogLimit:      envInt("AUDIT_LOG_LIMIT", 100),
	}, nil
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
