// Package config loads and validates application configuration from
// environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps incoming request body sizes. Defaults to 1 MiB,
	// which comfortably fits a long itinerary document.
	MaxBodyBytes int64
}

// PlannerConfig holds the configuration for the planner CLI: where the
// local cache, the trip store, and the geocoder live. All values have
// working localhost defaults, so the CLI runs with no environment at all.
type PlannerConfig struct {
	// RedisAddr is the host:port of the Redis local cache.
	// Defaults to "localhost:6379". Set REDIS_PASSWORD / REDIS_DB as needed.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// RemoteBaseURL is the base URL of the trip store API.
	// Defaults to "http://localhost:8080".
	RemoteBaseURL string

	// GeocoderBaseURL is the base URL of the Nominatim-compatible geocoder.
	// Empty selects the public instance.
	GeocoderBaseURL string

	// GeocodeRPS caps geocoding requests per second. Defaults to 1, the
	// public Nominatim usage policy.
	GeocodeRPS float64

	// LogLevel controls the minimum log level. Defaults to "info".
	LogLevel string
}

// Load reads the API server configuration from environment variables.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		CORSOrigins:  splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		MaxBodyBytes: getEnvInt64("MAX_BODY_BYTES", 1<<20),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// LoadPlanner reads the planner CLI configuration from environment
// variables. Nothing is required; every value has a sensible default.
func LoadPlanner() PlannerConfig {
	return PlannerConfig{
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         int(getEnvInt64("REDIS_DB", 0)),
		RemoteBaseURL:   getEnv("REMOTE_BASE_URL", "http://localhost:8080"),
		GeocoderBaseURL: os.Getenv("GEOCODER_BASE_URL"),
		GeocodeRPS:      getEnvFloat("GEOCODE_RPS", 1),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt64 parses an integer env var, falling back on absence or a
// malformed value.
func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

// getEnvFloat parses a float env var, falling back on absence or a
// malformed value.
func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
