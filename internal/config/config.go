// Package config loads and validates application configuration from
// environment variables, with optional .env file support for local dev.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
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

	// CalendarTimezone is the IANA identifier stamped into generated
	// calendar events. Defaults to "America/New_York".
	CalendarTimezone string

	// GeocoderBaseURL is the Nominatim-compatible search endpoint used for
	// address lookups. Empty selects the public OpenStreetMap instance.
	GeocoderBaseURL string
}

// Load reads configuration from the environment and returns a Config.
// A .env file in the working directory is merged in first when present;
// real environment variables always win over .env values.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	// godotenv.Load never overrides variables that are already set.
	_ = godotenv.Load()

	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		CORSOrigins:      splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		CalendarTimezone: getEnv("CALENDAR_TIMEZONE", "America/New_York"),
		GeocoderBaseURL:  os.Getenv("GEOCODER_BASE_URL"),
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

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
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
