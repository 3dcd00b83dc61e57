// Package config loads importer settings from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values.
type Config struct {
	// Sphere service
	BaseURL      string
	Radius       float64
	Levels       int
	FetchTimeout time.Duration

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Defaults for values not set in the environment.
const (
	DefaultBaseURL      = "http://apollonian.cloudapp.net"
	DefaultRadius       = 0.8
	DefaultLevels       = 7
	DefaultFetchTimeout = 30 * time.Second
	DefaultLogFile      = "/tmp/spheres.log"
)

// Load reads configuration from environment variables.
// Unparseable values fall back to their defaults.
func Load() Config {
	return Config{
		BaseURL:      getEnv("SPHERES_BASE_URL", DefaultBaseURL),
		Radius:       getEnvFloat("SPHERES_RADIUS", DefaultRadius),
		Levels:       getEnvInt("SPHERES_LEVELS", DefaultLevels),
		FetchTimeout: getEnvDuration("SPHERES_FETCH_TIMEOUT", DefaultFetchTimeout),

		LogFile:  getEnv("SPHERES_LOG_FILE", DefaultLogFile),
		LogLevel: parseLogLevel(getEnv("SPHERES_LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	f, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil || f <= 0 {
		return defaultVal
	}
	return f
}

func getEnvInt(key string, defaultVal int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
