// Package config loads and validates application configuration from
// environment variables, plus an optional TOML file of forecast thresholds.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// JWTSecret is the HMAC key used to verify bearer tokens. Required.
	JWTSecret []byte

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request body size. Defaults to 1 MiB.
	MaxBodyBytes int64

	// AutoMigrate applies pending goose migrations at startup when true.
	AutoMigrate bool

	// Forecast holds the advisory thresholds, read from the TOML file named
	// by PLANNER_CONFIG when set.
	Forecast ForecastConfig
}

// FileConfig is the shape of the PLANNER_CONFIG file.
type FileConfig struct {
	Forecast ForecastConfig `toml:"forecast"`
}

// ForecastConfig tunes when budget forecast advisories fire.
type ForecastConfig struct {
	WarningPercent float64 `toml:"warning_percent"`
	DangerPercent  float64 `toml:"danger_percent"`
	ExpensiveRatio float64 `toml:"expensive_ratio"`
}

// DefaultForecast returns the stock thresholds: warn above 80% spent, danger
// above 100%, and flag activities costing more than 10% of the total.
func DefaultForecast() ForecastConfig {
	return ForecastConfig{WarningPercent: 80, DangerPercent: 100, ExpensiveRatio: 0.10}
}

const defaultMaxBodyBytes = 1 << 20

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		Forecast:    DefaultForecast(),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWTSecret = []byte(secret)
	} else {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	n, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", strconv.Itoa(defaultMaxBodyBytes)), 10, 64)
	if err != nil || n <= 0 {
		return Config{}, errors.New("MAX_BODY_BYTES must be a positive integer")
	}
	cfg.MaxBodyBytes = n

	if v := os.Getenv("AUTO_MIGRATE"); v != "" {
		if cfg.AutoMigrate, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("AUTO_MIGRATE: %w", err)
		}
	}

	if path := os.Getenv("PLANNER_CONFIG"); path != "" {
		if cfg.Forecast, err = LoadForecast(path); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

// LoadForecast reads the [forecast] table from the TOML file at path.
// Keys missing from the file keep their default value.
func LoadForecast(path string) (ForecastConfig, error) {
	file := FileConfig{Forecast: DefaultForecast()}
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return ForecastConfig{}, fmt.Errorf("config.LoadForecast: %w", err)
	}
	if err := file.Forecast.validate(); err != nil {
		return ForecastConfig{}, fmt.Errorf("config.LoadForecast: %s: %w", path, err)
	}
	return file.Forecast, nil
}

func (f ForecastConfig) validate() error {
	if f.WarningPercent <= 0 || f.DangerPercent <= 0 {
		return errors.New("warning_percent and danger_percent must be positive")
	}
	if f.WarningPercent > f.DangerPercent {
		return errors.New("warning_percent must not exceed danger_percent")
	}
	if f.ExpensiveRatio <= 0 || f.ExpensiveRatio > 1 {
		return errors.New("expensive_ratio must be in (0, 1]")
	}
	return nil
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
