package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// SourceBuiltin seeds the tables from the compiled-in campus profiles.
	SourceBuiltin = "builtin"

	defaultRequestTimeout = 30 * time.Second
)

// Config holds runtime configuration for the seeder job.
type Config struct {
	DatabaseURL    string
	Source         string
	RequestTimeout time.Duration
	Prune          bool
	DryRun         bool
	LogLevel       string
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{}

	dryRun := strings.TrimSpace(os.Getenv("DRY_RUN"))
	cfg.DryRun = dryRun == "1" || strings.EqualFold(dryRun, "true")

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" && !cfg.DryRun {
		return cfg, errors.New("DATABASE_URL is required")
	}

	cfg.Source = strings.TrimSpace(os.Getenv("REGISTRY_SOURCE"))
	if cfg.Source == "" {
		cfg.Source = SourceBuiltin
	}

	cfg.RequestTimeout = defaultRequestTimeout
	if v := strings.TrimSpace(os.Getenv("SEEDER_REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid SEEDER_REQUEST_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return cfg, fmt.Errorf("invalid SEEDER_REQUEST_TIMEOUT: %s", v)
		}
		cfg.RequestTimeout = d
	}

	prune := strings.TrimSpace(os.Getenv("SEEDER_PRUNE"))
	cfg.Prune = prune == "1" || strings.EqualFold(prune, "true")

	cfg.LogLevel = strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}
