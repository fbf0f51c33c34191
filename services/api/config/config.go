package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/02loveslollipop/campus-pulse/services/api/analysis/water"
	"github.com/02loveslollipop/campus-pulse/services/api/registry"
)

// Registry sources.
const (
	RegistryBuiltin  = "builtin"
	RegistryFile     = "file"
	RegistryPostgres = "postgres"
)

// Config holds environment-driven settings for the REST API.
type Config struct {
	Port     int
	LogLevel string
	LogFile  string

	RegistrySource string
	RegistryFile   string
	DatabaseURL    string
	FallbackPolicy registry.FallbackPolicy

	SimSeed         uint64
	WaterDetector   string
	OverviewWorkers int

	RateLimitRPS   float64
	RateLimitBurst int

	KafkaBrokers     []string
	KafkaReportTopic string

	MQTTBroker      string
	MQTTTopicPrefix string
	MQTTClientID    string

	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string
	LLMRPM     int
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port:             8080,
		LogLevel:         "info",
		RegistrySource:   RegistryBuiltin,
		FallbackPolicy:   registry.FallbackDefault,
		WaterDetector:    water.ModeStatistical,
		OverviewWorkers:  3,
		RateLimitRPS:     20,
		RateLimitBurst:   40,
		KafkaReportTopic: "campus.reports",
		MQTTTopicPrefix:  "campus",
		MQTTClientID:     "campus-pulse-api",
		LLMModel:         "gpt-4o-mini",
		LLMRPM:           30,
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = lvl
	}
	cfg.LogFile = os.Getenv("LOG_FILE")

	if src := os.Getenv("REGISTRY_SOURCE"); src != "" {
		cfg.RegistrySource = strings.ToLower(src)
	}
	cfg.RegistryFile = os.Getenv("REGISTRY_FILE")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	switch cfg.RegistrySource {
	case RegistryBuiltin:
	case RegistryFile:
		if cfg.RegistryFile == "" {
			return cfg, errors.New("REGISTRY_FILE is required when REGISTRY_SOURCE=file")
		}
	case RegistryPostgres:
		if cfg.DatabaseURL == "" {
			return cfg, errors.New("DATABASE_URL is required when REGISTRY_SOURCE=postgres")
		}
	default:
		return cfg, fmt.Errorf("invalid REGISTRY_SOURCE: %s", cfg.RegistrySource)
	}

	policy, err := registry.ParsePolicy(os.Getenv("FALLBACK_POLICY"))
	if err != nil {
		return cfg, fmt.Errorf("invalid FALLBACK_POLICY: %s", os.Getenv("FALLBACK_POLICY"))
	}
	cfg.FallbackPolicy = policy

	if seedStr := os.Getenv("SIM_SEED"); seedStr != "" {
		seed, err := strconv.ParseUint(seedStr, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid SIM_SEED: %s", seedStr)
		}
		cfg.SimSeed = seed
	}

	if mode := os.Getenv("WATER_DETECTOR"); mode != "" {
		mode = strings.ToLower(strings.TrimSpace(mode))
		switch mode {
		case water.ModeAuto, water.ModeStatistical, water.ModeThreshold:
		default:
			return cfg, fmt.Errorf("invalid WATER_DETECTOR: %s", mode)
		}
		cfg.WaterDetector = mode
	}

	if cfg.OverviewWorkers, err = positiveInt("OVERVIEW_WORKERS", cfg.OverviewWorkers); err != nil {
		return cfg, err
	}

	if rpsStr := os.Getenv("RATE_LIMIT_RPS"); rpsStr != "" {
		if rps, err := strconv.ParseFloat(rpsStr, 64); err == nil && rps >= 0 {
			cfg.RateLimitRPS = rps
		} else {
			return cfg, fmt.Errorf("invalid RATE_LIMIT_RPS: %s", rpsStr)
		}
	}
	if cfg.RateLimitBurst, err = positiveInt("RATE_LIMIT_BURST", cfg.RateLimitBurst); err != nil {
		return cfg, err
	}

	for _, b := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
		}
	}
	if topic := os.Getenv("KAFKA_REPORT_TOPIC"); topic != "" {
		cfg.KafkaReportTopic = topic
	}

	cfg.MQTTBroker = os.Getenv("MQTT_BROKER")
	if prefix := os.Getenv("MQTT_TOPIC_PREFIX"); prefix != "" {
		cfg.MQTTTopicPrefix = prefix
	}
	if id := os.Getenv("MQTT_CLIENT_ID"); id != "" {
		cfg.MQTTClientID = id
	}

	cfg.LLMBaseURL = os.Getenv("LLM_BASE_URL")
	cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")
	if model := os.Getenv("LLM_MODEL"); model != "" {
		cfg.LLMModel = model
	}
	if cfg.LLMRPM, err = positiveInt("LLM_RPM", cfg.LLMRPM); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func positiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def, fmt.Errorf("invalid %s: %s", key, s)
	}
	return n, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// LLMEnabled reports whether chat replies go through the language model.
func (c Config) LLMEnabled() bool {
	return c.LLMAPIKey != ""
}
