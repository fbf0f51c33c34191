package config

import (
	"strings"
	"testing"

	"github.com/02loveslollipop/campus-pulse/services/api/registry"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8080 || cfg.RegistrySource != RegistryBuiltin || cfg.FallbackPolicy != registry.FallbackDefault {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.ListenAddr() != ":8080" || cfg.LLMEnabled() || len(cfg.KafkaBrokers) != 0 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("API_PORT", "9090")
	t.Setenv("REGISTRY_SOURCE", "FILE")
	t.Setenv("REGISTRY_FILE", "config/campus.yaml")
	t.Setenv("FALLBACK_POLICY", "strict")
	t.Setenv("SIM_SEED", "42")
	t.Setenv("WATER_DETECTOR", "threshold")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("LLM_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9090 || cfg.RegistrySource != RegistryFile || cfg.FallbackPolicy != registry.FallbackStrict {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.SimSeed != 42 || cfg.WaterDetector != "threshold" || !cfg.LLMEnabled() {
		t.Fatalf("cfg = %+v", cfg)
	}
	if strings.Join(cfg.KafkaBrokers, "|") != "k1:9092|k2:9092" {
		t.Fatalf("brokers = %v", cfg.KafkaBrokers)
	}
}

func TestLoadAcceptsEveryDetectorMode(t *testing.T) {
	for _, mode := range []string{"auto", "Statistical", " threshold "} {
		t.Run(mode, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv("WATER_DETECTOR", mode)
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.WaterDetector != strings.ToLower(strings.TrimSpace(mode)) {
				t.Fatalf("detector = %q", cfg.WaterDetector)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"PORT", "abc", "invalid PORT"},
		{"REGISTRY_SOURCE", "etcd", "invalid REGISTRY_SOURCE"},
		{"REGISTRY_SOURCE", "postgres", "DATABASE_URL is required"},
		{"FALLBACK_POLICY", "lenient", "invalid FALLBACK_POLICY"},
		{"SIM_SEED", "-1", "invalid SIM_SEED"},
		{"WATER_DETECTOR", "forest", "invalid WATER_DETECTOR"},
		{"OVERVIEW_WORKERS", "0", "invalid OVERVIEW_WORKERS"},
		{"RATE_LIMIT_RPS", "fast", "invalid RATE_LIMIT_RPS"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}
