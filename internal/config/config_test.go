package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.BaseURL != "http://localhost:8000/api/v1" {
		t.Errorf("unexpected default base URL %q", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("unexpected default timeout %v", cfg.RequestTimeout)
	}
	if cfg.HistorySize != 50 {
		t.Errorf("unexpected default history size %d", cfg.HistorySize)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FRAUDWATCH_API_URL", "http://backend:9000/api/v1")
	t.Setenv("FRAUDWATCH_STATS_INTERVAL", "5s")
	t.Setenv("FRAUDWATCH_HISTORY_SIZE", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.BaseURL != "http://backend:9000/api/v1" {
		t.Errorf("expected env base URL, got %q", cfg.BaseURL)
	}
	if cfg.StatsInterval != 5*time.Second {
		t.Errorf("expected 5s stats interval, got %v", cfg.StatsInterval)
	}
	if cfg.HistorySize != 25 {
		t.Errorf("expected history size 25, got %d", cfg.HistorySize)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg := &Config{BaseURL: "", DBPath: "x", RequestTimeout: time.Second, HealthInterval: time.Second, StatsInterval: time.Second, HistorySize: 1}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty base URL")
	}

	cfg = &Config{BaseURL: "x", DBPath: "x", RequestTimeout: time.Second, HealthInterval: time.Second, StatsInterval: time.Second, HistorySize: 0}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero history size")
	}
}

func TestLoad_IgnoresMalformedEnv(t *testing.T) {
	t.Setenv("FRAUDWATCH_HISTORY_SIZE", "not-a-number")
	t.Setenv("FRAUDWATCH_HEALTH_INTERVAL", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HistorySize != 50 {
		t.Errorf("expected fallback history size, got %d", cfg.HistorySize)
	}
	if cfg.HealthInterval != 30*time.Second {
		t.Errorf("expected fallback health interval, got %v", cfg.HealthInterval)
	}
}
