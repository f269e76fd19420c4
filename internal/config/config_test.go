package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("SCHEDULING_POLICY_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("addr: %s", cfg.Addr())
	}
	if cfg.Timezone != "America/Sao_Paulo" {
		t.Fatalf("timezone: %s", cfg.Timezone)
	}
	if len(cfg.KafkaBrokers) != 0 {
		t.Fatalf("brokers: %v", cfg.KafkaBrokers)
	}
	if cfg.Policy.OverrideCapPerDay != 2 || cfg.Policy.MaxSeriesOccurrences != 52 {
		t.Fatalf("policy: %+v", cfg.Policy)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("SCHEDULING_POLICY_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr() != ":9090" || cfg.RedisURL != "redis://localhost:6379/0" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Fatalf("brokers: %v", cfg.KafkaBrokers)
	}
}

func TestLoadPolicyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	body := "override_cap_per_day: 3\nmax_series_occurrences: 500\nslot_step_minutes: 30\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPolicy(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.OverrideCapPerDay != 3 || p.SlotStepMinutes != 30 {
		t.Fatalf("policy not read: %+v", p)
	}
	if p.MaxSeriesOccurrences != 52 {
		t.Fatalf("series cap must be clamped, got %d", p.MaxSeriesOccurrences)
	}
	if p.LockTTLSeconds != 10 {
		t.Fatalf("missing keys keep defaults, got %d", p.LockTTLSeconds)
	}

	if _, err := LoadPolicy(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing explicit file must fail")
	}
}
