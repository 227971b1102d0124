package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{envPort, envProvider, envViews, envPollInterval, envSeedPriority, envRedisURL, envRankingsTTL} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "4000" {
		t.Fatalf("port = %q, want 4000", cfg.Port)
	}
	if cfg.Provider != "fixture" {
		t.Fatalf("provider = %q, want fixture", cfg.Provider)
	}
	if len(cfg.Views) != 2 {
		t.Fatalf("views = %d, want 2", len(cfg.Views))
	}
	if cfg.Views[0].PollInterval != 10*time.Second {
		t.Fatalf("poll interval = %v, want 10s", cfg.Views[0].PollInterval)
	}
	if cfg.RankingsTTL != 5*time.Minute {
		t.Fatalf("rankings ttl = %v, want 5m", cfg.RankingsTTL)
	}
	if cfg.ESPN.BaseURL == "" || cfg.ESPN.CDNURL == "" {
		t.Fatalf("espn urls must default: %+v", cfg.ESPN)
	}
	if cfg.RetryAttempts != 3 {
		t.Fatalf("retry attempts = %d, want 3", cfg.RetryAttempts)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envPort, "8080")
	t.Setenv(envProvider, "espn")
	t.Setenv(envPollInterval, "30s")
	t.Setenv(envSeedPriority, "1,2,3")
	t.Setenv(envRetryAttempts, "5")

	cfg := Load()
	if cfg.Port != "8080" || cfg.Provider != "espn" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Views[0].PollInterval != 30*time.Second {
		t.Fatalf("poll interval = %v, want 30s", cfg.Views[0].PollInterval)
	}
	if got := cfg.Views[0].SeedPriority; len(got) != 3 || got[0] != 1 {
		t.Fatalf("seed priority = %v, want [1 2 3]", got)
	}
	if cfg.RetryAttempts != 5 {
		t.Fatalf("retry attempts = %d, want 5", cfg.RetryAttempts)
	}
}
