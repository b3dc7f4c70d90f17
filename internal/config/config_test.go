package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_ThresholdRange(t *testing.T) {
	for _, threshold := range []float64{-0.1, 1.5} {
		cfg := validConfig()
		cfg.Search.DefaultThreshold = threshold

		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for threshold %g", threshold)
		}
	}
}

func TestValidate_RateLimitRules(t *testing.T) {
	cases := []struct {
		name string
		rule RateLimitRule
	}{
		{"missing pattern", RateLimitRule{Limit: 10, WindowSec: 60}},
		{"zero limit", RateLimitRule{Pattern: "/api/v1/search", WindowSec: 60}},
		{"negative limit", RateLimitRule{Pattern: "/api/v1/search", Limit: -1, WindowSec: 60}},
		{"zero window", RateLimitRule{Pattern: "/api/v1/search", Limit: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.RateLimit.Rules = []RateLimitRule{tc.rule}

			if err := cfg.Validate(); err == nil {
				t.Error("expected error for invalid rule")
			}
		})
	}
}

func TestValidate_ValidRateLimitRule(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.Rules = []RateLimitRule{
		{Pattern: "/api/v1/search", Limit: 30, WindowSec: 60},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Search.DefaultThreshold != 0.2 {
		t.Errorf("expected DefaultThreshold=0.2, got %g", cfg.Search.DefaultThreshold)
	}
	if cfg.Search.ExactMatchBonus != 1.0 {
		t.Errorf("expected ExactMatchBonus=1.0, got %g", cfg.Search.ExactMatchBonus)
	}
	if cfg.Search.DefaultPageSize != 20 {
		t.Errorf("expected DefaultPageSize=20, got %d", cfg.Search.DefaultPageSize)
	}
	if cfg.Search.MaxPageSize != 100 {
		t.Errorf("expected MaxPageSize=100, got %d", cfg.Search.MaxPageSize)
	}
	if cfg.RateLimit.DefaultLimit != 60 {
		t.Errorf("expected DefaultLimit=60, got %d", cfg.RateLimit.DefaultLimit)
	}
	if cfg.RateLimit.DefaultWindowSec != 60 {
		t.Errorf("expected DefaultWindowSec=60, got %d", cfg.RateLimit.DefaultWindowSec)
	}
	if cfg.RateLimit.CleanupIntervalSec != 60 {
		t.Errorf("expected CleanupIntervalSec=60, got %d", cfg.RateLimit.CleanupIntervalSec)
	}
	if cfg.Storage.KeyPrefix != "sitesearch:" {
		t.Errorf("expected KeyPrefix='sitesearch:', got %q", cfg.Storage.KeyPrefix)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database:  DatabaseConfig{ReadinessTimeout: 15},
		Search:    SearchConfig{DefaultThreshold: 0.35, ExactMatchBonus: 2, DefaultPageSize: 50, MaxPageSize: 500},
		RateLimit: RateLimitConfig{DefaultLimit: 100, DefaultWindowSec: 30, CleanupIntervalSec: 120},
		Storage:   StorageConfig{KeyPrefix: "custom:"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Search.DefaultThreshold != 0.35 {
		t.Errorf("expected DefaultThreshold=0.35, got %g", cfg.Search.DefaultThreshold)
	}
	if cfg.RateLimit.DefaultLimit != 100 {
		t.Errorf("expected DefaultLimit=100, got %d", cfg.RateLimit.DefaultLimit)
	}
	if cfg.Storage.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Storage.KeyPrefix)
	}
}
