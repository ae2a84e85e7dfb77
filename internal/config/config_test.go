package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PRODUCTHUNT_TOKEN", "tok")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("SCRAPE_INTERVAL_HOURS", "")
	t.Setenv("REQUEST_DELAY_SECONDS", "")
	t.Setenv("INGEST_PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ScrapeIntervalHours != 24 {
		t.Errorf("ScrapeIntervalHours = %d, want 24", cfg.ScrapeIntervalHours)
	}
	if cfg.RequestDelay != time.Second {
		t.Errorf("RequestDelay = %v, want 1s", cfg.RequestDelay)
	}
	if cfg.Port != "8081" {
		t.Errorf("Port = %q, want 8081", cfg.Port)
	}
	if err := cfg.RequireToken(); err != nil {
		t.Errorf("RequireToken with token set returned %v", err)
	}
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	cases := []struct{ key, value string }{
		{"SCRAPE_INTERVAL_HOURS", "soon"},
		{"SCRAPE_INTERVAL_HOURS", "0"},
		{"REQUEST_DELAY_SECONDS", "-1"},
		{"REQUEST_DELAY_SECONDS", "fast"},
	}
	for _, c := range cases {
		t.Run(c.key+"="+c.value, func(t *testing.T) {
			t.Setenv("SCRAPE_INTERVAL_HOURS", "")
			t.Setenv("REQUEST_DELAY_SECONDS", "")
			t.Setenv(c.key, c.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load with %s=%q expected error, got nil", c.key, c.value)
			}
		})
	}
}

func TestRequireToken(t *testing.T) {
	cfg := &Config{}
	if err := cfg.RequireToken(); err == nil {
		t.Error("RequireToken without token expected error, got nil")
	}
}
