package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":8000" {
		t.Errorf("expected default addr :8000, got %q", cfg.Server.Addr)
	}
	if cfg.Provider.Source != "yahoo" {
		t.Errorf("expected default provider yahoo, got %q", cfg.Provider.Source)
	}
	if cfg.Screener.Days != 365 || cfg.Screener.Limit != 15 || cfg.Screener.Workers != 4 {
		t.Errorf("unexpected screener defaults: %+v", cfg.Screener)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate, got %v", err)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("provider:\n  source: mock\nscreener:\n  days: 400\n  limit: 20\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RADAR_TICKERS", "aapl, msft ,")
	t.Setenv("RADAR_WORKERS", "8")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider.Source != "mock" {
		t.Errorf("expected provider mock, got %q", cfg.Provider.Source)
	}
	if cfg.Screener.Days != 400 || cfg.Screener.Limit != 20 {
		t.Errorf("unexpected screener values: %+v", cfg.Screener)
	}
	if cfg.Screener.Workers != 8 {
		t.Errorf("expected env workers override 8, got %d", cfg.Screener.Workers)
	}
	want := []string{"AAPL", "MSFT"}
	if len(cfg.Screener.Tickers) != 2 || cfg.Screener.Tickers[0] != want[0] || cfg.Screener.Tickers[1] != want[1] {
		t.Errorf("expected tickers %v, got %v", want, cfg.Screener.Tickers)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown provider", func(c *Config) { c.Provider.Source = "bloomberg" }},
		{"alpaca without keys", func(c *Config) { c.Provider.Source = "alpaca" }},
		{"days below minimum", func(c *Config) { c.Screener.Days = 59 }},
		{"zero limit", func(c *Config) { c.Screener.Limit = 0 }},
		{"cron without telegram", func(c *Config) { c.Schedule.DailyCron = "0 0 9 * * 1-5" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
