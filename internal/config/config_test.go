package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Tickers) != 3 || cfg.Tickers[0] != "AAPL" {
		t.Errorf("expected default tickers AAPL/MSFT/GOOGL, got %v", cfg.Tickers)
	}
	if cfg.LookbackDays != 365 {
		t.Errorf("expected default lookback 365, got %d", cfg.LookbackDays)
	}
	if cfg.DataSource.Provider != "yahoo" {
		t.Errorf("expected default provider yahoo, got %q", cfg.DataSource.Provider)
	}
	if cfg.Analysis.ShortWindow != 50 || cfg.Analysis.LongWindow != 200 {
		t.Errorf("expected default windows 50/200, got %d/%d", cfg.Analysis.ShortWindow, cfg.Analysis.LongWindow)
	}
	if cfg.Analysis.RiskFreeRate != 0.02 {
		t.Errorf("expected default risk-free rate 0.02, got %.4f", cfg.Analysis.RiskFreeRate)
	}
	if cfg.Output.Dir != "out" {
		t.Errorf("expected default output dir, got %q", cfg.Output.Dir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
tickers: [tsla, nvda]
lookback_days: 120
data_source:
  provider: mock
analysis:
  short_window: 20
  long_window: 60
  risk_free_rate: 0.01
output:
  dir: artifacts
  charts: true
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Tickers) != 2 || cfg.Tickers[0] != "TSLA" || cfg.Tickers[1] != "NVDA" {
		t.Errorf("expected normalized [TSLA NVDA], got %v", cfg.Tickers)
	}
	if cfg.LookbackDays != 120 {
		t.Errorf("expected lookback 120, got %d", cfg.LookbackDays)
	}
	if cfg.DataSource.Provider != "mock" {
		t.Errorf("expected provider mock, got %q", cfg.DataSource.Provider)
	}
	if cfg.Analysis.RiskFreeRate != 0.01 {
		t.Errorf("expected risk-free rate 0.01, got %.4f", cfg.Analysis.RiskFreeRate)
	}
	if !cfg.Output.Charts || cfg.Output.Dir != "artifacts" {
		t.Errorf("output section not applied: %+v", cfg.Output)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("INVESTLENS_TICKERS", " amzn , meta ")
	t.Setenv("LOOKBACK_DAYS", "30")
	t.Setenv("RISK_FREE_RATE", "0.035")
	t.Setenv("SQLITE_PATH", "history.db")
	t.Setenv("OUTPUT_DIR", "reports")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Tickers) != 2 || cfg.Tickers[0] != "AMZN" || cfg.Tickers[1] != "META" {
		t.Errorf("expected [AMZN META], got %v", cfg.Tickers)
	}
	if cfg.LookbackDays != 30 {
		t.Errorf("expected lookback 30, got %d", cfg.LookbackDays)
	}
	if cfg.Analysis.RiskFreeRate != 0.035 {
		t.Errorf("expected risk-free rate 0.035, got %.4f", cfg.Analysis.RiskFreeRate)
	}
	if cfg.Database.SQLitePath != "history.db" {
		t.Errorf("expected sqlite path override, got %q", cfg.Database.SQLitePath)
	}
	if cfg.Output.Dir != "reports" {
		t.Errorf("expected output dir override, got %q", cfg.Output.Dir)
	}
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown provider", func(c *Config) { c.DataSource.Provider = "bloomberg" }},
		{"alphavantage without key", func(c *Config) {
			c.DataSource.Provider = "alphavantage"
			c.DataSource.APIKey = ""
		}},
		{"inverted windows", func(c *Config) {
			c.Analysis.ShortWindow = 200
			c.Analysis.LongWindow = 50
		}},
		{"no tickers", func(c *Config) { c.Tickers = nil }},
	}
	for _, tt := range tests {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatalf("%s: unexpected load error: %v", tt.name, err)
		}
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestNormalizeTickers(t *testing.T) {
	got := normalizeTickers([]string{" aapl", "", "  ", "Msft "})
	if len(got) != 2 || got[0] != "AAPL" || got[1] != "MSFT" {
		t.Errorf("expected [AAPL MSFT], got %v", got)
	}
}
