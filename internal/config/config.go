package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"InvestLens/internal/analyzer"
	"InvestLens/internal/collector"
)

// Config holds all application configuration.
type Config struct {
	Tickers      []string `yaml:"tickers"`
	LookbackDays int      `yaml:"lookback_days"`
	DataSource   struct {
		Provider string `yaml:"provider"` // yahoo, alphavantage or mock
		APIKey   string `yaml:"api_key"`
		BaseURL  string `yaml:"base_url"`
	} `yaml:"data_source"`
	Analysis struct {
		ShortWindow  int     `yaml:"short_window"`
		LongWindow   int     `yaml:"long_window"`
		RiskFreeRate float64 `yaml:"risk_free_rate"`
	} `yaml:"analysis"`
	Output struct {
		Dir    string `yaml:"dir"`
		Charts bool   `yaml:"charts"`
		JSON   bool   `yaml:"json"`
		XLSX   bool   `yaml:"xlsx"`
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; defaults alone
// give a working Yahoo setup.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("INVESTLENS_TICKERS"); v != "" {
		cfg.Tickers = strings.Split(v, ",")
	}
	if v := os.Getenv("LOOKBACK_DAYS"); v != "" {
		var days int
		if _, err := fmt.Sscanf(v, "%d", &days); err == nil {
			cfg.LookbackDays = days
		}
	}
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("RISK_FREE_RATE"); v != "" {
		var rate float64
		if _, err := fmt.Sscanf(v, "%f", &rate); err == nil {
			cfg.Analysis.RiskFreeRate = rate
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	cfg.Tickers = normalizeTickers(cfg.Tickers)
	if len(cfg.Tickers) == 0 {
		cfg.Tickers = []string{"AAPL", "MSFT", "GOOGL"}
	}
	if cfg.LookbackDays == 0 {
		cfg.LookbackDays = collector.DefaultLookbackDays
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.Analysis.ShortWindow == 0 {
		cfg.Analysis.ShortWindow = analyzer.DefaultShortWindow
	}
	if cfg.Analysis.LongWindow == 0 {
		cfg.Analysis.LongWindow = analyzer.DefaultLongWindow
	}
	if cfg.Analysis.RiskFreeRate == 0 {
		cfg.Analysis.RiskFreeRate = analyzer.DefaultRiskFreeRate
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "out"
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 30 22 * * 1-5"
	}

	return cfg, nil
}

// ParseTickers splits a comma-separated ticker list and normalizes it.
func ParseTickers(csv string) []string {
	return normalizeTickers(strings.Split(csv, ","))
}

// normalizeTickers trims, uppercases and drops empty symbols.
func normalizeTickers(tickers []string) []string {
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Validate checks that the loaded configuration is usable.
func (c *Config) Validate() error {
	if len(c.Tickers) == 0 {
		return fmt.Errorf("tickers must not be empty")
	}
	if c.LookbackDays < 0 {
		return fmt.Errorf("lookback_days must be positive")
	}
	switch c.DataSource.Provider {
	case "yahoo", "mock":
	case "alphavantage":
		if c.DataSource.APIKey == "" {
			return fmt.Errorf("data_source.api_key is required for alphavantage")
		}
	default:
		return fmt.Errorf("data_source.provider must be yahoo, alphavantage or mock")
	}
	if c.Analysis.ShortWindow <= 0 || c.Analysis.LongWindow <= 0 {
		return fmt.Errorf("analysis windows must be positive")
	}
	if c.Analysis.ShortWindow >= c.Analysis.LongWindow {
		return fmt.Errorf("analysis.short_window must be smaller than analysis.long_window")
	}
	return nil
}

// AnalyzerOptions maps the analysis section onto engine options.
func (c *Config) AnalyzerOptions() analyzer.Options {
	return analyzer.Options{
		ShortWindow:  c.Analysis.ShortWindow,
		LongWindow:   c.Analysis.LongWindow,
		RiskFreeRate: c.Analysis.RiskFreeRate,
	}
}
