package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"InvestLens/internal/analyzer"
	"InvestLens/internal/chart"
	"InvestLens/internal/collector"
	"InvestLens/internal/config"
	"InvestLens/internal/export"
	"InvestLens/internal/model"
	"InvestLens/internal/recorder"
	"InvestLens/internal/report"
	"InvestLens/internal/scheduler"

	"github.com/joho/godotenv"
)

const historyLimit = 20

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] no .env file found, using environment variables")
	}

	defaultConfig := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultConfig = v
	}

	var (
		cfgPath   = flag.String("config", defaultConfig, "path to YAML config file")
		tickers   = flag.String("tickers", "", "comma-separated tickers (overrides config)")
		days      = flag.Int("days", 0, "lookback in calendar days (overrides config)")
		from      = flag.String("from", "", "range start date, YYYY-MM-DD")
		to        = flag.String("to", "", "range end date, YYYY-MM-DD (defaults to today)")
		outputDir = flag.String("output", "", "artifact directory (overrides config)")
		charts    = flag.Bool("charts", false, "write price chart PNGs")
		jsonOut   = flag.Bool("json", false, "write per-ticker JSON reports")
		xlsxOut   = flag.Bool("xlsx", false, "write per-ticker XLSX workbooks")
		watch     = flag.Bool("watch", false, "keep running and analyze on the cron schedule")
		history   = flag.String("history", "", "print recorded analyses for a ticker and exit")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if *tickers != "" {
		cfg.Tickers = config.ParseTickers(*tickers)
	}
	if *days > 0 {
		cfg.LookbackDays = *days
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if *charts {
		cfg.Output.Charts = true
	}
	if *jsonOut {
		cfg.Output.JSON = true
	}
	if *xlsxOut {
		cfg.Output.XLSX = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	window, err := resolveWindow(cfg, *from, *to)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	rec := openRecorder(cfg)
	defer rec.Close()

	if *history != "" {
		printHistory(cfg, rec, *history)
		return
	}

	fetcher := newFetcher(cfg)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher)

	if cfg.Output.Charts || cfg.Output.JSON || cfg.Output.XLSX {
		if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
			log.Fatalf("[FATAL] create output dir: %v", err)
		}
	}

	if *watch {
		runWatch(cfg, col, rec, window)
		return
	}

	outcomes := runBatch(cfg, col, rec, window)
	if allFailed(outcomes) {
		rec.Close()
		os.Exit(1)
	}
}

// resolveWindow builds the fetch window from the date-range flags,
// falling back to the configured lookback.
func resolveWindow(cfg *config.Config, from, to string) (collector.Window, error) {
	if from == "" {
		if to != "" {
			return collector.Window{}, errors.New("-to requires -from")
		}
		return collector.Window{LookbackDays: cfg.LookbackDays}, nil
	}

	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return collector.Window{}, fmt.Errorf("parse -from: %w", err)
	}
	end := time.Now().UTC()
	if to != "" {
		end, err = time.Parse("2006-01-02", to)
		if err != nil {
			return collector.Window{}, fmt.Errorf("parse -to: %w", err)
		}
	}
	if end.Before(start) {
		return collector.Window{}, fmt.Errorf("range end %s precedes start %s", end.Format("2006-01-02"), from)
	}
	return collector.Window{Start: start, End: end}, nil
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	switch cfg.DataSource.Provider {
	case "alphavantage":
		f := collector.NewAlphaVantageFetcher(cfg.DataSource.APIKey, cfg.Proxy)
		if cfg.DataSource.BaseURL != "" {
			f.BaseURL = cfg.DataSource.BaseURL
		}
		return f
	case "mock":
		return &collector.MockFetcher{}
	default:
		f := collector.NewYahooFetcher(cfg.Proxy)
		if cfg.DataSource.BaseURL != "" {
			f.BaseURL = cfg.DataSource.BaseURL
		}
		return f
	}
}

func openRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}

func printHistory(cfg *config.Config, rec recorder.Recorder, symbol string) {
	if cfg.Database.SQLitePath == "" {
		log.Println("[WARN] no database.sqlite_path configured, history is empty")
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	records, err := rec.RecentAnalyses(symbol, historyLimit)
	if err != nil {
		log.Fatalf("[FATAL] read history: %v", err)
	}
	fmt.Print(report.FormatHistory(symbol, records))
}

// runBatch analyzes every configured ticker. A failing ticker is logged
// and reported in the summary; the rest continue.
func runBatch(cfg *config.Config, col *collector.Collector, rec recorder.Recorder, window collector.Window) []report.Outcome {
	outcomes := make([]report.Outcome, 0, len(cfg.Tickers))
	for _, symbol := range cfg.Tickers {
		m, err := analyzeOne(cfg, col, rec, symbol, window)
		if err != nil {
			log.Printf("[ERROR] analyze %s: %v", symbol, err)
			outcomes = append(outcomes, report.Outcome{Symbol: symbol, Err: err})
			continue
		}
		outcomes = append(outcomes, report.Outcome{Symbol: symbol, Metrics: m})
	}
	fmt.Print(report.FormatBatchSummary(outcomes))
	return outcomes
}

// allFailed reports whether every ticker in the batch failed.
func allFailed(outcomes []report.Outcome) bool {
	for _, o := range outcomes {
		if o.Err == nil {
			return false
		}
	}
	return len(outcomes) > 0
}

func analyzeOne(cfg *config.Config, col *collector.Collector, rec recorder.Recorder, symbol string, window collector.Window) (*model.DerivedMetrics, error) {
	series, err := col.Collect(symbol, window)
	if err != nil {
		return nil, err
	}
	m, err := analyzer.Analyze(series, cfg.AnalyzerOptions())
	if err != nil {
		return nil, err
	}
	fmt.Println(report.Format(m))

	writeArtifacts(cfg, series, m)

	if err := rec.RecordAnalysis(&recorder.AnalysisSnapshot{Metrics: m}); err != nil {
		log.Printf("[ERROR] record analysis for %s: %v", symbol, err)
	}
	return m, nil
}

// writeArtifacts emits the optional chart, JSON and XLSX files. Failures
// here are logged but do not fail the ticker.
func writeArtifacts(cfg *config.Config, series *model.PriceSeries, m *model.DerivedMetrics) {
	if cfg.Output.JSON {
		if path, err := report.WriteJSON(cfg.Output.Dir, m); err != nil {
			log.Printf("[WARN] write json for %s: %v", m.Symbol, err)
		} else {
			log.Printf("[INFO] wrote %s", path)
		}
	}

	if !cfg.Output.Charts && !cfg.Output.XLSX {
		return
	}
	aligned := analyzer.Align(series, cfg.AnalyzerOptions())

	if cfg.Output.Charts {
		img, err := chart.Render(series, aligned, cfg.Analysis.ShortWindow, cfg.Analysis.LongWindow)
		if err != nil {
			log.Printf("[WARN] render chart for %s: %v", m.Symbol, err)
		} else if path, err := chart.WritePNG(cfg.Output.Dir, m.Symbol, img); err != nil {
			log.Printf("[WARN] write chart for %s: %v", m.Symbol, err)
		} else {
			log.Printf("[INFO] wrote %s", path)
		}
	}

	if cfg.Output.XLSX {
		if path, err := export.WriteXLSX(cfg.Output.Dir, series, aligned, m); err != nil {
			log.Printf("[WARN] write xlsx for %s: %v", m.Symbol, err)
		} else {
			log.Printf("[INFO] wrote %s", path)
		}
	}
}

func runWatch(cfg *config.Config, col *collector.Collector, rec recorder.Recorder, window collector.Window) {
	sched := scheduler.NewScheduler()
	if err := sched.AddJob(cfg.Schedule.DailyCron, "daily analysis", func() {
		runBatch(cfg, col, rec, window)
	}); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing analysis now")
		go runBatch(cfg, col, rec, window)
	}

	log.Println("[INFO] InvestLens is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
}
