package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"InvestLens/internal/model"
)

func fp(v float64) *float64 { return &v }

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "investlens.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRecorder: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	r := openTestRecorder(t)

	m := &model.DerivedMetrics{
		Symbol:               "AAPL",
		Source:               "yahoo",
		AsOf:                 time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DataPoints:           260,
		CurrentPrice:         187.42,
		ShortWindow:          50,
		LongWindow:           200,
		ShortMA:              fp(180.11),
		LongMA:               fp(172.55),
		Trend:                model.TrendBullish,
		AnnualizedReturn:     fp(0.21),
		AnnualizedVolatility: fp(0.18),
		SharpeRatio:          fp(1.06),
		RiskFreeRate:         0.02,
		Recommendation:       "Consider Buying: Positive trend with good risk-adjusted returns",
	}
	if err := r.RecordAnalysis(&AnalysisSnapshot{Metrics: m}); err != nil {
		t.Fatalf("RecordAnalysis: %v", err)
	}

	records, err := r.RecentAnalyses("AAPL", 10)
	if err != nil {
		t.Fatalf("RecentAnalyses: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.Symbol != "AAPL" || rec.Source != "yahoo" {
		t.Errorf("unexpected identity: symbol=%q source=%q", rec.Symbol, rec.Source)
	}
	if rec.DataPoints != 260 {
		t.Errorf("data points = %d, want 260", rec.DataPoints)
	}
	if rec.CurrentPrice != 187.42 {
		t.Errorf("current price = %v, want 187.42", rec.CurrentPrice)
	}
	if rec.ShortMA == nil || *rec.ShortMA != 180.11 {
		t.Errorf("short MA = %v, want 180.11", rec.ShortMA)
	}
	if rec.LongMA == nil || *rec.LongMA != 172.55 {
		t.Errorf("long MA = %v, want 172.55", rec.LongMA)
	}
	if rec.SharpeRatio == nil || *rec.SharpeRatio != 1.06 {
		t.Errorf("sharpe = %v, want 1.06", rec.SharpeRatio)
	}
	if rec.Trend != model.TrendBullish {
		t.Errorf("trend = %q, want %q", rec.Trend, model.TrendBullish)
	}
	if rec.Recommendation == "" {
		t.Error("recommendation not persisted")
	}
	if rec.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestSQLiteRecorder_PreservesAbsentMetrics(t *testing.T) {
	r := openTestRecorder(t)

	// Short history: no moving averages, no Sharpe, no trend.
	m := &model.DerivedMetrics{
		Symbol:               "NVDA",
		Source:               "mock",
		DataPoints:           5,
		CurrentPrice:         110,
		ShortWindow:          50,
		LongWindow:           200,
		AvgDailyReturn:       fp(0.024),
		AnnualizedReturn:     fp(0.5),
		AnnualizedVolatility: fp(0.3),
		RiskFreeRate:         0.02,
	}
	if err := r.RecordAnalysis(&AnalysisSnapshot{Metrics: m}); err != nil {
		t.Fatalf("RecordAnalysis: %v", err)
	}

	records, err := r.RecentAnalyses("NVDA", 1)
	if err != nil {
		t.Fatalf("RecentAnalyses: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.ShortMA != nil || rec.LongMA != nil || rec.SharpeRatio != nil {
		t.Errorf("absent metrics should read back as nil: shortMA=%v longMA=%v sharpe=%v",
			rec.ShortMA, rec.LongMA, rec.SharpeRatio)
	}
	if rec.Trend != "" {
		t.Errorf("trend = %q, want empty", rec.Trend)
	}
	if rec.AnnualizedReturn == nil || *rec.AnnualizedReturn != 0.5 {
		t.Errorf("annualized return = %v, want 0.5", rec.AnnualizedReturn)
	}
	if rec.AnnualizedVolatility == nil || *rec.AnnualizedVolatility != 0.3 {
		t.Errorf("annualized volatility = %v, want 0.3", rec.AnnualizedVolatility)
	}
}

func TestSQLiteRecorder_RecentOrderAndLimit(t *testing.T) {
	r := openTestRecorder(t)

	for _, price := range []float64{101, 102, 103} {
		m := &model.DerivedMetrics{Symbol: "AAPL", Source: "mock", DataPoints: 10, CurrentPrice: price}
		if err := r.RecordAnalysis(&AnalysisSnapshot{Metrics: m}); err != nil {
			t.Fatalf("RecordAnalysis: %v", err)
		}
	}
	other := &model.DerivedMetrics{Symbol: "MSFT", Source: "mock", DataPoints: 10, CurrentPrice: 400}
	if err := r.RecordAnalysis(&AnalysisSnapshot{Metrics: other}); err != nil {
		t.Fatalf("RecordAnalysis: %v", err)
	}

	records, err := r.RecentAnalyses("AAPL", 2)
	if err != nil {
		t.Fatalf("RecentAnalyses: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].CurrentPrice != 103 || records[1].CurrentPrice != 102 {
		t.Errorf("rows not newest first: got %v then %v",
			records[0].CurrentPrice, records[1].CurrentPrice)
	}
	for _, rec := range records {
		if rec.Symbol != "AAPL" {
			t.Errorf("foreign symbol leaked into results: %q", rec.Symbol)
		}
	}
}
