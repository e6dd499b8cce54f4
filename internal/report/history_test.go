package report

import (
	"strings"
	"testing"
	"time"

	"InvestLens/internal/model"
	"InvestLens/internal/recorder"
)

func TestFormatHistory_Rows(t *testing.T) {
	ts := time.Date(2024, 3, 1, 15, 4, 0, 0, time.UTC)
	records := []recorder.AnalysisRecord{
		{
			Timestamp:    ts,
			Symbol:       "AAPL",
			Source:       "yahoo",
			DataPoints:   260,
			CurrentPrice: 187.42,
			Trend:        model.TrendBullish,
			SharpeRatio:  fp(1.06),
		},
		{
			Timestamp:    ts.AddDate(0, 0, -1),
			Symbol:       "AAPL",
			Source:       "yahoo",
			DataPoints:   259,
			CurrentPrice: 185.10,
		},
	}

	out := FormatHistory("AAPL", records)
	for _, want := range []string{
		"==== Recorded Analyses for AAPL ====",
		"2024-03-01 15:04",
		"$187.42",
		"Bullish",
		"Sharpe 1.06",
		"(yahoo, 260 points)",
		"no trend",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("history missing %q:\n%s", want, out)
		}
	}
}

func TestFormatHistory_Empty(t *testing.T) {
	out := FormatHistory("TSLA", nil)
	if !strings.Contains(out, "No recorded analyses.") {
		t.Errorf("empty history should say so:\n%s", out)
	}
}
