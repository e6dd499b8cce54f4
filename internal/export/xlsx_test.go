package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"InvestLens/internal/analyzer"
	"InvestLens/internal/model"
)

func exportSeries(n int) *model.PriceSeries {
	base := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, n)
	for i := range bars {
		p := 100 + float64(i)
		bars[i] = model.Bar{
			Time: base.AddDate(0, 0, i),
			Open: p - 0.5, High: p + 1, Low: p - 1, Close: p, Volume: 1000,
		}
	}
	return &model.PriceSeries{Symbol: "MSFT", Bars: bars, Source: "mock"}
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	series := exportSeries(10)
	opts := analyzer.Options{ShortWindow: 3, LongWindow: 5, RiskFreeRate: 0.02}
	aligned := analyzer.Align(series, opts)
	m, err := analyzer.Analyze(series, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dir := t.TempDir()
	path, err := WriteXLSX(dir, series, aligned, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "MSFT_history.xlsx" {
		t.Errorf("expected MSFT_history.xlsx, got %s", filepath.Base(path))
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue(pricesSheet, "A1"); got != "Date" {
		t.Errorf("expected Date header, got %q", got)
	}
	if got, _ := f.GetCellValue(pricesSheet, "H1"); got != "MA3" {
		t.Errorf("expected MA3 header, got %q", got)
	}
	if got, _ := f.GetCellValue(pricesSheet, "E2"); got != "100" {
		t.Errorf("expected first close 100, got %q", got)
	}

	// Row 2 is the first bar: its return and averages are undefined and
	// must stay blank.
	for _, cell := range []string{"G2", "H2", "I2"} {
		if got, _ := f.GetCellValue(pricesSheet, cell); got != "" {
			t.Errorf("cell %s: expected blank, got %q", cell, got)
		}
	}
	// Row 4 (third bar) fills the 3-day window.
	if got, _ := f.GetCellValue(pricesSheet, "H4"); got == "" {
		t.Error("expected a defined MA3 value at row 4")
	}

	if got, _ := f.GetCellValue(metricsSheet, "A1"); got != "Symbol" {
		t.Errorf("expected Symbol label, got %q", got)
	}
	if got, _ := f.GetCellValue(metricsSheet, "B1"); got != "MSFT" {
		t.Errorf("expected MSFT, got %q", got)
	}

	rows, err := f.GetRows(pricesSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 11 {
		t.Errorf("expected header plus 10 bar rows, got %d", len(rows))
	}
}

func TestWriteXLSX_NoDefaultSheet(t *testing.T) {
	series := exportSeries(5)
	opts := analyzer.Options{ShortWindow: 2, LongWindow: 3, RiskFreeRate: 0.02}
	m, err := analyzer.Analyze(series, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path, err := WriteXLSX(t.TempDir(), series, analyzer.Align(series, opts), m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		if name == "Sheet1" {
			t.Error("default sheet should be removed")
		}
	}
}
