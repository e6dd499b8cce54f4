package export

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"InvestLens/internal/model"
)

const (
	pricesSheet  = "Prices"
	metricsSheet = "Metrics"
)

// WriteXLSX writes {SYMBOL}_history.xlsx into dir: a Prices sheet with
// one row per bar plus the aligned indicator columns, and a Metrics sheet
// with the summary record. Undefined values stay blank, never zero.
func WriteXLSX(dir string, series *model.PriceSeries, aligned *model.AlignedSeries, m *model.DerivedMetrics) (string, error) {
	f, err := buildWorkbook(series, aligned, m)
	if err != nil {
		return "", err
	}
	defer f.Close()

	path := filepath.Join(dir, fmt.Sprintf("%s_history.xlsx", series.Symbol))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("write workbook: %w", err)
	}
	return path, nil
}

func buildWorkbook(series *model.PriceSeries, aligned *model.AlignedSeries, m *model.DerivedMetrics) (*excelize.File, error) {
	f := excelize.NewFile()

	idx, err := f.NewSheet(pricesSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	header := []interface{}{
		"Date", "Open", "High", "Low", "Close", "Volume",
		"Daily Return",
		fmt.Sprintf("MA%d", m.ShortWindow),
		fmt.Sprintf("MA%d", m.LongWindow),
	}
	if err := f.SetSheetRow(pricesSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, bar := range series.Bars {
		row := []interface{}{
			bar.Time.Format("2006-01-02"),
			bar.Open, bar.High, bar.Low, bar.Close, bar.Volume,
			blankIfNaN(aligned.DailyReturns[i]),
			blankIfNaN(aligned.ShortMA[i]),
			blankIfNaN(aligned.LongMA[i]),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(pricesSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.NewSheet(metricsSheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	rows := [][]interface{}{
		{"Symbol", m.Symbol},
		{"Source", m.Source},
		{"As Of", m.AsOf.Format("2006-01-02")},
		{"Data Points", m.DataPoints},
		{"Current Price", m.CurrentPrice},
		{fmt.Sprintf("MA%d", m.ShortWindow), blankIfNil(m.ShortMA)},
		{fmt.Sprintf("MA%d", m.LongWindow), blankIfNil(m.LongMA)},
		{"Trend", string(m.Trend)},
		{"Avg Daily Return", blankIfNil(m.AvgDailyReturn)},
		{"Annualized Return", blankIfNil(m.AnnualizedReturn)},
		{"Annualized Volatility", blankIfNil(m.AnnualizedVolatility)},
		{"Sharpe Ratio", blankIfNil(m.SharpeRatio)},
		{"Risk-Free Rate", m.RiskFreeRate},
		{"Recommendation", m.Recommendation},
		{"Generated At", m.GeneratedAt.Format("2006-01-02 15:04:05")},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		r := row
		if err := f.SetSheetRow(metricsSheet, cell, &r); err != nil {
			return nil, fmt.Errorf("write metrics row %d: %w", i+1, err)
		}
	}

	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}
	return f, nil
}

func blankIfNaN(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func blankIfNil(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
