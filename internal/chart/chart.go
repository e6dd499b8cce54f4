package chart

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/vicanso/go-charts/v2"

	"InvestLens/internal/model"
)

// Render draws the close price and both moving averages as a PNG line
// chart. Undefined MA prefixes render as gaps, so each average line
// starts where its window first fills.
func Render(series *model.PriceSeries, aligned *model.AlignedSeries, shortWindow, longWindow int) ([]byte, error) {
	if len(series.Bars) < 2 {
		return nil, fmt.Errorf("not enough data points to chart %s", series.Symbol)
	}

	closes := series.Closes()
	xLabels := make([]string, len(series.Bars))
	for i, b := range series.Bars {
		xLabels[i] = b.Time.Format("2006-01-02")
	}

	yMin, yMax := closes[0], closes[0]
	for _, v := range closes {
		if v < yMin {
			yMin = v
		}
		if v > yMax {
			yMax = v
		}
	}
	pad := (yMax - yMin) * 0.05
	if pad < yMax*0.002 {
		pad = yMax * 0.002
	}
	yMin -= pad
	if yMin < 0 {
		yMin = 0
	}
	yMax += pad

	values := [][]float64{
		closes,
		withGaps(aligned.ShortMA),
		withGaps(aligned.LongMA),
	}
	names := []string{
		"Close Price",
		fmt.Sprintf("%d-day MA", shortWindow),
		fmt.Sprintf("%d-day MA", longWindow),
	}

	seriesList := charts.NewSeriesListDataFromValues(values, charts.ChartTypeLine)
	for i := range seriesList {
		seriesList[i].Name = names[i]
	}

	split := 12
	if len(xLabels) <= 60 {
		split = 6
	}

	painter, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc(fmt.Sprintf("%s Stock Price with Moving Averages", series.Symbol)),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: xLabels, BoundaryGap: charts.FalseFlag(), SplitNumber: split}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return painter.Bytes()
}

// withGaps converts NaN entries into the renderer's null value, which the
// line painter skips.
func withGaps(values []float64) []float64 {
	out := make([]float64, len(values))
	null := charts.GetNullValue()
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = null
		} else {
			out[i] = v
		}
	}
	return out
}

// WritePNG saves a rendered chart to {SYMBOL}_plot.png inside dir and
// returns the file path.
func WritePNG(dir, symbol string, img []byte) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("%s_plot.png", symbol))
	if err := os.WriteFile(path, img, 0644); err != nil {
		return "", fmt.Errorf("write chart: %w", err)
	}
	return path, nil
}
