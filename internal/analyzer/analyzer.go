package analyzer

import (
	"fmt"
	"math"
	"time"

	"InvestLens/internal/calculator"
	"InvestLens/internal/model"
)

// Defaults for the analysis options.
const (
	DefaultShortWindow  = 50
	DefaultLongWindow   = 200
	DefaultRiskFreeRate = 0.02
)

// Options control the moving-average windows and the risk-free rate used
// for the Sharpe ratio.
type Options struct {
	ShortWindow  int
	LongWindow   int
	RiskFreeRate float64
}

// DefaultOptions returns the standard 50/200-day configuration.
func DefaultOptions() Options {
	return Options{
		ShortWindow:  DefaultShortWindow,
		LongWindow:   DefaultLongWindow,
		RiskFreeRate: DefaultRiskFreeRate,
	}
}

// Analyze derives the full metric set for one price series. The series is
// validated first; the only error paths are input-contract violations. A
// valid but short series yields whichever subset of metrics its length
// defines, with the rest left nil.
func Analyze(series *model.PriceSeries, opts Options) (*model.DerivedMetrics, error) {
	if opts.ShortWindow <= 0 || opts.LongWindow <= 0 {
		return nil, fmt.Errorf("%w: windows must be positive (short=%d, long=%d)",
			model.ErrInvalidInput, opts.ShortWindow, opts.LongWindow)
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}

	closes := series.Closes()
	last := series.Last()

	m := &model.DerivedMetrics{
		Symbol:       series.Symbol,
		Source:       series.Source,
		AsOf:         last.Time,
		DataPoints:   len(series.Bars),
		CurrentPrice: last.Close,
		ShortWindow:  opts.ShortWindow,
		LongWindow:   opts.LongWindow,
		RiskFreeRate: opts.RiskFreeRate,
		GeneratedAt:  time.Now().UTC(),
	}

	if ma, err := calculator.CalculateSMA(closes, opts.ShortWindow); err == nil {
		m.ShortMA = &ma
	}
	if ma, err := calculator.CalculateSMA(closes, opts.LongWindow); err == nil {
		m.LongMA = &ma
	}
	m.Trend = trendOf(m.ShortMA, m.LongMA)

	returns := calculator.DailyReturns(closes)
	if mean, err := calculator.MeanReturn(returns); err == nil {
		m.AvgDailyReturn = &mean
		ann := calculator.AnnualizedReturn(mean)
		m.AnnualizedReturn = &ann
	}
	if vol, err := calculator.AnnualizedVolatility(returns); err == nil {
		m.AnnualizedVolatility = &vol
		if m.AnnualizedReturn != nil {
			if sharpe, err := calculator.SharpeRatio(*m.AnnualizedReturn, vol, opts.RiskFreeRate); err == nil {
				m.SharpeRatio = &sharpe
			}
		}
	}

	m.Recommendation = Recommend(m.Trend, m.SharpeRatio)
	return m, nil
}

// Align computes per-bar indicator columns for the chart and spreadsheet
// writers, index-aligned with the series bars. Undefined leading entries
// are NaN.
func Align(series *model.PriceSeries, opts Options) *model.AlignedSeries {
	closes := series.Closes()
	aligned := &model.AlignedSeries{
		DailyReturns: make([]float64, len(closes)),
		ShortMA:      calculator.MovingAverageSeries(closes, opts.ShortWindow),
		LongMA:       calculator.MovingAverageSeries(closes, opts.LongWindow),
	}
	if len(closes) > 0 {
		aligned.DailyReturns[0] = math.NaN()
		copy(aligned.DailyReturns[1:], calculator.DailyReturns(closes))
	}
	return aligned
}
