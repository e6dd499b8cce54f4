package model

import "time"

// TrendLabel classifies the relationship between the short and long
// moving averages. The zero value means the trend is undefined because
// one of the averages is absent.
type TrendLabel string

const (
	TrendBullish TrendLabel = "Bullish"
	TrendBearish TrendLabel = "Bearish"
)

// DerivedMetrics summarizes one analysis run for a single symbol.
// Pointer fields are nil when the series is too short to define the
// metric; omitempty keeps absent metrics out of serialized reports
// instead of showing them as zeros.
type DerivedMetrics struct {
	Symbol     string    `json:"symbol"`
	Source     string    `json:"source,omitempty"`
	AsOf       time.Time `json:"as_of"`
	DataPoints int       `json:"data_points"`

	CurrentPrice float64 `json:"current_price"`

	ShortWindow int        `json:"short_window"`
	LongWindow  int        `json:"long_window"`
	ShortMA     *float64   `json:"short_ma,omitempty"`
	LongMA      *float64   `json:"long_ma,omitempty"`
	Trend       TrendLabel `json:"trend,omitempty"`

	AvgDailyReturn       *float64 `json:"avg_daily_return,omitempty"`
	AnnualizedReturn     *float64 `json:"annualized_return,omitempty"`
	AnnualizedVolatility *float64 `json:"annualized_volatility,omitempty"`
	SharpeRatio          *float64 `json:"sharpe_ratio,omitempty"`
	RiskFreeRate         float64  `json:"risk_free_rate"`

	Recommendation string    `json:"recommendation,omitempty"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// AlignedSeries holds per-bar indicator columns aligned index-for-index
// with the source bars. Undefined leading values are NaN.
type AlignedSeries struct {
	DailyReturns []float64 // NaN at index 0
	ShortMA      []float64 // NaN before ShortWindow-1
	LongMA       []float64 // NaN before LongWindow-1
}
