package collector

import (
	"fmt"
	"sort"
	"time"

	"InvestLens/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Bars  []model.Bar
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ string, window Window) ([]model.Bar, error) {
	if m.Bars != nil {
		return m.Bars, nil
	}
	return generateMockBars(m.Price, window.Days()), nil
}

func generateMockBars(basePrice float64, count int) []model.Bar {
	if basePrice <= 0 {
		basePrice = 100
	}
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector fetches and assembles a validated price series per symbol.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Collect fetches one symbol's window and assembles a series that passes
// the analyzer's input contract: sorted ascending, duplicate dates
// collapsed keeping the later row, closes positive.
func (c *Collector) Collect(symbol string, window Window) (*model.PriceSeries, error) {
	bars, err := c.Fetcher.FetchDailyBars(symbol, window)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNoData)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	bars = dedupeByDate(bars)

	series := &model.PriceSeries{
		Symbol:    symbol,
		Bars:      bars,
		Source:    c.Fetcher.Name(),
		FetchedAt: time.Now(),
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("series for %s: %w", symbol, err)
	}
	return series, nil
}

// dedupeByDate collapses bars sharing a calendar date, keeping the later
// row. Providers occasionally re-emit a date with corrected values.
func dedupeByDate(bars []model.Bar) []model.Bar {
	out := make([]model.Bar, 0, len(bars))
	for _, b := range bars {
		if n := len(out); n > 0 && sameDate(out[n-1].Time, b.Time) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
