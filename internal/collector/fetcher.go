package collector

import (
	"errors"
	"time"

	"InvestLens/internal/model"
)

// ErrNoData is returned when a provider has no rows for a symbol in the
// requested window. Batch callers treat it as a per-symbol failure and
// move on to the next instrument.
var ErrNoData = errors.New("no data available")

// DefaultLookbackDays is the fallback window when neither a lookback nor
// an explicit date range is configured.
const DefaultLookbackDays = 365

// Window selects the history to fetch: an explicit Start/End date range
// when both are set, otherwise a lookback of LookbackDays ending today.
type Window struct {
	LookbackDays int
	Start        time.Time
	End          time.Time
}

// IsRange reports whether the window is an explicit date range.
func (w Window) IsRange() bool {
	return !w.Start.IsZero() && !w.End.IsZero()
}

// Days returns the window span in calendar days.
func (w Window) Days() int {
	if w.IsRange() {
		d := int(w.End.Sub(w.Start).Hours()/24) + 1
		if d < 1 {
			d = 1
		}
		return d
	}
	if w.LookbackDays > 0 {
		return w.LookbackDays
	}
	return DefaultLookbackDays
}

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchDailyBars(symbol string, window Window) ([]model.Bar, error)
	Name() string
}

// trimToWindow drops bars outside the window. Providers over-fetch
// (coarse Yahoo ranges, twenty-year Alpha Vantage output), so lookback
// windows cut at a calendar date and explicit ranges keep Start through
// End, End inclusive by calendar date since bar timestamps carry the
// market-open time of day.
func trimToWindow(bars []model.Bar, window Window) []model.Bar {
	if window.IsRange() {
		end := window.End.AddDate(0, 0, 1)
		kept := bars[:0]
		for _, b := range bars {
			if b.Time.Before(window.Start) || !b.Time.Before(end) {
				continue
			}
			kept = append(kept, b)
		}
		return kept
	}
	cutoff := time.Now().AddDate(0, 0, -window.Days())
	for i, b := range bars {
		if !b.Time.Before(cutoff) {
			return bars[i:]
		}
	}
	return nil
}
