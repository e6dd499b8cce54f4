package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInput marks a series that violates the analyzer's input
// contract. Wrapped errors carry the offending index and date.
var ErrInvalidInput = errors.New("invalid input")

// Bar represents a single daily candlestick.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds the daily history for one symbol, ordered by date.
type PriceSeries struct {
	Symbol    string
	Bars      []Bar
	Source    string
	FetchedAt time.Time
}

// Closes extracts the close column in bar order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Dates extracts the bar timestamps in order.
func (s *PriceSeries) Dates() []time.Time {
	dates := make([]time.Time, len(s.Bars))
	for i, b := range s.Bars {
		dates[i] = b.Time
	}
	return dates
}

// Last returns the most recent bar. Call only on a validated series.
func (s *PriceSeries) Last() Bar {
	return s.Bars[len(s.Bars)-1]
}

// Validate checks the input contract before any metric is computed:
// non-empty symbol, at least one bar, strictly ascending dates (no
// duplicates) and strictly positive closes.
func (s *PriceSeries) Validate() error {
	if s.Symbol == "" {
		return fmt.Errorf("%w: empty symbol", ErrInvalidInput)
	}
	if len(s.Bars) == 0 {
		return fmt.Errorf("%w: no bars for %s", ErrInvalidInput, s.Symbol)
	}
	for i, b := range s.Bars {
		if b.Close <= 0 {
			return fmt.Errorf("%w: non-positive close %.4f at index %d (%s)",
				ErrInvalidInput, b.Close, i, b.Time.Format("2006-01-02"))
		}
		if i == 0 {
			continue
		}
		if !b.Time.After(s.Bars[i-1].Time) {
			return fmt.Errorf("%w: bars out of order at index %d (%s not after %s)",
				ErrInvalidInput, i, b.Time.Format("2006-01-02"),
				s.Bars[i-1].Time.Format("2006-01-02"))
		}
	}
	return nil
}
