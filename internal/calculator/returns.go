package calculator

import "errors"

// DailyReturns computes simple day-over-day returns, r[t] = p[t]/p[t-1] - 1,
// for each consecutive pair of prices. The result has len(prices)-1 entries;
// fewer than two prices yield an empty slice.
func DailyReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns = append(returns, prices[i]/prices[i-1]-1)
	}
	return returns
}

// MeanReturn computes the arithmetic mean of the given daily returns.
func MeanReturn(returns []float64) (float64, error) {
	if len(returns) == 0 {
		return 0, errors.New("not enough data for mean return")
	}
	sum := 0.0
	for _, r := range returns {
		sum += r
	}
	return sum / float64(len(returns)), nil
}
