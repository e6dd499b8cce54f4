package calculator

import (
	"errors"
	"math"
)

// TradingDaysPerYear is the annualization factor for daily observations.
const TradingDaysPerYear = 252

// AnnualizedReturn compounds a mean daily return over a trading year.
func AnnualizedReturn(meanDailyReturn float64) float64 {
	return math.Pow(1+meanDailyReturn, TradingDaysPerYear) - 1
}

// AnnualizedVolatility computes the sample standard deviation of the daily
// returns scaled by sqrt(252). Sample deviation needs at least two
// observations, so fewer than two returns is an error.
func AnnualizedVolatility(returns []float64) (float64, error) {
	std, err := sampleStdDev(returns)
	if err != nil {
		return 0, err
	}
	return std * math.Sqrt(TradingDaysPerYear), nil
}

// SharpeRatio computes the excess annualized return per unit of annualized
// volatility. Zero volatility leaves the ratio undefined.
func SharpeRatio(annualizedReturn, annualizedVolatility, riskFreeRate float64) (float64, error) {
	if annualizedVolatility == 0 {
		return 0, errors.New("sharpe ratio undefined for zero volatility")
	}
	return (annualizedReturn - riskFreeRate) / annualizedVolatility, nil
}

func sampleStdDev(xs []float64) (float64, error) {
	if len(xs) < 2 {
		return 0, errors.New("need at least 2 observations for sample deviation")
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(xs)-1)), nil
}
