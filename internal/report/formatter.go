package report

import (
	"fmt"
	"strings"

	"InvestLens/internal/model"
)

// Outcome pairs a ticker with either its metrics or the failure that kept
// it out of the run.
type Outcome struct {
	Symbol  string
	Metrics *model.DerivedMetrics
	Err     error
}

// Format renders the text report for one analyzed symbol. Metrics the
// series could not define print an explanation instead of a zero.
func Format(m *model.DerivedMetrics) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("==== Investment Analysis for %s ====\n", m.Symbol))
	b.WriteString(fmt.Sprintf("Current Price: $%.2f\n", m.CurrentPrice))
	b.WriteString(fmt.Sprintf("Data Points: %d (as of %s)\n", m.DataPoints, m.AsOf.Format("2006-01-02")))

	b.WriteString(maLine(m.ShortWindow, m.ShortMA, m.DataPoints))
	b.WriteString(maLine(m.LongWindow, m.LongMA, m.DataPoints))

	if m.Trend != "" {
		b.WriteString(fmt.Sprintf("Current Trend: %s\n", m.Trend))
	} else {
		b.WriteString("Current Trend: undefined (both moving averages required)\n")
	}

	b.WriteString(percentLine("Annualized Return", m.AnnualizedReturn, 2))
	b.WriteString(percentLine("Annualized Volatility", m.AnnualizedVolatility, 3))
	b.WriteString(sharpeLine(m))

	if m.Recommendation != "" {
		b.WriteString(fmt.Sprintf("Simple Recommendation: %s\n", m.Recommendation))
	} else {
		b.WriteString("Simple Recommendation: unavailable (trend or Sharpe ratio undefined)\n")
	}

	b.WriteString("\nNote: This is a basic analysis. Real investment decisions should consider\n")
	b.WriteString("additional factors and ideally be made with professional financial advice.\n")

	return b.String()
}

func maLine(window int, value *float64, points int) string {
	if value == nil {
		return fmt.Sprintf("%d-day Moving Average: insufficient history (need %d points, have %d)\n",
			window, window, points)
	}
	return fmt.Sprintf("%d-day Moving Average: $%.2f\n", window, *value)
}

func percentLine(label string, value *float64, minPoints int) string {
	if value == nil {
		return fmt.Sprintf("%s: insufficient history (need at least %d points)\n", label, minPoints)
	}
	return fmt.Sprintf("%s: %.2f%%\n", label, *value*100)
}

func sharpeLine(m *model.DerivedMetrics) string {
	if m.SharpeRatio != nil {
		return fmt.Sprintf("Sharpe Ratio: %.2f (risk-free rate %.2f%%)\n", *m.SharpeRatio, m.RiskFreeRate*100)
	}
	if m.AnnualizedVolatility != nil && *m.AnnualizedVolatility == 0 {
		return "Sharpe Ratio: undefined (zero volatility)\n"
	}
	return "Sharpe Ratio: insufficient history (need at least 3 points)\n"
}

// FormatBatchSummary renders the one-line-per-ticker wrap-up, failures
// included.
func FormatBatchSummary(outcomes []Outcome) string {
	var b strings.Builder
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}

	b.WriteString(fmt.Sprintf("==== Batch Summary: %d analyzed, %d failed ====\n",
		len(outcomes)-failed, failed))
	for _, o := range outcomes {
		if o.Err != nil {
			b.WriteString(fmt.Sprintf("  %-8s FAILED: %v\n", o.Symbol, o.Err))
			continue
		}
		line := fmt.Sprintf("  %-8s $%.2f", o.Symbol, o.Metrics.CurrentPrice)
		if o.Metrics.Trend != "" {
			line += fmt.Sprintf("  %s", o.Metrics.Trend)
		} else {
			line += "  no trend"
		}
		if o.Metrics.SharpeRatio != nil {
			line += fmt.Sprintf("  Sharpe %.2f", *o.Metrics.SharpeRatio)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
