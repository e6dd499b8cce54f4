package report

import (
	"fmt"
	"strings"

	"InvestLens/internal/recorder"
)

// FormatHistory renders recorded analysis rows for one symbol, newest
// first.
func FormatHistory(symbol string, records []recorder.AnalysisRecord) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("==== Recorded Analyses for %s ====\n", symbol))
	if len(records) == 0 {
		b.WriteString("No recorded analyses.\n")
		return b.String()
	}

	for _, rec := range records {
		line := fmt.Sprintf("  %s  $%.2f", rec.Timestamp.Format("2006-01-02 15:04"), rec.CurrentPrice)
		if rec.Trend != "" {
			line += fmt.Sprintf("  %s", rec.Trend)
		} else {
			line += "  no trend"
		}
		if rec.SharpeRatio != nil {
			line += fmt.Sprintf("  Sharpe %.2f", *rec.SharpeRatio)
		}
		line += fmt.Sprintf("  (%s, %d points)", rec.Source, rec.DataPoints)
		b.WriteString(line + "\n")
	}
	return b.String()
}
