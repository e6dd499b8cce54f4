package recorder

import (
	"time"

	"InvestLens/internal/model"
)

// AnalysisSnapshot holds all data for one persisted analysis run.
type AnalysisSnapshot struct {
	Metrics *model.DerivedMetrics
}

// AnalysisRecord is one analysis row read back from storage.
type AnalysisRecord struct {
	ID                   int64
	Timestamp            time.Time
	Symbol               string
	Source               string
	DataPoints           int
	CurrentPrice         float64
	ShortMA              *float64
	LongMA               *float64
	AnnualizedReturn     *float64
	AnnualizedVolatility *float64
	SharpeRatio          *float64
	Trend                model.TrendLabel
	Recommendation       string
}

// Recorder persists analysis results for later inspection.
type Recorder interface {
	RecordAnalysis(snap *AnalysisSnapshot) error
	RecentAnalyses(symbol string, limit int) ([]AnalysisRecord, error)
	Close() error
}
