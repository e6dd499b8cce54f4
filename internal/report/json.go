package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"InvestLens/internal/model"
)

// WriteJSON writes the metrics record to {SYMBOL}_report.json inside dir
// and returns the file path. Absent metrics are omitted from the output.
func WriteJSON(dir string, m *model.DerivedMetrics) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_report.json", m.Symbol))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
