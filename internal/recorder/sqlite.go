package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists analysis runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id                    INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp             INTEGER NOT NULL,
			symbol                TEXT NOT NULL,
			source                TEXT,
			data_points           INTEGER,
			current_price         REAL,
			short_ma              REAL,
			long_ma               REAL,
			annualized_return     REAL,
			annualized_volatility REAL,
			sharpe_ratio          REAL,
			trend                 TEXT,
			recommendation        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_symbol_ts ON analysis_runs(symbol, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordAnalysis inserts one row for an analyzed ticker. Metrics that could
// not be computed are stored as NULL.
func (r *SQLiteRecorder) RecordAnalysis(snap *AnalysisSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := snap.Metrics
	_, err := r.db.Exec(`INSERT INTO analysis_runs
		(timestamp, symbol, source, data_points, current_price,
		 short_ma, long_ma, annualized_return, annualized_volatility, sharpe_ratio,
		 trend, recommendation)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), m.Symbol, m.Source, m.DataPoints, m.CurrentPrice,
		m.ShortMA, m.LongMA, m.AnnualizedReturn, m.AnnualizedVolatility, m.SharpeRatio,
		string(m.Trend), m.Recommendation,
	)
	return err
}

// RecentAnalyses returns the newest rows for a symbol, most recent first.
func (r *SQLiteRecorder) RecentAnalyses(symbol string, limit int) ([]AnalysisRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`
		SELECT id, timestamp, symbol, source, data_points, current_price,
		       short_ma, long_ma, annualized_return, annualized_volatility, sharpe_ratio,
		       trend, recommendation
		FROM analysis_runs
		WHERE symbol = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query analysis_runs: %w", err)
	}
	defer rows.Close()

	var records []AnalysisRecord
	for rows.Next() {
		var rec AnalysisRecord
		var tsUnix int64
		if err := rows.Scan(&rec.ID, &tsUnix, &rec.Symbol, &rec.Source,
			&rec.DataPoints, &rec.CurrentPrice,
			&rec.ShortMA, &rec.LongMA,
			&rec.AnnualizedReturn, &rec.AnnualizedVolatility, &rec.SharpeRatio,
			&rec.Trend, &rec.Recommendation); err != nil {
			return nil, fmt.Errorf("scan analysis_runs: %w", err)
		}
		rec.Timestamp = time.Unix(tsUnix, 0).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
