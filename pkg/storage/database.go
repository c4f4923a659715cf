package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/your-org/enhanced-html-reporter/pkg/logger"
	"github.com/your-org/enhanced-html-reporter/pkg/models"
)

// Database keeps run history across executions, supplementing the
// bounded trends.json log with queryable per-test records.
type Database struct {
	db   *sql.DB
	path string
}

// RunRecord is one historical run row.
type RunRecord struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Duration    int64     `json:"duration"`
	TotalTests  int       `json:"totalTests"`
	Passed      int       `json:"passed"`
	Failed      int       `json:"failed"`
	Skipped     int       `json:"skipped"`
	Flaky       int       `json:"flaky"`
	PassRate    float64   `json:"passRate"`
	AvgDuration float64   `json:"avgDuration"`
}

// NewDatabase creates or opens the history database under outputDir.
func NewDatabase(outputDir string) (*Database, error) {
	historyDir := filepath.Join(outputDir, ".report-history")
	if err := os.MkdirAll(historyDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	dbPath := filepath.Join(historyDir, "run-history.db")
	logger.Debugf("Opening history database at: %s", dbPath)

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	database := &Database{db: db, path: dbPath}

	if err := database.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return database, nil
}

// migrate creates or updates the database schema
func (d *Database) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			timestamp DATETIME NOT NULL,
			duration INTEGER NOT NULL,
			total_tests INTEGER,
			passed INTEGER,
			failed INTEGER,
			skipped INTEGER,
			flaky INTEGER,
			pass_rate REAL,
			avg_duration REAL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_run_timestamp
		 ON runs(timestamp DESC)`,

		`CREATE TABLE IF NOT EXISTS test_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			test_name TEXT NOT NULL,
			file TEXT,
			browser TEXT,
			status TEXT NOT NULL,
			duration INTEGER,
			retries INTEGER,
			error_message TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (run_id) REFERENCES runs(id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_test_name
		 ON test_history(test_name)`,

		`CREATE INDEX IF NOT EXISTS idx_test_run
		 ON test_history(run_id)`,
	}

	for i, migration := range migrations {
		if _, err := d.db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}

	return nil
}

// SaveRun stores a finished run and its per-test outcomes.
func (d *Database) SaveRun(runID string, m *models.RunMetrics, details []*models.TestResultDetail) error {
	_, err := d.db.Exec(`
		INSERT INTO runs (
			id, timestamp, duration, total_tests, passed, failed,
			skipped, flaky, pass_rate, avg_duration
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		m.EndTime.Format(time.RFC3339),
		m.Duration,
		m.TotalTests,
		m.Passed,
		m.Failed,
		m.Skipped,
		m.Flaky,
		m.PassRate,
		m.AvgDuration,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	for _, detail := range details {
		_, err := d.db.Exec(`
			INSERT INTO test_history (
				run_id, test_name, file, browser, status,
				duration, retries, error_message
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			runID,
			detail.Name,
			detail.File,
			detail.Browser,
			string(detail.Status),
			detail.Duration,
			detail.Retries,
			detail.Error,
		)
		if err != nil {
			logger.Warnf("Failed to save history for test %s: %v", detail.Name, err)
		}
	}

	logger.Debugf("Saved run record: %s", runID)
	return nil
}

// GetRecentRuns retrieves the last N runs, newest first.
func (d *Database) GetRecentRuns(limit int) ([]RunRecord, error) {
	rows, err := d.db.Query(`
		SELECT
			id, timestamp, duration, total_tests, passed, failed,
			skipped, flaky, pass_rate, avg_duration
		FROM runs
		ORDER BY timestamp DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var run RunRecord
		var timestamp string

		err := rows.Scan(
			&run.ID,
			&timestamp,
			&run.Duration,
			&run.TotalTests,
			&run.Passed,
			&run.Failed,
			&run.Skipped,
			&run.Flaky,
			&run.PassRate,
			&run.AvgDuration,
		)
		if err != nil {
			continue
		}

		run.Timestamp, _ = time.Parse(time.RFC3339, timestamp)
		runs = append(runs, run)
	}

	return runs, nil
}

// FailureRate returns the fraction of recorded runs in which the named
// test failed over the last N days. Fewer than 3 data points reads as 0.
func (d *Database) FailureRate(testName string, days int) (float64, error) {
	var totalRuns, failedRuns int
	err := d.db.QueryRow(`
		SELECT
			COUNT(*) as total_runs,
			SUM(CASE WHEN status IN ('failed', 'timedOut', 'interrupted') THEN 1 ELSE 0 END) as failed_runs
		FROM test_history th
		JOIN runs r ON th.run_id = r.id
		WHERE th.test_name = ?
		AND r.timestamp >= datetime('now', '-' || ? || ' days')`,
		testName, days).Scan(&totalRuns, &failedRuns)
	if err != nil {
		return 0.0, err
	}

	if totalRuns < 3 {
		return 0.0, nil
	}

	return float64(failedRuns) / float64(totalRuns), nil
}

// CleanupOldData removes rows older than the retention window.
func (d *Database) CleanupOldData(retentionDays int) error {
	tables := []string{"test_history", "runs"}

	for _, table := range tables {
		query := fmt.Sprintf(`
			DELETE FROM %s
			WHERE created_at < datetime('now', '-' || ? || ' days')
		`, table)

		result, err := d.db.Exec(query, retentionDays)
		if err != nil {
			logger.Warnf("Failed to cleanup %s: %v", table, err)
			continue
		}

		rows, _ := result.RowsAffected()
		if rows > 0 {
			logger.Debugf("Cleaned up %d old records from %s", rows, table)
		}
	}

	return nil
}

// Close closes the database connection
func (d *Database) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
