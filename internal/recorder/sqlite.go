package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"CoachSentinel/internal/model"
)

// SQLiteRecorder persists assessment history to a SQLite database.
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

	// WAL mode for better concurrent read performance (dashboards read
	// while the bot writes).
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
		`CREATE TABLE IF NOT EXISTS batch_runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL,
			timestamp   INTEGER NOT NULL,
			coach_id    TEXT,
			roster_size INTEGER,
			assessed    INTEGER,
			skipped     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON batch_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS assessments (
			id                   INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id               TEXT NOT NULL,
			timestamp            INTEGER NOT NULL,
			position             INTEGER,
			client_id            TEXT NOT NULL,
			client_name          TEXT,
			risk_score           REAL,
			risk_level           TEXT,
			risk_factors         TEXT,
			suggested_action     TEXT,
			trajectory           TEXT,
			confidence           REAL,
			days_until_churn     INTEGER,
			predicted_churn_date INTEGER,
			urgency              TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_assessments_run ON assessments(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_assessments_client ON assessments(client_id, timestamp)`,

		`CREATE TABLE IF NOT EXISTS alerts (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id           TEXT NOT NULL,
			timestamp        INTEGER NOT NULL,
			client_id        TEXT NOT NULL,
			client_name      TEXT,
			risk_score       REAL,
			urgency          TEXT,
			days_until_churn INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_ts ON alerts(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun writes the run summary and every ranked assessment.
func (r *SQLiteRecorder) RecordRun(run *BatchRun, results []model.RankedResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO batch_runs
		(run_id, timestamp, coach_id, roster_size, assessed, skipped)
		VALUES (?,?,?,?,?,?)`,
		run.RunID, now, run.CoachID, run.RosterSize, run.Assessed, run.Skipped,
	); err != nil {
		return fmt.Errorf("insert batch run: %w", err)
	}

	for rank, res := range results {
		var churnDate int64
		if res.Churn.HasDate() {
			churnDate = res.Churn.PredictedChurnDate.Unix()
		}
		if _, err := tx.Exec(`INSERT INTO assessments
			(run_id, timestamp, position, client_id, client_name,
			 risk_score, risk_level, risk_factors, suggested_action,
			 trajectory, confidence, days_until_churn, predicted_churn_date, urgency)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			run.RunID, now, rank, res.ClientID, res.ClientName,
			res.Risk.RiskScore, string(res.Risk.RiskLevel),
			strings.Join(res.Risk.RiskFactors, "; "), res.Risk.SuggestedAction,
			string(res.Trajectory.Trajectory), res.Trajectory.Confidence,
			res.Churn.DaysUntilChurn, churnDate, string(res.Churn.Urgency),
		); err != nil {
			return fmt.Errorf("insert assessment: %w", err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) RecordAlert(evt *AlertEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO alerts
		(run_id, timestamp, client_id, client_name, risk_score, urgency, days_until_churn)
		VALUES (?,?,?,?,?,?,?)`,
		evt.RunID, time.Now().Unix(), evt.ClientID, evt.ClientName,
		evt.RiskScore, evt.Urgency, evt.DaysUntilChurn,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
