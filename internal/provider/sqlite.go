package provider

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"

	"CoachSentinel/internal/model"
)

// Trailing windows from the snapshot field contracts.
const (
	sessionWindowDays    = 14
	habitWindowDays      = 7
	progressWindowDays   = 14
	engagementWeeksLimit = model.MaxHistoryWeeks
)

// SQLiteProvider assembles signal snapshots from the coaching platform's
// sqlite database. All timestamps are stored as unix seconds.
type SQLiteProvider struct {
	db *sql.DB
}

// NewSQLiteProvider opens the platform database and ensures the schema
// exists so local runs work against an empty file.
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open platform db: %w", err)
	}
	p := &SQLiteProvider{db: db}
	if err := p.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate platform db: %w", err)
	}
	log.Printf("[INFO] sqlite snapshot provider opened: %s", dbPath)
	return p, nil
}

func (p *SQLiteProvider) Name() string { return "sqlite" }

// Close releases the database handle.
func (p *SQLiteProvider) Close() error { return p.db.Close() }

func (p *SQLiteProvider) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS clients (
			id       TEXT PRIMARY KEY,
			coach_id TEXT NOT NULL,
			name     TEXT NOT NULL,
			active   INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE INDEX IF NOT EXISTS idx_clients_coach ON clients(coach_id)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			client_id    TEXT NOT NULL,
			scheduled_at INTEGER NOT NULL,
			status       TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_client ON sessions(client_id, scheduled_at)`,

		`CREATE TABLE IF NOT EXISTS habit_logs (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			client_id       TEXT NOT NULL,
			log_date        INTEGER NOT NULL,
			completed_count INTEGER NOT NULL,
			target_count    INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_habits_client ON habit_logs(client_id, log_date)`,

		`CREATE TABLE IF NOT EXISTS progress_entries (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			client_id   TEXT NOT NULL,
			recorded_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_progress_client ON progress_entries(client_id, recorded_at)`,

		`CREATE TABLE IF NOT EXISTS messages (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			sender_id    TEXT NOT NULL,
			recipient_id TEXT NOT NULL,
			sent_at      INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_sender ON messages(sender_id, sent_at)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_recipient ON messages(recipient_id, sent_at)`,

		`CREATE TABLE IF NOT EXISTS engagement_history (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			client_id  TEXT NOT NULL,
			week_start INTEGER NOT NULL,
			score      REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_engagement_client ON engagement_history(client_id, week_start)`,
	}
	for _, s := range stmts {
		if _, err := p.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// Roster returns the ids of the coach's active clients.
func (p *SQLiteProvider) Roster(ctx context.Context, coachID string) ([]string, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id FROM clients WHERE coach_id = ? AND active = 1 ORDER BY name`, coachID)
	if err != nil {
		return nil, fmt.Errorf("query roster: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan roster row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Snapshot assembles and validates one client's signal snapshot.
func (p *SQLiteProvider) Snapshot(ctx context.Context, clientID string, now time.Time) (*model.SignalSnapshot, error) {
	snap := &model.SignalSnapshot{ClientID: clientID}

	var name string
	err := p.db.QueryRowContext(ctx,
		`SELECT name FROM clients WHERE id = ?`, clientID).Scan(&name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("client %s not found", clientID)
	}
	if err != nil {
		return nil, fmt.Errorf("query client: %w", err)
	}
	snap.ClientName = name

	var lastSession sql.NullInt64
	if err := p.db.QueryRowContext(ctx,
		`SELECT MAX(scheduled_at) FROM sessions WHERE client_id = ?`,
		clientID).Scan(&lastSession); err != nil {
		return nil, fmt.Errorf("query last session: %w", err)
	}
	if lastSession.Valid {
		snap.LastSessionAt = time.Unix(lastSession.Int64, 0)
	}

	sessionCutoff := now.AddDate(0, 0, -sessionWindowDays).Unix()
	if err := p.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions
		 WHERE client_id = ? AND status IN ('cancelled', 'no_show') AND scheduled_at >= ?`,
		clientID, sessionCutoff).Scan(&snap.RecentCancelledOrNoShowCount); err != nil {
		return nil, fmt.Errorf("query cancelled sessions: %w", err)
	}

	habitCutoff := now.AddDate(0, 0, -habitWindowDays).Unix()
	var logCount, completed, target int
	if err := p.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(completed_count), 0), COALESCE(SUM(target_count), 0)
		 FROM habit_logs WHERE client_id = ? AND log_date >= ?`,
		clientID, habitCutoff).Scan(&logCount, &completed, &target); err != nil {
		return nil, fmt.Errorf("query habit logs: %w", err)
	}
	if logCount > 0 && target > 0 {
		r := float64(completed) / float64(target)
		if r > 1 {
			r = 1
		}
		snap.HabitCompletionRatio7d = &r
	}

	progressCutoff := now.AddDate(0, 0, -progressWindowDays).Unix()
	if err := p.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM progress_entries WHERE client_id = ? AND recorded_at >= ?`,
		clientID, progressCutoff).Scan(&snap.RecentProgressEntryCount14d); err != nil {
		return nil, fmt.Errorf("query progress entries: %w", err)
	}

	var lastMessage sql.NullInt64
	if err := p.db.QueryRowContext(ctx,
		`SELECT MAX(sent_at) FROM messages WHERE sender_id = ? OR recipient_id = ?`,
		clientID, clientID).Scan(&lastMessage); err != nil {
		return nil, fmt.Errorf("query last message: %w", err)
	}
	if lastMessage.Valid {
		snap.LastMessageAt = time.Unix(lastMessage.Int64, 0)
	}

	scores, err := p.engagementScores(ctx, clientID)
	if err != nil {
		return nil, err
	}
	snap.WeeklyEngagementScores = scores

	// Reject malformed data at the boundary, before it reaches the scorer.
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return snap, nil
}

// engagementScores returns up to 4 weekly scores in chronological order.
func (p *SQLiteProvider) engagementScores(ctx context.Context, clientID string) ([]float64, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT score FROM engagement_history
		 WHERE client_id = ? ORDER BY week_start DESC LIMIT ?`,
		clientID, engagementWeeksLimit)
	if err != nil {
		return nil, fmt.Errorf("query engagement history: %w", err)
	}
	defer rows.Close()

	var recent []float64 // newest first
	for rows.Next() {
		var score float64
		if err := rows.Scan(&score); err != nil {
			return nil, fmt.Errorf("scan engagement row: %w", err)
		}
		recent = append(recent, score)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	scores := make([]float64, len(recent))
	for i, s := range recent {
		scores[len(recent)-1-i] = s
	}
	return scores, nil
}
