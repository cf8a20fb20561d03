package recorder

import "CoachSentinel/internal/model"

// BatchRun summarizes one roster sweep.
type BatchRun struct {
	RunID      string
	CoachID    string
	RosterSize int
	Assessed   int
	Skipped    int
}

// AlertEvent records an immediate-urgency client surfaced by a daily sweep.
type AlertEvent struct {
	RunID          string
	ClientID       string
	ClientName     string
	RiskScore      float64
	Urgency        string
	DaysUntilChurn int
}

// Recorder persists assessment history for observability. The scoring
// engine itself never writes; recording happens at the scheduler boundary.
type Recorder interface {
	RecordRun(run *BatchRun, results []model.RankedResult) error
	RecordAlert(evt *AlertEvent) error
	Close() error
}
