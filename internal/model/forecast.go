package model

import "time"

// Trajectory classifies a short engagement time series.
type Trajectory string

const (
	TrajectoryImproving Trajectory = "improving"
	TrajectoryStable    Trajectory = "stable"
	TrajectoryDeclining Trajectory = "declining"
	TrajectoryCritical  Trajectory = "critical"
)

// TrajectoryForecast is the analyzer's output: a classification plus a
// 0-100 confidence driven by sample count and variance.
type TrajectoryForecast struct {
	Trajectory Trajectory
	Confidence float64
}

// Urgency is the action-priority bucket for a churn forecast.
type Urgency string

const (
	UrgencyImmediate Urgency = "immediate"
	UrgencySoon      Urgency = "soon"
	UrgencyMonitor   Urgency = "monitor"
)

// Rank orders urgencies for sorting: immediate first.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyImmediate:
		return 0
	case UrgencySoon:
		return 1
	default:
		return 2
	}
}

// ChurnForecast projects when a client may churn. A zero PredictedChurnDate
// together with DaysUntilChurn == -1 means no churn is forecast.
type ChurnForecast struct {
	PredictedChurnDate time.Time
	DaysUntilChurn     int
	Urgency            Urgency
}

// HasDate reports whether a churn date was forecast.
func (c ChurnForecast) HasDate() bool { return !c.PredictedChurnDate.IsZero() }
