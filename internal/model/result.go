package model

// RankedResult is the final per-client tuple produced by a batch run.
// Immutable once computed; ordering is the batch runner's job.
type RankedResult struct {
	ClientID   string
	ClientName string
	Risk       RiskAssessment
	Trajectory TrajectoryForecast
	Churn      ChurnForecast
}
