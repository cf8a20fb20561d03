package analyzer

import (
	"math"

	"CoachSentinel/internal/model"
)

// Slope thresholds in score-points-per-week. Within +/-2 is noise,
// beyond +/-5 is a structural trend.
const (
	slopeCritical  = -5.0
	slopeDeclining = -2.0
	slopeImproving = 5.0
)

// sparseConfidence is the fixed confidence for histories too short to
// regress, so sparse-history clients are never misclassified as trending.
const sparseConfidence = 30.0

// Analyze classifies a weekly engagement score sequence into a trajectory
// with a confidence value. Fewer than 2 points always yields (stable, 30).
func Analyze(weeklyScores []float64) (model.TrajectoryForecast, error) {
	if err := model.ValidateHistory(weeklyScores); err != nil {
		return model.TrajectoryForecast{}, err
	}

	n := len(weeklyScores)
	if n < 2 {
		return model.TrajectoryForecast{
			Trajectory: model.TrajectoryStable,
			Confidence: sparseConfidence,
		}, nil
	}

	slope, err := CalculateSlope(weeklyScores)
	if err != nil {
		return model.TrajectoryForecast{}, err
	}
	variance, err := CalculateVariance(weeklyScores)
	if err != nil {
		return model.TrajectoryForecast{}, err
	}

	var trajectory model.Trajectory
	switch {
	case slope < slopeCritical:
		trajectory = model.TrajectoryCritical
	case slope < slopeDeclining:
		trajectory = model.TrajectoryDeclining
	case slope > slopeImproving:
		trajectory = model.TrajectoryImproving
	default:
		trajectory = model.TrajectoryStable
	}

	// Confidence rises with sample count (capped at 4 weeks) and falls
	// with score variance.
	consistency := math.Max(0, 100-math.Sqrt(variance))
	confidence := math.Min(100, math.Round(float64(n)/float64(model.MaxHistoryWeeks)*25+consistency*0.5))

	return model.TrajectoryForecast{
		Trajectory: trajectory,
		Confidence: confidence,
	}, nil
}
