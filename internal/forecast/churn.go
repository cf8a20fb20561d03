package forecast

import (
	"math"
	"time"

	"CoachSentinel/internal/model"
)

// Base churn horizons in days by trajectory. Improving clients are never
// forecast to churn, so they carry no horizon.
var baseHorizonDays = map[model.Trajectory]int{
	model.TrajectoryCritical:  7,
	model.TrajectoryDeclining: 21,
	model.TrajectoryStable:    45,
}

// Risk-intensity multiplier shape: scores above the medium threshold
// compress the horizon, floored at half the base.
const (
	multiplierFloor   = 0.5
	multiplierDivisor = 130.0
)

// Urgency cutoffs on days-until-churn.
const (
	immediateWithinDays = 7
	soonWithinDays      = 21
)

// noForecast marks a ChurnForecast with no predicted date.
const noForecast = -1

// Forecast combines a risk score and a trajectory into a projected churn
// date and urgency. Below the medium risk threshold no churn is forecast;
// an improving client is never forecast to churn even when scored above
// it — the asymmetry is intentional.
func Forecast(riskScore float64, trajectory model.Trajectory, now time.Time) model.ChurnForecast {
	if riskScore < model.MediumThreshold {
		return model.ChurnForecast{
			DaysUntilChurn: noForecast,
			Urgency:        urgencyForLevel(model.LevelForScore(riskScore)),
		}
	}
	if trajectory == model.TrajectoryImproving {
		return model.ChurnForecast{
			DaysUntilChurn: noForecast,
			Urgency:        model.UrgencyMonitor,
		}
	}

	base := baseHorizonDays[trajectory]
	multiplier := math.Max(multiplierFloor, 1-(riskScore-model.MediumThreshold)/multiplierDivisor)
	days := int(math.Round(float64(base) * multiplier))

	return model.ChurnForecast{
		PredictedChurnDate: now.AddDate(0, 0, days),
		DaysUntilChurn:     days,
		Urgency:            urgencyForDays(days, model.LevelForScore(riskScore)),
	}
}

// urgencyForLevel derives urgency when no date is forecast. Only low-risk
// scores reach this path, but the mapping is kept total.
func urgencyForLevel(level model.RiskLevel) model.Urgency {
	if level == model.RiskHigh {
		return model.UrgencySoon
	}
	return model.UrgencyMonitor
}

func urgencyForDays(days int, level model.RiskLevel) model.Urgency {
	switch {
	case days <= immediateWithinDays:
		return model.UrgencyImmediate
	case days <= soonWithinDays:
		return model.UrgencySoon
	case level == model.RiskHigh:
		return model.UrgencySoon
	default:
		return model.UrgencyMonitor
	}
}
