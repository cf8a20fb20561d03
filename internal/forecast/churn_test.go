package forecast

import (
	"testing"
	"time"

	"CoachSentinel/internal/model"
)

var forecastNow = time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

func TestForecast_BelowThresholdNeverDated(t *testing.T) {
	for _, trajectory := range []model.Trajectory{
		model.TrajectoryImproving, model.TrajectoryStable,
		model.TrajectoryDeclining, model.TrajectoryCritical,
	} {
		got := Forecast(34.9, trajectory, forecastNow)
		if got.HasDate() {
			t.Errorf("%s: expected no churn date below risk threshold", trajectory)
		}
		if got.DaysUntilChurn != -1 {
			t.Errorf("%s: expected days -1, got %d", trajectory, got.DaysUntilChurn)
		}
		if got.Urgency != model.UrgencyMonitor {
			t.Errorf("%s: expected monitor, got %s", trajectory, got.Urgency)
		}
	}
}

func TestForecast_ImprovingNeverDated(t *testing.T) {
	// An improving client is never forecast to churn, even at max score.
	for _, score := range []float64{35, 70, 100} {
		got := Forecast(score, model.TrajectoryImproving, forecastNow)
		if got.HasDate() {
			t.Errorf("score %.0f: expected no churn date for improving client", score)
		}
		if got.Urgency != model.UrgencyMonitor {
			t.Errorf("score %.0f: expected monitor, got %s", score, got.Urgency)
		}
	}
}

func TestForecast_CriticalHighRisk(t *testing.T) {
	// score 70, critical: multiplier ~0.731, round(7*0.731) = 5.
	got := Forecast(70, model.TrajectoryCritical, forecastNow)
	if got.DaysUntilChurn != 5 {
		t.Errorf("expected 5 days until churn, got %d", got.DaysUntilChurn)
	}
	if got.Urgency != model.UrgencyImmediate {
		t.Errorf("expected immediate, got %s", got.Urgency)
	}
	want := forecastNow.AddDate(0, 0, 5)
	if !got.PredictedChurnDate.Equal(want) {
		t.Errorf("expected churn date %s, got %s", want, got.PredictedChurnDate)
	}
}

func TestForecast_Horizons(t *testing.T) {
	tests := []struct {
		name       string
		score      float64
		trajectory model.Trajectory
		wantDays   int
		wantUrg    model.Urgency
	}{
		{"critical at threshold", 35, model.TrajectoryCritical, 7, model.UrgencyImmediate},
		{"declining at threshold", 35, model.TrajectoryDeclining, 21, model.UrgencySoon},
		{"stable at threshold", 35, model.TrajectoryStable, 45, model.UrgencyMonitor},
		{"stable at max score hits floor", 100, model.TrajectoryStable, 23, model.UrgencySoon},
		{"declining high risk", 90, model.TrajectoryDeclining, 12, model.UrgencySoon},
	}
	for _, tt := range tests {
		got := Forecast(tt.score, tt.trajectory, forecastNow)
		if got.DaysUntilChurn != tt.wantDays {
			t.Errorf("%s: expected %d days, got %d", tt.name, tt.wantDays, got.DaysUntilChurn)
		}
		if got.Urgency != tt.wantUrg {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.wantUrg, got.Urgency)
		}
		if !got.HasDate() {
			t.Errorf("%s: expected a churn date", tt.name)
		}
	}
}

func TestForecast_HighLevelEscalatesDistantDates(t *testing.T) {
	// 60 stable: multiplier = 1 - 25/130 ~ 0.808, round(45*0.808) = 36 days.
	// Beyond the 21-day cutoff, but high risk level keeps urgency at soon.
	got := Forecast(60, model.TrajectoryStable, forecastNow)
	if got.DaysUntilChurn != 36 {
		t.Errorf("expected 36 days, got %d", got.DaysUntilChurn)
	}
	if got.Urgency != model.UrgencySoon {
		t.Errorf("expected soon for high-risk distant date, got %s", got.Urgency)
	}
}
