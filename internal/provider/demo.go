package provider

import (
	"time"

	"github.com/google/uuid"

	"CoachSentinel/internal/model"
)

func ratio(v float64) *float64 { return &v }

// NewDemoProvider seeds a MockProvider with a small roster covering the
// interesting cases: a healthy client, a fading one, and one already gone
// quiet. Used when no platform database is configured.
func NewDemoProvider(now time.Time) *MockProvider {
	healthy := uuid.NewString()
	fading := uuid.NewString()
	quiet := uuid.NewString()

	snapshots := map[string]*model.SignalSnapshot{
		healthy: {
			ClientID:                    healthy,
			ClientName:                  "Demo: steady",
			LastSessionAt:               now.AddDate(0, 0, -2),
			HabitCompletionRatio7d:      ratio(0.85),
			RecentProgressEntryCount14d: 3,
			LastMessageAt:               now.AddDate(0, 0, -1),
			WeeklyEngagementScores:      []float64{70, 74, 78, 82},
		},
		fading: {
			ClientID:                     fading,
			ClientName:                   "Demo: fading",
			LastSessionAt:                now.AddDate(0, 0, -9),
			RecentCancelledOrNoShowCount: 1,
			HabitCompletionRatio7d:       ratio(0.40),
			RecentProgressEntryCount14d:  1,
			LastMessageAt:                now.AddDate(0, 0, -4),
			WeeklyEngagementScores:       []float64{75, 68, 62, 55},
		},
		quiet: {
			ClientID:                     quiet,
			ClientName:                   "Demo: gone quiet",
			LastSessionAt:                now.AddDate(0, 0, -20),
			RecentCancelledOrNoShowCount: 2,
			HabitCompletionRatio7d:       ratio(0.15),
			LastMessageAt:                now.AddDate(0, 0, -12),
			WeeklyEngagementScores:       []float64{80, 60, 40, 20},
		},
	}

	return &MockProvider{
		Snapshots: snapshots,
		RosterIDs: []string{healthy, fading, quiet},
	}
}
