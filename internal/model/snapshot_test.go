package model

import (
	"testing"
	"time"
)

func validSnapshot() *SignalSnapshot {
	r := 0.75
	return &SignalSnapshot{
		ClientID:                    "c1",
		ClientName:                  "Alex",
		LastSessionAt:               time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		HabitCompletionRatio7d:      &r,
		RecentProgressEntryCount14d: 2,
		WeeklyEngagementScores:      []float64{60, 65, 70, 75},
	}
}

func TestSnapshotValidate(t *testing.T) {
	if err := validSnapshot().Validate(); err != nil {
		t.Fatalf("valid snapshot rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*SignalSnapshot)
	}{
		{"missing client id", func(s *SignalSnapshot) { s.ClientID = "" }},
		{"negative cancelled count", func(s *SignalSnapshot) { s.RecentCancelledOrNoShowCount = -1 }},
		{"negative progress count", func(s *SignalSnapshot) { s.RecentProgressEntryCount14d = -1 }},
		{"ratio above 1", func(s *SignalSnapshot) { r := 1.2; s.HabitCompletionRatio7d = &r }},
		{"ratio below 0", func(s *SignalSnapshot) { r := -0.5; s.HabitCompletionRatio7d = &r }},
		{"history too long", func(s *SignalSnapshot) { s.WeeklyEngagementScores = []float64{1, 2, 3, 4, 5} }},
		{"score above 100", func(s *SignalSnapshot) { s.WeeklyEngagementScores = []float64{50, 101} }},
		{"score below 0", func(s *SignalSnapshot) { s.WeeklyEngagementScores = []float64{-1, 50} }},
	}
	for _, tt := range tests {
		snap := validSnapshot()
		tt.mutate(snap)
		if err := snap.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestSnapshotValidate_MissingOptionalsOK(t *testing.T) {
	snap := &SignalSnapshot{ClientID: "c2"}
	if err := snap.Validate(); err != nil {
		t.Errorf("all-missing optional signals must validate: %v", err)
	}
}

func TestLevelForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  RiskLevel
	}{
		{0, RiskLow},
		{34.9, RiskLow},
		{35, RiskMedium},
		{59, RiskMedium},
		{60, RiskHigh},
		{100, RiskHigh},
	}
	for _, tt := range tests {
		if got := LevelForScore(tt.score); got != tt.want {
			t.Errorf("score %.1f: expected %s, got %s", tt.score, tt.want, got)
		}
	}
}

func TestUrgencyRank(t *testing.T) {
	if UrgencyImmediate.Rank() >= UrgencySoon.Rank() || UrgencySoon.Rank() >= UrgencyMonitor.Rank() {
		t.Error("urgency ranks must order immediate < soon < monitor")
	}
}
