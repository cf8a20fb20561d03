package strategy

import (
	"strings"
	"testing"
	"time"

	"CoachSentinel/internal/model"
)

var scoringNow = time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

func ratio(v float64) *float64 { return &v }

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultWeights())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

// healthySnapshot triggers no factors: recent session, no cancellations,
// good habits, recent progress and messages.
func healthySnapshot() *model.SignalSnapshot {
	return &model.SignalSnapshot{
		ClientID:                    "c1",
		ClientName:                  "Alex",
		LastSessionAt:               scoringNow.AddDate(0, 0, -2),
		HabitCompletionRatio7d:      ratio(0.9),
		RecentProgressEntryCount14d: 2,
		LastMessageAt:               scoringNow.AddDate(0, 0, -1),
		WeeklyEngagementScores:      []float64{70, 72, 75, 78},
	}
}

func TestScore_HealthyClient(t *testing.T) {
	e := newTestEngine(t)
	got, err := e.Score(healthySnapshot(), scoringNow)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if got.RiskScore != 0 {
		t.Errorf("expected score 0, got %.1f", got.RiskScore)
	}
	if len(got.RiskFactors) != 0 {
		t.Errorf("expected no factors, got %v", got.RiskFactors)
	}
	if got.RiskLevel != model.RiskLow {
		t.Errorf("expected low level, got %s", got.RiskLevel)
	}
	if got.SuggestedAction == "" {
		t.Error("expected a neutral encouragement action, got empty string")
	}
}

func TestScore_AllFactorsFull(t *testing.T) {
	e := newTestEngine(t)
	snap := &model.SignalSnapshot{
		ClientID:                     "c2",
		LastSessionAt:                scoringNow.AddDate(0, 0, -20),
		RecentCancelledOrNoShowCount: 3,
		HabitCompletionRatio7d:       ratio(0.1),
		RecentProgressEntryCount14d:  0,
		LastMessageAt:                scoringNow.AddDate(0, 0, -10),
	}
	got, err := e.Score(snap, scoringNow)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	// 25 + 20 + 20 + 15 + 20, clamped at 100.
	if got.RiskScore != 100 {
		t.Errorf("expected score 100, got %.1f", got.RiskScore)
	}
	if got.RiskLevel != model.RiskHigh {
		t.Errorf("expected high level, got %s", got.RiskLevel)
	}

	wantOrder := []string{
		FactorInactive14d,
		FactorMissedSessions,
		FactorVeryLowHabits,
		FactorNoProgress,
		FactorNoMessages,
	}
	if len(got.RiskFactors) != len(wantOrder) {
		t.Fatalf("expected %d factors, got %d: %v", len(wantOrder), len(got.RiskFactors), got.RiskFactors)
	}
	for i, want := range wantOrder {
		if got.RiskFactors[i] != want {
			t.Errorf("factor %d: expected %q, got %q", i, want, got.RiskFactors[i])
		}
	}
}

func TestScore_PartialTiers(t *testing.T) {
	e := newTestEngine(t)
	snap := healthySnapshot()
	snap.LastSessionAt = scoringNow.AddDate(0, 0, -9) // partial inactivity
	snap.HabitCompletionRatio7d = ratio(0.4)          // partial habits
	got, err := e.Score(snap, scoringNow)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if got.RiskScore != 22.5 {
		t.Errorf("expected score 22.5 (12.5 + 10), got %.1f", got.RiskScore)
	}
	for _, f := range got.RiskFactors {
		if f == FactorInactive14d || f == FactorVeryLowHabits {
			t.Errorf("full tier fired alongside partial: %v", got.RiskFactors)
		}
	}
}

func TestScore_MissingSignalsDoNotFire(t *testing.T) {
	e := newTestEngine(t)
	// Everything absent except one progress entry: no session or message on
	// record means no inactivity/communication signal.
	snap := &model.SignalSnapshot{
		ClientID:                    "c3",
		RecentProgressEntryCount14d: 1,
	}
	got, err := e.Score(snap, scoringNow)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if got.RiskScore != 0 {
		t.Errorf("expected score 0 for all-missing signals, got %.1f (%v)", got.RiskScore, got.RiskFactors)
	}
}

func TestScore_FactorsEmptyIffScoreZero(t *testing.T) {
	e := newTestEngine(t)
	snaps := []*model.SignalSnapshot{
		healthySnapshot(),
		{ClientID: "a", RecentProgressEntryCount14d: 0},
		{ClientID: "b", LastSessionAt: scoringNow.AddDate(0, 0, -30), RecentProgressEntryCount14d: 1},
		{ClientID: "c", HabitCompletionRatio7d: ratio(0.45), RecentProgressEntryCount14d: 1},
	}
	for _, snap := range snaps {
		got, err := e.Score(snap, scoringNow)
		if err != nil {
			t.Fatalf("score %s: %v", snap.ClientID, err)
		}
		if (got.RiskScore == 0) != (len(got.RiskFactors) == 0) {
			t.Errorf("client %s: score %.1f with factors %v", snap.ClientID, got.RiskScore, got.RiskFactors)
		}
	}
}

func TestScore_InvalidInput(t *testing.T) {
	e := newTestEngine(t)
	tests := []struct {
		name   string
		mutate func(*model.SignalSnapshot)
	}{
		{"negative cancelled count", func(s *model.SignalSnapshot) { s.RecentCancelledOrNoShowCount = -1 }},
		{"negative progress count", func(s *model.SignalSnapshot) { s.RecentProgressEntryCount14d = -2 }},
		{"ratio above 1", func(s *model.SignalSnapshot) { s.HabitCompletionRatio7d = ratio(1.5) }},
		{"ratio below 0", func(s *model.SignalSnapshot) { s.HabitCompletionRatio7d = ratio(-0.1) }},
		{"history too long", func(s *model.SignalSnapshot) { s.WeeklyEngagementScores = []float64{1, 2, 3, 4, 5} }},
		{"score out of range", func(s *model.SignalSnapshot) { s.WeeklyEngagementScores = []float64{50, 130} }},
	}
	for _, tt := range tests {
		snap := healthySnapshot()
		tt.mutate(snap)
		if _, err := e.Score(snap, scoringNow); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestSuggestAction_PriorityOrder(t *testing.T) {
	tests := []struct {
		name    string
		level   model.RiskLevel
		factors []string
		wantSub string
	}{
		{"high with inactivity", model.RiskHigh, []string{FactorInactive14d, FactorNoProgress}, "check-in"},
		{"high with partial inactivity", model.RiskHigh, []string{FactorInactive7d}, "check-in"},
		{"high with missed sessions only", model.RiskHigh, []string{FactorMissedSessions}, "reschedule"},
		{"high generic", model.RiskHigh, []string{FactorNoProgress}, "re-engagement"},
		{"medium with low habits", model.RiskMedium, []string{FactorLowHabits}, "Simplify"},
		{"medium with inactivity", model.RiskMedium, []string{FactorInactive7d}, "book their next session"},
		{"medium generic", model.RiskMedium, []string{FactorNoProgress}, "Check in"},
		{"low", model.RiskLow, nil, "encouragement"},
	}
	for _, tt := range tests {
		got := suggestAction(tt.level, tt.factors)
		if !strings.Contains(got, tt.wantSub) {
			t.Errorf("%s: expected action containing %q, got %q", tt.name, tt.wantSub, got)
		}
	}
}

func TestSuggestAction_InactivityBeatsHabits(t *testing.T) {
	// High level: the inactivity rule outranks everything else even when
	// other factors are present.
	got := suggestAction(model.RiskHigh, []string{FactorInactive14d, FactorMissedSessions, FactorVeryLowHabits})
	if !strings.Contains(got, "check-in") {
		t.Errorf("expected inactivity rule to win, got %q", got)
	}
}

func TestNewEngine_RejectsBadWeights(t *testing.T) {
	w := DefaultWeights()
	w.NoProgress = 0
	if _, err := NewEngine(w); err == nil {
		t.Error("expected error for zero weight")
	}
	w = DefaultWeights()
	w.MissedSessions = -5
	if _, err := NewEngine(w); err == nil {
		t.Error("expected error for negative weight")
	}
}

func TestScore_CustomWeightsClamp(t *testing.T) {
	w := DefaultWeights()
	w.InactivityFull = 80
	w.NoCommunication = 80
	e, err := NewEngine(w)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	snap := &model.SignalSnapshot{
		ClientID:                    "c4",
		LastSessionAt:               scoringNow.AddDate(0, 0, -30),
		LastMessageAt:               scoringNow.AddDate(0, 0, -30),
		RecentProgressEntryCount14d: 1,
	}
	got, err := e.Score(snap, scoringNow)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if got.RiskScore != 100 {
		t.Errorf("expected clamp at 100, got %.1f", got.RiskScore)
	}
}
