package strategy

import (
	"time"

	"CoachSentinel/internal/model"
)

// Factor labels as they appear in RiskAssessment.RiskFactors and in the
// coach-facing digest. The scorer appends them in evaluation order.
const (
	FactorInactive14d    = "no sessions in over 2 weeks"
	FactorInactive7d     = "no sessions in over a week"
	FactorMissedSessions = "2+ cancelled or missed sessions recently"
	FactorVeryLowHabits  = "very low habit completion"
	FactorLowHabits      = "low habit completion"
	FactorNoProgress     = "no progress updates in 2 weeks"
	FactorNoMessages     = "no messages in over a week"
)

// Condition thresholds. Unlike the weights these are not configurable:
// the trailing windows are baked into the snapshot field contracts.
const (
	inactivityFullDays    = 14
	inactivityPartialDays = 7
	missedSessionsMin     = 2
	habitsFullBelow       = 0.30
	habitsPartialBelow    = 0.50
	quietMessageDays      = 7
)

// scoreInactivity fires on the time since the last scheduled session.
// Full weight past 14 days, partial past 7. A client with no session on
// record has no inactivity signal at all.
func scoreInactivity(snap *model.SignalSnapshot, now time.Time, w Weights) (string, float64, bool) {
	if snap.LastSessionAt.IsZero() {
		return "", 0, false
	}
	days := now.Sub(snap.LastSessionAt).Hours() / 24
	switch {
	case days > inactivityFullDays:
		return FactorInactive14d, w.InactivityFull, true
	case days > inactivityPartialDays:
		return FactorInactive7d, w.InactivityPartial, true
	}
	return "", 0, false
}

// scoreMissedSessions fires on 2+ cancelled/no-show sessions in the
// trailing 14-day window.
func scoreMissedSessions(snap *model.SignalSnapshot, w Weights) (string, float64, bool) {
	if snap.RecentCancelledOrNoShowCount >= missedSessionsMin {
		return FactorMissedSessions, w.MissedSessions, true
	}
	return "", 0, false
}

// scoreHabits fires on the 7-day habit completion ratio. Full weight below
// 30%, partial below 50%; only one tier ever fires. Nil ratio means no
// habit logs exist and the factor does not apply.
func scoreHabits(snap *model.SignalSnapshot, w Weights) (string, float64, bool) {
	if snap.HabitCompletionRatio7d == nil {
		return "", 0, false
	}
	ratio := *snap.HabitCompletionRatio7d
	switch {
	case ratio < habitsFullBelow:
		return FactorVeryLowHabits, w.LowHabitsFull, true
	case ratio < habitsPartialBelow:
		return FactorLowHabits, w.LowHabitsPartial, true
	}
	return "", 0, false
}

// scoreProgress fires when no progress entries landed in the trailing
// 14 days.
func scoreProgress(snap *model.SignalSnapshot, w Weights) (string, float64, bool) {
	if snap.RecentProgressEntryCount14d == 0 {
		return FactorNoProgress, w.NoProgress, true
	}
	return "", 0, false
}

// scoreCommunication fires when the last message in either direction is
// more than 7 days old. No message on record means no signal.
func scoreCommunication(snap *model.SignalSnapshot, now time.Time, w Weights) (string, float64, bool) {
	if snap.LastMessageAt.IsZero() {
		return "", 0, false
	}
	if now.Sub(snap.LastMessageAt).Hours()/24 > quietMessageDays {
		return FactorNoMessages, w.NoCommunication, true
	}
	return "", 0, false
}
