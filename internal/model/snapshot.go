package model

import (
	"errors"
	"fmt"
	"time"
)

// MaxHistoryWeeks is the longest engagement history the analyzer accepts.
const MaxHistoryWeeks = 4

// SignalSnapshot holds one client's independently-fetched activity signals.
// A zero LastSessionAt/LastMessageAt means the signal was never observed;
// a nil HabitCompletionRatio7d means no habit logs exist in the window.
type SignalSnapshot struct {
	ClientID   string
	ClientName string

	LastSessionAt                time.Time
	RecentCancelledOrNoShowCount int
	HabitCompletionRatio7d       *float64
	RecentProgressEntryCount14d  int
	LastMessageAt                time.Time
	WeeklyEngagementScores       []float64
}

// Validate rejects malformed snapshots before they reach the scorer.
// Missing optional signals are fine; impossible values are not.
func (s *SignalSnapshot) Validate() error {
	if s.ClientID == "" {
		return errors.New("snapshot missing client id")
	}
	if s.RecentCancelledOrNoShowCount < 0 {
		return fmt.Errorf("negative cancelled/no-show count: %d", s.RecentCancelledOrNoShowCount)
	}
	if s.RecentProgressEntryCount14d < 0 {
		return fmt.Errorf("negative progress entry count: %d", s.RecentProgressEntryCount14d)
	}
	if r := s.HabitCompletionRatio7d; r != nil && (*r < 0 || *r > 1) {
		return fmt.Errorf("habit completion ratio out of range: %.3f", *r)
	}
	if err := ValidateHistory(s.WeeklyEngagementScores); err != nil {
		return err
	}
	return nil
}

// ValidateHistory checks a weekly engagement score sequence.
func ValidateHistory(scores []float64) error {
	if len(scores) > MaxHistoryWeeks {
		return fmt.Errorf("engagement history too long: %d weeks (max %d)", len(scores), MaxHistoryWeeks)
	}
	for i, sc := range scores {
		if sc < 0 || sc > 100 {
			return fmt.Errorf("engagement score %d out of range: %.1f", i, sc)
		}
	}
	return nil
}
