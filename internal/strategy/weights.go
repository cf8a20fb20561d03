package strategy

import "fmt"

// Weights holds the per-factor score contributions. The values are policy
// heuristics rather than derived constants, so deployments may override
// them from config.
type Weights struct {
	InactivityFull    float64 `yaml:"inactivity_full"`
	InactivityPartial float64 `yaml:"inactivity_partial"`
	MissedSessions    float64 `yaml:"missed_sessions"`
	LowHabitsFull     float64 `yaml:"low_habits_full"`
	LowHabitsPartial  float64 `yaml:"low_habits_partial"`
	NoProgress        float64 `yaml:"no_progress"`
	NoCommunication   float64 `yaml:"no_communication"`
}

// DefaultWeights returns the standard factor weights.
func DefaultWeights() Weights {
	return Weights{
		InactivityFull:    25,
		InactivityPartial: 12.5,
		MissedSessions:    20,
		LowHabitsFull:     20,
		LowHabitsPartial:  10,
		NoProgress:        15,
		NoCommunication:   20,
	}
}

// Validate rejects non-positive weights. A zero weight would let a factor
// trigger without moving the score, breaking the "factors present iff
// score > 0" contract.
func (w Weights) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"inactivity_full", w.InactivityFull},
		{"inactivity_partial", w.InactivityPartial},
		{"missed_sessions", w.MissedSessions},
		{"low_habits_full", w.LowHabitsFull},
		{"low_habits_partial", w.LowHabitsPartial},
		{"no_progress", w.NoProgress},
		{"no_communication", w.NoCommunication},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return fmt.Errorf("weight %s must be positive, got %.2f", c.name, c.value)
		}
	}
	return nil
}
