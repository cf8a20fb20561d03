package strategy

import (
	"fmt"
	"time"

	"CoachSentinel/internal/model"
)

// actionRule maps a (risk level, triggered factor) pair to a suggested
// action. AnyOf empty means the rule matches the level alone.
type actionRule struct {
	Level  model.RiskLevel
	AnyOf  []string
	Action string
}

// actionRules is checked top to bottom; the first match wins.
var actionRules = []actionRule{
	{model.RiskHigh, []string{FactorInactive14d, FactorInactive7d},
		"Send a personal check-in message today; they have gone quiet on sessions."},
	{model.RiskHigh, []string{FactorMissedSessions},
		"Call them to reschedule and talk through what is getting in the way."},
	{model.RiskHigh, nil,
		"Reach out with a re-engagement message and propose a fresh plan."},
	{model.RiskMedium, []string{FactorVeryLowHabits, FactorLowHabits},
		"Simplify their goals: suggest smaller, easier habit targets this week."},
	{model.RiskMedium, []string{FactorInactive14d, FactorInactive7d},
		"Invite them to book their next session while momentum is still there."},
	{model.RiskMedium, nil,
		"Check in on their progress this week and ask how they are feeling."},
	{model.RiskLow, nil,
		"Keep doing what you are doing and send some encouragement."},
}

func suggestAction(level model.RiskLevel, factors []string) string {
	present := make(map[string]bool, len(factors))
	for _, f := range factors {
		present[f] = true
	}
	for _, rule := range actionRules {
		if rule.Level != level {
			continue
		}
		if len(rule.AnyOf) == 0 {
			return rule.Action
		}
		for _, label := range rule.AnyOf {
			if present[label] {
				return rule.Action
			}
		}
	}
	// Unreachable: every level has a catch-all rule.
	return ""
}

// Engine scores signal snapshots into risk assessments. It is stateless
// apart from its weights and safe for concurrent use.
type Engine struct {
	weights Weights
}

// NewEngine creates an Engine with the given factor weights.
func NewEngine(w Weights) (*Engine, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("factor weights: %w", err)
	}
	return &Engine{weights: w}, nil
}

// Score converts a snapshot into a risk assessment. Pure and deterministic
// for a fixed "now"; missing optional signals never error, malformed input
// does.
func (e *Engine) Score(snap *model.SignalSnapshot, now time.Time) (*model.RiskAssessment, error) {
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot for %s: %w", snap.ClientID, err)
	}

	var (
		total   float64
		factors []string
	)
	add := func(label string, weight float64, hit bool) {
		if hit {
			total += weight
			factors = append(factors, label)
		}
	}

	// Fixed evaluation order: inactivity, missed sessions, habits,
	// progress, communication.
	add(scoreInactivity(snap, now, e.weights))
	add(scoreMissedSessions(snap, e.weights))
	add(scoreHabits(snap, e.weights))
	add(scoreProgress(snap, e.weights))
	add(scoreCommunication(snap, now, e.weights))

	if total > 100 {
		total = 100
	}
	level := model.LevelForScore(total)

	return &model.RiskAssessment{
		ClientID:        snap.ClientID,
		ClientName:      snap.ClientName,
		RiskScore:       total,
		RiskLevel:       level,
		RiskFactors:     factors,
		SuggestedAction: suggestAction(level, factors),
	}, nil
}
