package model

// RiskLevel buckets a risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Level thresholds. Scores at or above HighThreshold are high,
// at or above MediumThreshold medium, everything below low.
const (
	HighThreshold   = 60.0
	MediumThreshold = 35.0
)

// LevelForScore maps a risk score to its level. This is the only place
// the mapping lives; every consumer derives the level through it.
func LevelForScore(score float64) RiskLevel {
	switch {
	case score >= HighThreshold:
		return RiskHigh
	case score >= MediumThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// RiskAssessment is the scorer's output for one client.
// Factors are in evaluation order, never sorted by weight.
type RiskAssessment struct {
	ClientID        string
	ClientName      string
	RiskScore       float64
	RiskLevel       RiskLevel
	RiskFactors     []string
	SuggestedAction string
}
