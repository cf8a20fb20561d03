package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"CoachSentinel/internal/model"
)

func urgencyIcon(u model.Urgency) string {
	switch u {
	case model.UrgencyImmediate:
		return "🔴"
	case model.UrgencySoon:
		return "🟠"
	default:
		return "🟢"
	}
}

func trajectoryArrow(t model.Trajectory) string {
	switch t {
	case model.TrajectoryImproving:
		return "↗"
	case model.TrajectoryDeclining:
		return "↘"
	case model.TrajectoryCritical:
		return "⬇"
	default:
		return "→"
	}
}

// FormatDigest renders the full ranked roster digest for a coach.
func FormatDigest(results []model.RankedResult, now time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📋 <b>CoachSentinel client digest</b> | %s\n\n", now.Format("2006-01-02")))

	if len(results) == 0 {
		b.WriteString("No clients assessed.\n")
		return b.String()
	}

	for i, res := range results {
		b.WriteString(fmt.Sprintf("%d. %s <b>%s</b> — risk %.0f (%s) %s %s\n",
			i+1, urgencyIcon(res.Churn.Urgency), res.ClientName,
			res.Risk.RiskScore, res.Risk.RiskLevel,
			trajectoryArrow(res.Trajectory.Trajectory), res.Trajectory.Trajectory))

		if len(res.Risk.RiskFactors) > 0 {
			b.WriteString(fmt.Sprintf("   factors: %s\n", strings.Join(res.Risk.RiskFactors, "; ")))
		}
		if res.Churn.HasDate() {
			b.WriteString(fmt.Sprintf("   projected churn: %s (%s, confidence %.0f%%)\n",
				res.Churn.PredictedChurnDate.Format("2006-01-02"),
				humanize.RelTime(res.Churn.PredictedChurnDate, now, "ago", "from now"),
				res.Trajectory.Confidence))
		}
		b.WriteString(fmt.Sprintf("   → %s\n", res.Risk.SuggestedAction))
	}

	counts := map[model.Urgency]int{}
	for _, res := range results {
		counts[res.Churn.Urgency]++
	}
	b.WriteString(fmt.Sprintf("\n🔴 %d immediate | 🟠 %d soon | 🟢 %d monitor\n",
		counts[model.UrgencyImmediate], counts[model.UrgencySoon], counts[model.UrgencyMonitor]))

	return b.String()
}

// FormatAlert renders the daily immediate-urgency alert. Returns "" when
// nothing needs attention today.
func FormatAlert(results []model.RankedResult, now time.Time) string {
	var urgent []model.RankedResult
	for _, res := range results {
		if res.Churn.Urgency == model.UrgencyImmediate {
			urgent = append(urgent, res)
		}
	}
	if len(urgent) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("🚨 <b>%d client(s) need attention today</b>\n\n", len(urgent)))
	for _, res := range urgent {
		b.WriteString(fmt.Sprintf("🔴 <b>%s</b> — risk %.0f, projected churn %s\n",
			res.ClientName, res.Risk.RiskScore,
			humanize.RelTime(res.Churn.PredictedChurnDate, now, "ago", "from now")))
		b.WriteString(fmt.Sprintf("   → %s\n", res.Risk.SuggestedAction))
	}
	return b.String()
}

// FormatRunSummary renders a short post-run status line.
func FormatRunSummary(rosterSize, assessed int) string {
	skipped := rosterSize - assessed
	if skipped == 0 {
		return fmt.Sprintf("Assessed %d of %d clients.", assessed, rosterSize)
	}
	return fmt.Sprintf("Assessed %d of %d clients (%d skipped, see logs).", assessed, rosterSize, skipped)
}
