package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"CoachSentinel/internal/batch"
	"CoachSentinel/internal/model"
	"CoachSentinel/internal/notifier"
	"CoachSentinel/internal/provider"
	"CoachSentinel/internal/recorder"
)

// Scheduler manages the cron-driven risk sweeps.
type Scheduler struct {
	Cron     *cron.Cron
	Runner   *batch.Runner
	Provider provider.SnapshotProvider
	Notifier *notifier.TelegramNotifier
	Recorder recorder.Recorder
	CoachID  string
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, runner *batch.Runner, p provider.SnapshotProvider, tn *notifier.TelegramNotifier, rec recorder.Recorder, coachID string) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Runner:   runner,
		Provider: p,
		Notifier: tn,
		Recorder: rec,
		CoachID:  coachID,
		Ctx:      ctx,
	}
}

// RegisterAll registers the daily sweep and the weekly digest.
func (s *Scheduler) RegisterAll(dailyCron, weeklyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailySweep); err != nil {
		return fmt.Errorf("register daily sweep: %w", err)
	}
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyDigest); err != nil {
		return fmt.Errorf("register weekly digest: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunDigestNow executes the weekly digest immediately (manual trigger /
// RUN_ON_START).
func (s *Scheduler) RunDigestNow() {
	s.weeklyDigest()
}

// sweep runs the full roster through the engine and records the run.
func (s *Scheduler) sweep(now time.Time) (string, []model.RankedResult, int, error) {
	roster, err := s.Provider.Roster(s.Ctx, s.CoachID)
	if err != nil {
		return "", nil, 0, fmt.Errorf("fetch roster: %w", err)
	}

	results := s.Runner.Run(s.Ctx, roster, now)

	runID := uuid.NewString()
	run := &recorder.BatchRun{
		RunID:      runID,
		CoachID:    s.CoachID,
		RosterSize: len(roster),
		Assessed:   len(results),
		Skipped:    len(roster) - len(results),
	}
	if err := s.Recorder.RecordRun(run, results); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
	return runID, results, len(roster), nil
}

// dailySweep alerts only when immediate-urgency clients exist.
func (s *Scheduler) dailySweep() {
	log.Println("[INFO] running daily risk sweep")
	now := time.Now()

	runID, results, _, err := s.sweep(now)
	if err != nil {
		log.Printf("[ERROR] daily sweep: %v", err)
		s.trySend(fmt.Sprintf("❌ Daily risk sweep failed: %v", err))
		return
	}

	alert := notifier.FormatAlert(results, now)
	if alert == "" {
		log.Println("[INFO] daily sweep: no immediate-urgency clients")
		return
	}
	s.trySend(alert)

	for _, res := range results {
		if res.Churn.Urgency != model.UrgencyImmediate {
			continue
		}
		if err := s.Recorder.RecordAlert(&recorder.AlertEvent{
			RunID:          runID,
			ClientID:       res.ClientID,
			ClientName:     res.ClientName,
			RiskScore:      res.Risk.RiskScore,
			Urgency:        string(res.Churn.Urgency),
			DaysUntilChurn: res.Churn.DaysUntilChurn,
		}); err != nil {
			log.Printf("[ERROR] record alert: %v", err)
		}
	}
}

// weeklyDigest sends the full ranked roster report.
func (s *Scheduler) weeklyDigest() {
	log.Println("[INFO] running weekly digest")
	now := time.Now()

	_, results, rosterSize, err := s.sweep(now)
	if err != nil {
		log.Printf("[ERROR] weekly digest: %v", err)
		s.trySend(fmt.Sprintf("❌ Weekly digest failed: %v", err))
		return
	}

	report := notifier.FormatDigest(results, now)
	report += "\n" + notifier.FormatRunSummary(rosterSize, len(results))
	s.trySend(report)
}

// HandleCommand processes a coach command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/report":
		s.weeklyDigest()
		return ""
	case "/risk":
		now := time.Now()
		_, results, rosterSize, err := s.sweep(now)
		if err != nil {
			return fmt.Sprintf("Sweep failed: %v", err)
		}
		if alert := notifier.FormatAlert(results, now); alert != "" {
			return alert
		}
		return "No immediate-urgency clients. " + notifier.FormatRunSummary(rosterSize, len(results))
	default:
		return "Available commands:\n• /report — full ranked digest\n• /risk — immediate-urgency check"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
