package batch

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"CoachSentinel/internal/analyzer"
	"CoachSentinel/internal/forecast"
	"CoachSentinel/internal/model"
	"CoachSentinel/internal/provider"
	"CoachSentinel/internal/strategy"
)

// DefaultMaxConcurrent caps in-flight snapshot fetches when no limit is
// configured.
const DefaultMaxConcurrent = 8

// Runner fans the scoring pipeline out over a client roster. Each client's
// pipeline is independent; one client's failure never aborts the batch.
type Runner struct {
	Provider      provider.SnapshotProvider
	Engine        *strategy.Engine
	MaxConcurrent int
}

// NewRunner creates a Runner.
func NewRunner(p provider.SnapshotProvider, e *strategy.Engine, maxConcurrent int) *Runner {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	return &Runner{Provider: p, Engine: e, MaxConcurrent: maxConcurrent}
}

// Run assesses every client and returns the results ordered by urgency
// rank, then risk score descending. Clients whose snapshot fetch or
// scoring fails are logged and dropped. Ties beyond the two sort keys
// keep roster order.
func (r *Runner) Run(ctx context.Context, clientIDs []string, now time.Time) []model.RankedResult {
	slots := make([]*model.RankedResult, len(clientIDs))
	sem := make(chan struct{}, r.MaxConcurrent)
	var wg sync.WaitGroup

	for i, id := range clientIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res, err := r.assess(ctx, id, now)
			if err != nil {
				log.Printf("[WARN] skipping client %s: %v", id, err)
				return
			}
			slots[i] = res
		}(i, id)
	}
	wg.Wait()

	results := make([]model.RankedResult, 0, len(clientIDs))
	for _, res := range slots {
		if res != nil {
			results = append(results, *res)
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		ra, rb := results[a].Churn.Urgency.Rank(), results[b].Churn.Urgency.Rank()
		if ra != rb {
			return ra < rb
		}
		return results[a].Risk.RiskScore > results[b].Risk.RiskScore
	})
	return results
}

// assess runs one client through snapshot -> risk -> trajectory -> churn.
func (r *Runner) assess(ctx context.Context, clientID string, now time.Time) (*model.RankedResult, error) {
	snap, err := r.Provider.Snapshot(ctx, clientID, now)
	if err != nil {
		return nil, err
	}

	risk, err := r.Engine.Score(snap, now)
	if err != nil {
		return nil, err
	}
	trajectory, err := analyzer.Analyze(snap.WeeklyEngagementScores)
	if err != nil {
		return nil, err
	}
	churn := forecast.Forecast(risk.RiskScore, trajectory.Trajectory, now)

	return &model.RankedResult{
		ClientID:   snap.ClientID,
		ClientName: snap.ClientName,
		Risk:       *risk,
		Trajectory: trajectory,
		Churn:      churn,
	}, nil
}
