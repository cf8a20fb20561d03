package provider

import (
	"context"
	"fmt"
	"time"

	"CoachSentinel/internal/model"
)

// SnapshotProvider supplies per-client signal snapshots and the coach's
// active roster. "now" is passed explicitly so windowed queries stay
// deterministic.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, clientID string, now time.Time) (*model.SignalSnapshot, error)
	Roster(ctx context.Context, coachID string) ([]string, error)
	Name() string
}

// MockProvider returns controllable fixed data for development and testing.
type MockProvider struct {
	Snapshots map[string]*model.SignalSnapshot
	Errors    map[string]error
	RosterIDs []string
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Snapshot(_ context.Context, clientID string, _ time.Time) (*model.SignalSnapshot, error) {
	if err, ok := m.Errors[clientID]; ok {
		return nil, err
	}
	snap, ok := m.Snapshots[clientID]
	if !ok {
		return nil, fmt.Errorf("no snapshot for client %s", clientID)
	}
	return snap, nil
}

func (m *MockProvider) Roster(_ context.Context, _ string) ([]string, error) {
	return m.RosterIDs, nil
}
