package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/schemadoc/internal/progress"
)

// MockTracker implements progress.Tracker in memory for testing
type MockTracker struct {
	SetTotalErr     error
	SetProcessedErr error
	IncrErr         error
	GetErr          error

	Log *CallLog

	mu     sync.Mutex
	totals map[string]int64
	done   map[string]int64

	Calls struct {
		SetTotal     []int
		SetProcessed []int
		Incr         int
	}
}

func (m *MockTracker) init() {
	if m.totals == nil {
		m.totals = make(map[string]int64)
		m.done = make(map[string]int64)
	}
}

// SetTotal implements the progress.Tracker interface
func (m *MockTracker) SetTotal(_ context.Context, connectionID string, total int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	m.Calls.SetTotal = append(m.Calls.SetTotal, total)
	m.Log.Record("set_total")

	if m.SetTotalErr != nil {
		return m.SetTotalErr
	}
	m.totals[connectionID] = int64(total)
	return nil
}

// SetProcessed implements the progress.Tracker interface
func (m *MockTracker) SetProcessed(_ context.Context, connectionID string, processed int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	m.Calls.SetProcessed = append(m.Calls.SetProcessed, processed)
	m.Log.Record("set_processed")

	if m.SetProcessedErr != nil {
		return m.SetProcessedErr
	}
	m.done[connectionID] = int64(processed)
	return nil
}

// IncrProcessed implements the progress.Tracker interface
func (m *MockTracker) IncrProcessed(_ context.Context, connectionID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	m.Calls.Incr++
	m.Log.Record("incr")

	if m.IncrErr != nil {
		return 0, m.IncrErr
	}
	m.done[connectionID]++
	return m.done[connectionID], nil
}

// Get implements the progress.Tracker interface
func (m *MockTracker) Get(_ context.Context, connectionID string) (progress.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()

	if m.GetErr != nil {
		return progress.Progress{}, m.GetErr
	}
	total, ok := m.totals[connectionID]
	if !ok {
		return progress.Progress{}, progress.ErrNoProgress
	}
	return progress.Progress{Total: total, Processed: m.done[connectionID]}, nil
}

// WriteCount returns the number of progress writes of any kind.
func (m *MockTracker) WriteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls.SetTotal) + len(m.Calls.SetProcessed) + m.Calls.Incr
}
