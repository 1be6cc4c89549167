package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/schemadoc/internal/domain"
	"github.com/phrazzld/schemadoc/internal/store"
)

// MockSummaryStore implements store.SummaryStore for testing
type MockSummaryStore struct {
	CreateFn func(ctx context.Context, summary *domain.Summary) error
	LatestFn func(ctx context.Context, connectionID string) (*domain.Summary, error)

	CreateErr error

	Log *CallLog

	mu      sync.Mutex
	created []*domain.Summary
}

var _ store.SummaryStore = (*MockSummaryStore)(nil)

// Create implements the store.SummaryStore interface
func (m *MockSummaryStore) Create(ctx context.Context, summary *domain.Summary) error {
	m.Log.Record("create_summary")

	if m.CreateFn != nil {
		return m.CreateFn(ctx, summary)
	}
	if m.CreateErr != nil {
		return m.CreateErr
	}

	m.mu.Lock()
	m.created = append(m.created, summary)
	m.mu.Unlock()
	return nil
}

// LatestForConnection implements the store.SummaryStore interface.
// Without LatestFn it returns the last created summary for the connection.
func (m *MockSummaryStore) LatestForConnection(ctx context.Context, connectionID string) (*domain.Summary, error) {
	if m.LatestFn != nil {
		return m.LatestFn(ctx, connectionID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.created) - 1; i >= 0; i-- {
		if m.created[i].ConnectionID == connectionID {
			return m.created[i], nil
		}
	}
	return nil, store.ErrSummaryNotFound
}

// Created returns the summaries stored so far.
func (m *MockSummaryStore) Created() []*domain.Summary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Summary(nil), m.created...)
}
