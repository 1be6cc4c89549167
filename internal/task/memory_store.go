package task

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryTaskStore keeps task records in memory. Records are lost on restart.
type MemoryTaskStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Record
	now     func() time.Time
}

var _ TaskStore = (*MemoryTaskStore)(nil)

// NewMemoryTaskStore creates an empty MemoryTaskStore
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{
		records: make(map[uuid.UUID]Record),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// SaveTask implements TaskStore.SaveTask
func (s *MemoryTaskStore) SaveTask(_ context.Context, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.records[task.ID()] = Record{
		ID:        task.ID(),
		Type:      task.Type(),
		Status:    task.Status(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

// UpdateTaskStatus implements TaskStore.UpdateTaskStatus
func (s *MemoryTaskStore) UpdateTaskStatus(
	_ context.Context,
	taskID uuid.UUID,
	status TaskStatus,
	errorMsg string,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[taskID]
	if !ok {
		return ErrTaskNotFound
	}
	rec.Status = status
	rec.Error = errorMsg
	rec.UpdatedAt = s.now()
	s.records[taskID] = rec
	return nil
}

// GetTask implements TaskStore.GetTask
func (s *MemoryTaskStore) GetTask(_ context.Context, taskID uuid.UUID) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[taskID]
	if !ok {
		return Record{}, ErrTaskNotFound
	}
	return rec, nil
}
