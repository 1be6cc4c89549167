package task

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTaskStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTaskStore()
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return clock }

	task := newMockTask()
	require.NoError(t, s.SaveTask(ctx, task))

	rec, err := s.GetTask(ctx, task.ID())
	require.NoError(t, err)
	assert.Equal(t, Record{
		ID:        task.ID(),
		Type:      "mock",
		Status:    TaskStatusPending,
		CreatedAt: clock,
		UpdatedAt: clock,
	}, rec)

	clock = clock.Add(time.Minute)
	require.NoError(t, s.UpdateTaskStatus(ctx, task.ID(), TaskStatusFailed, "boom"))

	rec, err = s.GetTask(ctx, task.ID())
	require.NoError(t, err)
	assert.Equal(t, TaskStatusFailed, rec.Status)
	assert.Equal(t, "boom", rec.Error)
	assert.Equal(t, clock, rec.UpdatedAt)
	assert.True(t, rec.UpdatedAt.After(rec.CreatedAt))
}

func TestMemoryTaskStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTaskStore()

	_, err := s.GetTask(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrTaskNotFound)

	err = s.UpdateTaskStatus(ctx, uuid.New(), TaskStatusCompleted, "")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}
