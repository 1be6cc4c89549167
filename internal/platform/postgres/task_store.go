package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/schemadoc/internal/platform/logger"
	"github.com/phrazzld/schemadoc/internal/store"
	"github.com/phrazzld/schemadoc/internal/task"
)

// TaskStore implements task.TaskStore using PostgreSQL
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
	now    func() time.Time
}

var _ task.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a TaskStore. If logger is nil, the default logger is used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) (*TaskStore, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

const insertTaskQuery = `
		INSERT INTO tasks (id, type, payload, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

const updateTaskStatusQuery = `
		UPDATE tasks
		SET status = $1, error_message = $2, updated_at = $3
		WHERE id = $4
	`

const getTaskQuery = `
		SELECT id, type, status, error_message, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

// SaveTask persists a task with its current status.
func (s *TaskStore) SaveTask(ctx context.Context, t task.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	payload := t.Payload()
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	now := s.now()
	_, err := s.db.ExecContext(ctx, insertTaskQuery,
		t.ID(),
		t.Type(),
		payload,
		string(t.Status()),
		now,
		now,
	)
	if err != nil {
		log.Error("failed to save task",
			slog.String("task_id", t.ID().String()),
			slog.String("task_type", t.Type()),
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "create", "failed to save task", MapError(err))
	}
	return nil
}

// UpdateTaskStatus records a status transition. Unknown IDs return
// task.ErrTaskNotFound.
func (s *TaskStore) UpdateTaskStatus(
	ctx context.Context,
	taskID uuid.UUID,
	status task.TaskStatus,
	errorMsg string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, updateTaskStatusQuery,
		string(status),
		errorMsg,
		s.now(),
		taskID,
	)
	if err != nil {
		log.Error("failed to update task status",
			slog.String("task_id", taskID.String()),
			slog.String("status", string(status)),
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "update", "failed to update task status", MapError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		log.Warn("no task found with ID to update status", slog.String("task_id", taskID.String()))
		return task.ErrTaskNotFound
	}
	return nil
}

// GetTask returns the stored record of a task.
func (s *TaskStore) GetTask(ctx context.Context, taskID uuid.UUID) (task.Record, error) {
	var (
		rec    task.Record
		status string
	)
	err := s.db.QueryRowContext(ctx, getTaskQuery, taskID).Scan(
		&rec.ID,
		&rec.Type,
		&status,
		&rec.Error,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrNotFound) {
			return task.Record{}, task.ErrTaskNotFound
		}
		return task.Record{}, store.NewStoreError("task", "get", "failed to load task", mapped)
	}
	rec.Status = task.TaskStatus(status)
	return rec, nil
}
