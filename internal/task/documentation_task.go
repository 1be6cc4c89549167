package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/schemadoc/internal/documenter"
)

// documentationPayload is the serialized form of a DocumentationTask.
// The connection URI is omitted because it carries credentials.
type documentationPayload struct {
	ConnectionID   string `json:"connection_id"`
	ConnectionName string `json:"connection_name,omitempty"`
}

// DocumentationTask implements the Task interface for documenting one
// database connection.
type DocumentationTask struct {
	id         uuid.UUID
	req        documenter.Request
	documenter documenter.Documenter
	logger     *slog.Logger

	mu     sync.Mutex
	status TaskStatus
	result *documenter.Result
}

// NewDocumentationTask creates a new documentation task
func NewDocumentationTask(
	req documenter.Request,
	doc documenter.Documenter,
	logger *slog.Logger,
) (*DocumentationTask, error) {
	if doc == nil {
		return nil, ErrNilDocumenter
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	id := uuid.New()
	return &DocumentationTask{
		id:         id,
		req:        req,
		documenter: doc,
		logger: logger.With(
			"task_type", TaskTypeDocumentation,
			"task_id", id,
			"connection_id", req.ConnectionID,
		),
		status: TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *DocumentationTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *DocumentationTask) Type() string {
	return TaskTypeDocumentation
}

// Payload returns the task data as a byte slice
func (t *DocumentationTask) Payload() []byte {
	data, err := json.Marshal(documentationPayload{
		ConnectionID:   t.req.ConnectionID,
		ConnectionName: t.req.ConnectionName,
	})
	if err != nil {
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}
	return data
}

// Status returns the current task status
func (t *DocumentationTask) Status() TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Result returns the job result once the task has completed, or nil.
func (t *DocumentationTask) Result() *documenter.Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result
}

func (t *DocumentationTask) setStatus(status TaskStatus, result *documenter.Result) {
	t.mu.Lock()
	t.status = status
	t.result = result
	t.mu.Unlock()
}

// Execute runs the documentation job.
func (t *DocumentationTask) Execute(ctx context.Context) error {
	t.setStatus(TaskStatusProcessing, nil)
	t.logger.Info("starting documentation task")

	if err := ctx.Err(); err != nil {
		t.setStatus(TaskStatusFailed, nil)
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	res := t.documenter.GenerateDocumentation(ctx, t.req)
	if res == nil {
		t.setStatus(TaskStatusFailed, nil)
		return fmt.Errorf("%w: connection %s", ErrDocumentationFailed, t.req.ConnectionID)
	}

	t.setStatus(TaskStatusCompleted, res)
	t.logger.Info("documentation task completed",
		"summary_id", res.SummaryID,
		"table_count", res.TableCount)
	return nil
}

// DocumentationTaskFactory creates DocumentationTask instances
type DocumentationTaskFactory struct {
	documenter documenter.Documenter
	logger     *slog.Logger
}

// NewDocumentationTaskFactory creates a new factory for DocumentationTasks
func NewDocumentationTaskFactory(doc documenter.Documenter, logger *slog.Logger) (*DocumentationTaskFactory, error) {
	if doc == nil {
		return nil, ErrNilDocumenter
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	return &DocumentationTaskFactory{
		documenter: doc,
		logger:     logger.With("component", "documentation_task_factory"),
	}, nil
}

// CreateTask creates a new DocumentationTask for req
func (f *DocumentationTaskFactory) CreateTask(req documenter.Request) (Task, error) {
	return NewDocumentationTask(req, f.documenter, f.logger)
}
