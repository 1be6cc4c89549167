package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/schemadoc/internal/api/shared"
	"github.com/phrazzld/schemadoc/internal/documenter"
	"github.com/phrazzld/schemadoc/internal/progress"
	"github.com/phrazzld/schemadoc/internal/redact"
	"github.com/phrazzld/schemadoc/internal/store"
	"github.com/phrazzld/schemadoc/internal/task"
)

// connectionIDRules are the validator tags applied to the {id} path parameter.
const connectionIDRules = "required,max=128"

// CreateDocumentationRequest is the body of POST /api/connections/{id}/documentation.
type CreateDocumentationRequest struct {
	URI  string `json:"uri" validate:"required,uri,max=2048"`
	Name string `json:"name" validate:"max=256"`
}

// CreateDocumentationResponse acknowledges a queued job.
type CreateDocumentationResponse struct {
	TaskID       string `json:"task_id"`
	ConnectionID string `json:"connection_id"`
	Status       string `json:"status"`
}

// ProgressResponse reports the counters of the most recent job.
type ProgressResponse struct {
	ConnectionID    string `json:"connection_id"`
	TotalTables     int64  `json:"total_tables"`
	ProcessedTables int64  `json:"processed_tables"`
	Done            bool   `json:"done"`
}

// TaskFactory builds documentation tasks from requests.
type TaskFactory interface {
	CreateTask(req documenter.Request) (task.Task, error)
}

// ProgressReader reads job counters.
type ProgressReader interface {
	Get(ctx context.Context, connectionID string) (progress.Progress, error)
}

// DocumentationDeps are the collaborators of DocumentationHandler.
type DocumentationDeps struct {
	Factory   TaskFactory
	Queue     task.TaskQueueWriter
	Tasks     task.TaskStore
	Progress  ProgressReader
	Summaries store.SummaryStore
}

// DocumentationHandler serves the per-connection documentation endpoints.
type DocumentationHandler struct {
	factory   TaskFactory
	queue     task.TaskQueueWriter
	tasks     task.TaskStore
	progress  ProgressReader
	summaries store.SummaryStore
	logger    *slog.Logger
}

// NewDocumentationHandler creates a DocumentationHandler.
func NewDocumentationHandler(deps DocumentationDeps, logger *slog.Logger) (*DocumentationHandler, error) {
	switch {
	case logger == nil:
		return nil, ErrNilLogger
	case deps.Factory == nil:
		return nil, ErrNilTaskFactory
	case deps.Queue == nil:
		return nil, ErrNilTaskQueue
	case deps.Tasks == nil:
		return nil, ErrNilTaskStore
	case deps.Progress == nil:
		return nil, ErrNilProgress
	case deps.Summaries == nil:
		return nil, ErrNilSummaries
	}

	return &DocumentationHandler{
		factory:   deps.Factory,
		queue:     deps.Queue,
		tasks:     deps.Tasks,
		progress:  deps.Progress,
		summaries: deps.Summaries,
		logger:    logger.With("component", "documentation_handler"),
	}, nil
}

// connectionID extracts and validates the {id} path parameter.
func connectionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if err := shared.ValidateVar(id, connectionIDRules); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid connection ID")
		return "", false
	}
	return id, true
}

// CreateDocumentation handles POST /api/connections/{id}/documentation.
// The job runs on the worker pool; the response carries the task ID.
func (h *DocumentationHandler) CreateDocumentation(w http.ResponseWriter, r *http.Request) {
	id, ok := connectionID(w, r)
	if !ok {
		return
	}

	var req CreateDocumentationRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	t, err := h.factory.CreateTask(documenter.Request{
		ConnectionID:   id,
		ConnectionURI:  req.URI,
		ConnectionName: strings.TrimSpace(req.Name),
	})
	if err != nil {
		HandleAPIError(w, r, fmt.Errorf("failed to create documentation task: %w", err))
		return
	}

	if err := h.tasks.SaveTask(r.Context(), t); err != nil {
		HandleAPIError(w, r, fmt.Errorf("failed to save task: %w", err))
		return
	}

	if err := h.queue.Enqueue(t); err != nil {
		if uerr := h.tasks.UpdateTaskStatus(r.Context(), t.ID(), task.TaskStatusFailed, err.Error()); uerr != nil {
			h.logger.Warn("failed to mark rejected task",
				"task_id", t.ID(),
				"error", redact.Error(uerr))
		}
		HandleAPIError(w, r, err)
		return
	}

	h.logger.Info("documentation task queued",
		"task_id", t.ID(),
		"connection_id", id)

	shared.RespondWithJSON(w, r, http.StatusAccepted, CreateDocumentationResponse{
		TaskID:       t.ID().String(),
		ConnectionID: id,
		Status:       string(task.TaskStatusPending),
	})
}

// GetProgress handles GET /api/connections/{id}/documentation/progress.
func (h *DocumentationHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := connectionID(w, r)
	if !ok {
		return
	}

	p, err := h.progress.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ProgressResponse{
		ConnectionID:    id,
		TotalTables:     p.Total,
		ProcessedTables: p.Processed,
		Done:            p.Done(),
	})
}

// GetSummary handles GET /api/connections/{id}/summary.
func (h *DocumentationHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := connectionID(w, r)
	if !ok {
		return
	}

	summary, err := h.summaries.LatestForConnection(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}
