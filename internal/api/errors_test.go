package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/phrazzld/schemadoc/internal/api/shared"
	"github.com/phrazzld/schemadoc/internal/auth"
	"github.com/phrazzld/schemadoc/internal/documenter"
	"github.com/phrazzld/schemadoc/internal/domain"
	"github.com/phrazzld/schemadoc/internal/progress"
	"github.com/phrazzld/schemadoc/internal/store"
	"github.com/phrazzld/schemadoc/internal/task"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{auth.ErrExpiredToken, http.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", auth.ErrInvalidToken), http.StatusUnauthorized},
		{store.ErrSummaryNotFound, http.StatusNotFound},
		{progress.ErrNoProgress, http.StatusNotFound},
		{task.ErrTaskNotFound, http.StatusNotFound},
		{documenter.ErrInvalidRequest, http.StatusBadRequest},
		{store.ErrInvalidEntity, http.StatusBadRequest},
		{domain.ErrEmptyFriendlyName, http.StatusBadRequest},
		{store.NewStoreError("summary", "create", "failed to insert summary", store.ErrDuplicate), http.StatusConflict},
		{task.ErrQueueFull, http.StatusServiceUnavailable},
		{task.ErrQueueClosed, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "Summary not found", GetSafeErrorMessage(store.ErrSummaryNotFound))
	assert.Equal(t, "Task not found", GetSafeErrorMessage(task.ErrTaskNotFound))
	assert.Equal(t, "Token expired", GetSafeErrorMessage(auth.ErrExpiredToken))
	assert.Equal(t, "Invalid request", GetSafeErrorMessage(domain.ErrNegativeTableCount))
	assert.Equal(t, "Resource already exists", GetSafeErrorMessage(fmt.Errorf("insert: %w", store.ErrDuplicate)))

	leaky := fmt.Errorf("connect postgresql://app:hunter2@db/prod: %w", errors.New("refused"))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(leaky))
}

func TestSanitizeValidationError(t *testing.T) {
	err := shared.ValidateRequest(CreateDocumentationRequest{
		URI:  "postgresql://app:hunter2@db/prod",
		Name: strings.Repeat("n", 300),
	})

	msg := SanitizeValidationError(err)

	assert.Equal(t, "Invalid Name: too long", msg)
	assert.NotContains(t, msg, "hunter2")
	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}
