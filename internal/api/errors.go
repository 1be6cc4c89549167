package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/schemadoc/internal/api/shared"
	"github.com/phrazzld/schemadoc/internal/auth"
	"github.com/phrazzld/schemadoc/internal/documenter"
	"github.com/phrazzld/schemadoc/internal/domain"
	"github.com/phrazzld/schemadoc/internal/progress"
	"github.com/phrazzld/schemadoc/internal/store"
	"github.com/phrazzld/schemadoc/internal/task"
)

// Errors returned by handler constructors
var (
	ErrNilLogger      = errors.New("logger cannot be nil")
	ErrNilTaskFactory = errors.New("task factory cannot be nil")
	ErrNilTaskQueue   = errors.New("task queue cannot be nil")
	ErrNilTaskStore   = errors.New("task store cannot be nil")
	ErrNilProgress    = errors.New("progress reader cannot be nil")
	ErrNilSummaries   = errors.New("summary store cannot be nil")
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingSubject):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, progress.ErrNoProgress),
		errors.Is(err, task.ErrTaskNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, documenter.ErrInvalidRequest):
		return http.StatusBadRequest

	case store.IsDuplicateError(err):
		return http.StatusConflict

	// Backpressure
	case errors.Is(err, task.ErrQueueFull),
		errors.Is(err, task.ErrQueueClosed):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingSubject):
		return "Invalid token"

	case errors.Is(err, store.ErrSummaryNotFound):
		return "Summary not found"

	case errors.Is(err, progress.ErrNoProgress):
		return "No documentation job recorded for this connection"

	case errors.Is(err, task.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, documenter.ErrInvalidRequest):
		return "Invalid request"

	case store.IsDuplicateError(err):
		return "Resource already exists"

	case errors.Is(err, task.ErrQueueFull):
		return "Too many documentation jobs queued, try again later"

	case errors.Is(err, task.ErrQueueClosed):
		return "Server is shutting down"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError responds with the status and message mapped from err.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

// SanitizeValidationError turns validator errors into a message that names
// the first failing field without echoing its value.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}
	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "url", "uri":
		return "invalid URI format"
	case "startswith", "startsnotwith":
		return "unsupported URI scheme"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
