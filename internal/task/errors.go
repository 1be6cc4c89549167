package task

import (
	"errors"
	"fmt"
)

// Task construction errors
var (
	ErrNilDocumenter = errors.New("documenter cannot be nil")
	ErrNilLogger     = errors.New("logger cannot be nil")
)

// ErrDocumentationFailed is returned by DocumentationTask when the job yields no result.
var ErrDocumentationFailed = errors.New("documentation job produced no result")

// PanicError wraps a value recovered from a panicking task.
type PanicError struct {
	Value any
	// Stack is the goroutine stack at the point of recovery.
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}
