package documenter

import "errors"

// Constructor errors.
var (
	ErrNilLogger       = errors.New("logger cannot be nil")
	ErrNilConnector    = errors.New("connector cannot be nil")
	ErrNilTracker      = errors.New("progress tracker cannot be nil")
	ErrNilGenerator    = errors.New("generator cannot be nil")
	ErrNilSummaryStore = errors.New("summary store cannot be nil")
)

// Job errors.
var (
	// ErrInvalidRequest is returned when a request lacks the connection ID or URI.
	ErrInvalidRequest = errors.New("invalid documentation request")

	// ErrEmptyDocumentation is returned when the model replies with blank documentation.
	ErrEmptyDocumentation = errors.New("language model returned empty documentation")

	// ErrPanic is returned when a step of the job panicked.
	ErrPanic = errors.New("documentation job panicked")
)
