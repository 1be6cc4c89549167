package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is wrapped by every entity validation error.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidIDLength is returned when an identifier is requested with a non-positive length.
	ErrInvalidIDLength = errors.New("identifier length must be positive")

	// ErrInvalidIDPrefix is returned when an identifier prefix is longer than one character.
	ErrInvalidIDPrefix = errors.New("identifier prefix must be a single character")
)
