package domain

import (
	"fmt"
	"strings"
	"time"
)

// SummaryIDPrefix marks identifiers of persisted summaries.
const SummaryIDPrefix = "S"

// Validation errors for Summary. Each wraps ErrValidation.
var (
	ErrEmptySummaryID     = fmt.Errorf("%w: summary ID cannot be empty", ErrValidation)
	ErrEmptyConnectionID  = fmt.Errorf("%w: connection ID cannot be empty", ErrValidation)
	ErrEmptyFriendlyName  = fmt.Errorf("%w: friendly name cannot be empty", ErrValidation)
	ErrEmptyDocumentation = fmt.Errorf("%w: documentation cannot be empty", ErrValidation)
	ErrNegativeTableCount = fmt.Errorf("%w: table count cannot be negative", ErrValidation)
)

// Summary is the persisted outcome of a documentation job: the friendly
// name and the documentation the language model produced for one connection.
type Summary struct {
	ID            string    `json:"id"`
	ConnectionID  string    `json:"connection_id"`
	FriendlyName  string    `json:"friendly_name"`
	Documentation string    `json:"documentation"`
	TableCount    int       `json:"table_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewSummary creates a Summary with a fresh identifier and creation time.
// Returns an error if validation fails.
func NewSummary(connectionID, friendlyName, documentation string, tableCount int) (*Summary, error) {
	id, err := GenerateID(DefaultIDLength, SummaryIDPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to generate summary ID: %w", err)
	}

	s := &Summary{
		ID:            id,
		ConnectionID:  connectionID,
		FriendlyName:  friendlyName,
		Documentation: documentation,
		TableCount:    tableCount,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks if the Summary has valid data.
func (s *Summary) Validate() error {
	if s.ID == "" {
		return ErrEmptySummaryID
	}

	if s.ConnectionID == "" {
		return ErrEmptyConnectionID
	}

	if strings.TrimSpace(s.FriendlyName) == "" {
		return ErrEmptyFriendlyName
	}

	if strings.TrimSpace(s.Documentation) == "" {
		return ErrEmptyDocumentation
	}

	if s.TableCount < 0 {
		return ErrNegativeTableCount
	}

	return nil
}
