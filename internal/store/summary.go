package store

import (
	"context"

	"github.com/phrazzld/schemadoc/internal/domain"
)

// SummaryStore defines the interface for persisting generated schema summaries.
type SummaryStore interface {
	// Create saves a new summary.
	// Returns ErrInvalidEntity if the summary fails domain validation and
	// ErrDuplicate if a summary with the same ID already exists.
	Create(ctx context.Context, summary *domain.Summary) error

	// LatestForConnection returns the most recently created summary for a
	// connection. Returns ErrSummaryNotFound if none exists.
	LatestForConnection(ctx context.Context, connectionID string) (*domain.Summary, error)
}
