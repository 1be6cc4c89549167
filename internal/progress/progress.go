// Package progress records how far a documentation job has advanced so that
// callers polling a connection can report "processed N of M tables".
package progress

import (
	"context"
	"errors"
)

// ErrNoProgress is returned by Get when nothing was recorded for a connection.
var ErrNoProgress = errors.New("no progress recorded for connection")

// DefaultKeyPrefix namespaces every progress key.
const DefaultKeyPrefix = "dbdocumenter"

// Progress is a snapshot of a job's counters.
type Progress struct {
	Total     int64 `json:"total_tables"`
	Processed int64 `json:"processed_tables"`
}

// Done reports whether every table has been processed.
func (p Progress) Done() bool {
	return p.Processed >= p.Total
}

// Tracker stores per-connection progress counters.
type Tracker interface {
	// SetTotal records the number of tables the job will visit.
	SetTotal(ctx context.Context, connectionID string, total int) error

	// SetProcessed overwrites the processed counter.
	SetProcessed(ctx context.Context, connectionID string, processed int) error

	// IncrProcessed adds one to the processed counter and returns the new value.
	IncrProcessed(ctx context.Context, connectionID string) (int64, error)

	// Get returns the current counters or ErrNoProgress.
	Get(ctx context.Context, connectionID string) (Progress, error)
}
