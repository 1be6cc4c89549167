package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/schemadoc/internal/domain"
	"github.com/phrazzld/schemadoc/internal/platform/logger"
	"github.com/phrazzld/schemadoc/internal/store"
)

// SummaryStore implements store.SummaryStore on the project_postgres_summary table.
type SummaryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSummaryStore creates a SummaryStore over a database connection or transaction
// managed by the caller. If logger is nil, the default logger is used.
func NewSummaryStore(db store.DBTX, logger *slog.Logger) (*SummaryStore, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SummaryStore{
		db:     db,
		logger: logger.With(slog.String("component", "summary_store")),
	}, nil
}

var _ store.SummaryStore = (*SummaryStore)(nil)

const insertSummaryQuery = `
		INSERT INTO project_postgres_summary (id, connection_id, friendly_name, documentation, table_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

const latestSummaryQuery = `
		SELECT id, connection_id, friendly_name, documentation, table_count, created_at
		FROM project_postgres_summary
		WHERE connection_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

// Create implements store.SummaryStore.Create.
func (s *SummaryStore) Create(ctx context.Context, summary *domain.Summary) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if summary == nil {
		return fmt.Errorf("%w: summary cannot be nil", store.ErrInvalidEntity)
	}
	if err := summary.Validate(); err != nil {
		log.Warn("summary validation failed during create",
			slog.String("error", err.Error()),
			slog.String("summary_id", summary.ID))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(
		ctx,
		insertSummaryQuery,
		summary.ID,
		summary.ConnectionID,
		summary.FriendlyName,
		summary.Documentation,
		summary.TableCount,
		summary.CreatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			log.Warn("duplicate summary id",
				slog.String("summary_id", summary.ID))
		} else {
			log.Error("failed to create summary",
				slog.String("error", err.Error()),
				slog.String("summary_id", summary.ID),
				slog.String("connection_id", summary.ConnectionID))
		}
		return store.NewStoreError("summary", "create", "failed to insert summary", mapped)
	}

	log.Info("summary created successfully",
		slog.String("summary_id", summary.ID),
		slog.String("connection_id", summary.ConnectionID),
		slog.Int("table_count", summary.TableCount))
	return nil
}

// LatestForConnection implements store.SummaryStore.LatestForConnection.
func (s *SummaryStore) LatestForConnection(ctx context.Context, connectionID string) (*domain.Summary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var summary domain.Summary
	err := s.db.QueryRowContext(ctx, latestSummaryQuery, connectionID).Scan(
		&summary.ID,
		&summary.ConnectionID,
		&summary.FriendlyName,
		&summary.Documentation,
		&summary.TableCount,
		&summary.CreatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			log.Debug("no summary for connection", slog.String("connection_id", connectionID))
			return nil, store.ErrSummaryNotFound
		}
		log.Error("failed to load latest summary",
			slog.String("error", err.Error()),
			slog.String("connection_id", connectionID))
		return nil, store.NewStoreError("summary", "get", "failed to load latest summary", mapped)
	}

	return &summary, nil
}
