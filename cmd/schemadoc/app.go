package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/schemadoc/internal/config"
	"github.com/phrazzld/schemadoc/internal/documenter"
	"github.com/phrazzld/schemadoc/internal/introspect"
	"github.com/phrazzld/schemadoc/internal/platform/gemini"
	"github.com/phrazzld/schemadoc/internal/platform/postgres"
	"github.com/phrazzld/schemadoc/internal/progress"
	"github.com/redis/go-redis/v9"
)

// application holds the shared dependencies of the documenter and releases
// them on close.
type application struct {
	config *config.Config
	logger *slog.Logger

	db    *sql.DB
	redis *redis.Client

	tracker    *progress.RedisTracker
	summaries  *postgres.SummaryStore
	documenter *documenter.DefaultDocumenter
}

// newApplication opens the application database and Redis and wires the
// documenter. On error everything opened so far is closed.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{config: cfg, logger: logger}
	if err := app.init(ctx); err != nil {
		app.close()
		return nil, err
	}

	logger.Info("application initialized",
		"model", cfg.LLM.ModelName,
		"schemas", cfg.Documenter.Schemas)
	return app, nil
}

func (a *application) init(ctx context.Context) error {
	var err error

	a.db, err = postgres.Open(ctx, a.config.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open application database: %w", err)
	}

	if err = a.openTracker(ctx); err != nil {
		return err
	}

	a.summaries, err = postgres.NewSummaryStore(a.db, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create summary store: %w", err)
	}

	connector, err := introspect.NewPgxConnector(a.config.Documenter.Schemas, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create schema connector: %w", err)
	}

	generator, err := gemini.NewGenerator(ctx, a.logger, a.config.LLM)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	a.documenter, err = documenter.New(documenter.Dependencies{
		Connector: connector,
		Tracker:   a.tracker,
		Generator: generator,
		Summaries: a.summaries,
	}, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create documenter: %w", err)
	}
	return nil
}

// newTrackerApplication opens only Redis.
func newTrackerApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{config: cfg, logger: logger}
	if err := app.openTracker(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

func (a *application) openTracker(ctx context.Context) error {
	client, err := progress.Dial(ctx, a.config.Redis.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	a.redis = client

	tracker, err := progress.NewRedisTracker(client, a.config.Redis.KeyPrefix, a.config.Redis.TTL)
	if err != nil {
		return fmt.Errorf("failed to create progress tracker: %w", err)
	}
	a.tracker = tracker
	return nil
}

// close releases every opened resource.
func (a *application) close() {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if err := errors.Join(errs...); err != nil {
		a.logger.Warn("error while closing resources", "error", err)
	}
}
