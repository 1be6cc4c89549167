package documenter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/schemadoc/internal/domain"
	"github.com/phrazzld/schemadoc/internal/generation"
	"github.com/phrazzld/schemadoc/internal/introspect"
	"github.com/phrazzld/schemadoc/internal/platform/logger"
	"github.com/phrazzld/schemadoc/internal/progress"
	"github.com/phrazzld/schemadoc/internal/redact"
	"github.com/phrazzld/schemadoc/internal/store"
)

// Request identifies the database to document.
type Request struct {
	// ConnectionID keys progress counters and the stored summary.
	ConnectionID string
	// ConnectionURI is the PostgreSQL URI of the target database.
	ConnectionURI string
	// ConnectionName is the user-facing name, used as a fallback friendly name.
	ConnectionName string
}

func (r Request) validate() error {
	if strings.TrimSpace(r.ConnectionID) == "" {
		return fmt.Errorf("%w: connection ID is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(r.ConnectionURI) == "" {
		return fmt.Errorf("%w: connection URI is required", ErrInvalidRequest)
	}
	return nil
}

// Result is the outcome of a successful job.
type Result struct {
	FriendlyName  string `json:"friendly_name"`
	Documentation string `json:"documentation"`
	SummaryID     string `json:"summary_id"`
	TableCount    int    `json:"table_count"`
}

// Documenter produces documentation for a database connection.
type Documenter interface {
	// GenerateDocumentation runs a job and returns nil if any step fails.
	GenerateDocumentation(ctx context.Context, req Request) *Result
}

// Dependencies are the collaborators of DefaultDocumenter.
type Dependencies struct {
	Connector introspect.Connector
	Tracker   progress.Tracker
	Generator generation.Generator
	Summaries store.SummaryStore
}

// DefaultDocumenter implements Documenter.
type DefaultDocumenter struct {
	connector introspect.Connector
	tracker   progress.Tracker
	generator generation.Generator
	summaries store.SummaryStore
	logger    *slog.Logger
}

var _ Documenter = (*DefaultDocumenter)(nil)

// New creates a DefaultDocumenter. Every dependency is required.
func New(deps Dependencies, logger *slog.Logger) (*DefaultDocumenter, error) {
	switch {
	case logger == nil:
		return nil, ErrNilLogger
	case deps.Connector == nil:
		return nil, ErrNilConnector
	case deps.Tracker == nil:
		return nil, ErrNilTracker
	case deps.Generator == nil:
		return nil, ErrNilGenerator
	case deps.Summaries == nil:
		return nil, ErrNilSummaryStore
	}

	return &DefaultDocumenter{
		connector: deps.Connector,
		tracker:   deps.Tracker,
		generator: deps.Generator,
		summaries: deps.Summaries,
		logger:    logger.With("component", "documenter"),
	}, nil
}

// GenerateDocumentation implements Documenter.
func (d *DefaultDocumenter) GenerateDocumentation(ctx context.Context, req Request) *Result {
	res, err := d.Generate(ctx, req)
	if err != nil {
		logger.FromContextOrDefault(ctx, d.logger).ErrorContext(ctx, "documentation job failed",
			"connection_id", req.ConnectionID,
			"error", redact.Error(err))
		return nil
	}
	return res
}

// Generate runs one documentation job and returns the first error encountered.
// A panic in any step is returned as an error wrapping ErrPanic. Once the
// connection is open it is closed on every path. Progress written before a
// failure is left in place.
func (d *DefaultDocumenter) Generate(ctx context.Context, req Request) (res *Result, err error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	log := logger.FromContextOrDefault(ctx, d.logger).With("connection_id", req.ConnectionID)
	start := time.Now()
	stage := stageConnect
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("%w during %s: %v", ErrPanic, stage, r)
		}
		observeRun(stage, time.Since(start), err)
	}()

	log.InfoContext(ctx, "starting documentation job", "uri", redact.URL(req.ConnectionURI))

	conn, err := d.connector.Connect(ctx, req.ConnectionURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	defer func() {
		if cerr := conn.Close(context.WithoutCancel(ctx)); cerr != nil {
			log.WarnContext(ctx, "failed to close target connection", "error", redact.Error(cerr))
		}
	}()

	stage = stageIntrospect
	tables, err := d.introspect(ctx, conn, req.ConnectionID)
	if err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "schema introspected", "table_count", len(tables))

	data := generation.SchemaData{
		ConnectionName: req.ConnectionName,
		TableNames:     introspect.TableNames(tables),
		Schema:         introspect.DescribeSchema(tables),
	}

	stage = stageName
	name, err := d.friendlyName(ctx, data, req)
	if err != nil {
		return nil, err
	}

	stage = stageDocumentation
	docs, err := d.documentation(ctx, data)
	if err != nil {
		return nil, err
	}

	stage = stagePersist
	summary, err := domain.NewSummary(req.ConnectionID, name, docs, len(tables))
	if err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}
	if err := d.summaries.Create(ctx, summary); err != nil {
		return nil, fmt.Errorf("failed to store summary: %w", err)
	}

	log.InfoContext(ctx, "documentation job completed",
		"summary_id", summary.ID,
		"friendly_name", name,
		"duration", time.Since(start))

	return &Result{
		FriendlyName:  name,
		Documentation: docs,
		SummaryID:     summary.ID,
		TableCount:    len(tables),
	}, nil
}

// introspect lists tables and their columns, advancing the progress counters
// after each table.
func (d *DefaultDocumenter) introspect(
	ctx context.Context,
	conn introspect.Conn,
	connectionID string,
) ([]domain.Table, error) {
	names, err := conn.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	if err := d.tracker.SetTotal(ctx, connectionID, len(names)); err != nil {
		return nil, fmt.Errorf("failed to record total tables: %w", err)
	}
	if err := d.tracker.SetProcessed(ctx, connectionID, 0); err != nil {
		return nil, fmt.Errorf("failed to reset processed tables: %w", err)
	}

	tables := make([]domain.Table, 0, len(names))
	for _, name := range names {
		columns, err := conn.Columns(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to list columns of %s: %w", name, err)
		}
		tables = append(tables, domain.Table{Name: name, Columns: columns})

		if _, err := d.tracker.IncrProcessed(ctx, connectionID); err != nil {
			return nil, fmt.Errorf("failed to record progress: %w", err)
		}
		tablesProcessed.Inc()
	}

	return tables, nil
}

func (d *DefaultDocumenter) friendlyName(
	ctx context.Context,
	data generation.SchemaData,
	req Request,
) (string, error) {
	prompt, err := generation.NamePrompt(data)
	if err != nil {
		return "", err
	}

	raw, err := d.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate friendly name: %w", err)
	}

	name := cleanName(raw)
	if name == "" {
		name = fallbackName(req)
		logger.FromContextOrDefault(ctx, d.logger).WarnContext(ctx,
			"model returned an empty name, using fallback",
			"connection_id", req.ConnectionID,
			"fallback", name)
	}
	return name, nil
}

func (d *DefaultDocumenter) documentation(ctx context.Context, data generation.SchemaData) (string, error) {
	prompt, err := generation.DocumentationPrompt(data)
	if err != nil {
		return "", err
	}

	docs, err := d.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate documentation: %w", err)
	}

	docs = strings.TrimSpace(docs)
	if docs == "" {
		return "", ErrEmptyDocumentation
	}
	return docs, nil
}

// cleanName keeps the first non-blank line of raw without surrounding
// whitespace or quotes.
func cleanName(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.Trim(strings.TrimSpace(line), "\"'`")
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}

func fallbackName(req Request) string {
	if name := strings.TrimSpace(req.ConnectionName); name != "" {
		return name
	}
	return req.ConnectionID
}
