package introspect

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/phrazzld/schemadoc/internal/domain"
	"github.com/phrazzld/schemadoc/internal/redact"
)

// PgxConnector opens target connections with pgx.Connect.
type PgxConnector struct {
	schemas []string
	logger  *slog.Logger
}

// NewPgxConnector returns a Connector that introspects the given schemas.
func NewPgxConnector(schemas []string, logger *slog.Logger) (*PgxConnector, error) {
	if len(schemas) == 0 {
		return nil, ErrNoSchemas
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PgxConnector{
		schemas: append([]string(nil), schemas...),
		logger:  logger.With("component", "introspect"),
	}, nil
}

var _ Connector = (*PgxConnector)(nil)

// Connect implements Connector.
func (c *PgxConnector) Connect(ctx context.Context, uri string) (Conn, error) {
	if uri == "" {
		return nil, ErrEmptyURI
	}

	conn, err := pgx.Connect(ctx, uri)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to connect to target database",
			"uri", redact.URL(uri),
			"error", redact.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrConnect, redact.Error(err))
	}

	c.logger.DebugContext(ctx, "connected to target database", "uri", redact.URL(uri))
	return &pgxConn{conn: conn, schemas: c.schemas}, nil
}

// querier is the subset of *pgx.Conn used for introspection.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close(ctx context.Context) error
}

type pgxConn struct {
	conn    querier
	schemas []string

	// refs holds the tables reported by the last Tables call.
	refs map[string]tableRef
}

// columnRow mirrors the projection of columnsQuery.
type columnRow struct {
	ColumnName    string  `db:"column_name"`
	DataType      string  `db:"data_type"`
	IsNullable    string  `db:"is_nullable"`
	ColumnDefault *string `db:"column_default"`
}

func (c *pgxConn) Tables(ctx context.Context) ([]string, error) {
	sql, args, err := tablesQuery(c.schemas)
	if err != nil {
		return nil, err
	}

	rows, err := c.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListTables, err)
	}

	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[tableRef])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListTables, err)
	}

	names, refs := displayNames(c.schemas, found)
	c.refs = refs
	return names, nil
}

func (c *pgxConn) Columns(ctx context.Context, table string) ([]domain.Column, error) {
	ref, err := c.resolve(table)
	if err != nil {
		return nil, err
	}

	sql, args, err := columnsQuery(ref)
	if err != nil {
		return nil, err
	}

	rows, err := c.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrListColumns, table, err)
	}

	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[columnRow])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrListColumns, table, err)
	}

	columns := make([]domain.Column, 0, len(found))
	for _, r := range found {
		columns = append(columns, r.toDomain())
	}
	return columns, nil
}

// resolve maps a name reported by Tables to its table. With a single schema
// any name is looked up there; otherwise a name not yet reported must be
// written as schema.table with a configured schema.
func (c *pgxConn) resolve(table string) (tableRef, error) {
	if table == "" {
		return tableRef{}, ErrEmptyTable
	}
	if ref, ok := c.refs[table]; ok {
		return ref, nil
	}
	if len(c.schemas) == 1 {
		return tableRef{Schema: c.schemas[0], Name: table}, nil
	}

	schema, name, ok := strings.Cut(table, ".")
	if ok && name != "" && slices.Contains(c.schemas, schema) {
		return tableRef{Schema: schema, Name: name}, nil
	}
	return tableRef{}, fmt.Errorf("%w: %s", ErrUnknownTable, table)
}

func (c *pgxConn) Close(ctx context.Context) error {
	return c.conn.Close(ctx)
}

func (r columnRow) toDomain() domain.Column {
	return domain.Column{
		Name:     r.ColumnName,
		DataType: r.DataType,
		Nullable: r.IsNullable == "YES",
		Default:  r.ColumnDefault,
	}
}
