package introspect

import (
	"context"
	"errors"

	"github.com/phrazzld/schemadoc/internal/domain"
)

// Errors returned by the introspect package.
var (
	ErrConnect      = errors.New("failed to connect to target database")
	ErrListTables   = errors.New("failed to list tables")
	ErrListColumns  = errors.New("failed to list columns")
	ErrEmptyURI     = errors.New("connection URI cannot be empty")
	ErrEmptyTable   = errors.New("table name cannot be empty")
	ErrNoSchemas    = errors.New("at least one schema must be configured")
	ErrUnknownTable = errors.New("table is not in a configured schema")
)

// Connector opens connections to target databases.
type Connector interface {
	Connect(ctx context.Context, uri string) (Conn, error)
}

// Conn is an open connection to a target database.
type Conn interface {
	// Tables returns the names of base tables in the configured schemas,
	// sorted by schema then name. When more than one schema is configured
	// each name is qualified as schema.table.
	Tables(ctx context.Context) ([]string, error)

	// Columns returns the columns of a table reported by Tables in ordinal order.
	Columns(ctx context.Context, table string) ([]domain.Column, error)

	// Close releases the connection.
	Close(ctx context.Context) error
}
