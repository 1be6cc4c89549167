// Package introspect reads table and column descriptions from a target
// PostgreSQL database through information_schema and renders them as the
// plain text schema description handed to the language model.
//
// The Connector and Conn interfaces are the boundary used by the documenter;
// PgxConnector is the production implementation backed by jackc/pgx.
package introspect
