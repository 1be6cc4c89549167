// Package postgres implements the store interfaces on top of PostgreSQL.
//
// The application database is opened through database/sql with the pgx stdlib
// driver. Its schema is managed by the goose migrations embedded from the
// migrations directory.
package postgres
