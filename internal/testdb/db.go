//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/schemadoc/internal/platform/postgres"
	"github.com/phrazzld/schemadoc/internal/redact"
)

// urlEnvVars are checked in order by DatabaseURL.
var urlEnvVars = []string{"DATABASE_URL", "SCHEMADOC_DATABASE_URL"}

var migrateOnce sync.Once

// DatabaseURL returns the first non-empty database URL from the environment.
func DatabaseURL() string {
	for _, name := range urlEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// SkipIfNoDatabase skips t when no database URL is configured and returns
// the URL otherwise.
func SkipIfNoDatabase(t *testing.T) string {
	t.Helper()
	url := DatabaseURL()
	if url == "" {
		t.Skip("DATABASE_URL not set - skipping integration test")
	}
	return url
}

// Open connects to the test database, migrates it up and closes it when the
// test finishes.
func Open(t *testing.T) *sql.DB {
	t.Helper()
	url := SkipIfNoDatabase(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, url)
	if err != nil {
		t.Fatalf("failed to open test database %s: %v", redact.URL(url), err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("warning: failed to close test database: %v", err)
		}
	})

	var migrateErr error
	migrateOnce.Do(func() {
		migrateErr = postgres.Migrate(ctx, db, postgres.MigrateUp, nil)
	})
	if migrateErr != nil {
		t.Fatalf("failed to migrate test database: %v", migrateErr)
	}
	return db
}

// WithTx runs fn inside a transaction that is rolled back afterwards, whether
// fn returns, fails the test or panics.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("warning: failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}
