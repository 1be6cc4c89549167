//go:build integration

// Package testdb provides helpers for database integration tests.
//
// Tests run against the database in DATABASE_URL and are skipped when it is
// unset. Open applies the embedded migrations once per test binary; WithTx
// runs a test body inside a transaction that is always rolled back, so tests
// can share one database without cleanup:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.Open(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        s, err := postgres.NewSummaryStore(tx, nil)
//	        require.NoError(t, err)
//	        // ...
//	    })
//	}
package testdb
