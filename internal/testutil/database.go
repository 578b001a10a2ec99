package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
)

// SetupTestDB creates a connection to the test database. Tests calling
// this are skipped unless TEST_DATABASE_URL is set.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	connStr := os.Getenv("TEST_DATABASE_URL")
	if connStr == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database test")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	return db
}

// SetupTestTransaction creates a test database connection and begins a transaction
// The transaction is automatically rolled back when the test ends
// This ensures test isolation without needing cleanup
func SetupTestTransaction(t *testing.T) (*sql.DB, *sql.Tx) {
	t.Helper()

	db := SetupTestDB(t)

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		db.Close()
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	t.Cleanup(func() {
		tx.Rollback()
		db.Close()
	})

	return db, tx
}

// CleanupTestDB cleans up test data from the database
// Use this if you're not using transactions
func CleanupTestDB(t *testing.T, db *sql.DB) {
	t.Helper()

	for _, table := range []string{"medical_records", "prescriptions", "practitioner_profiles"} {
		if _, err := db.Exec("TRUNCATE TABLE " + table); err != nil {
			t.Logf("Warning: Failed to clean up %s: %v", table, err)
		}
	}
}
