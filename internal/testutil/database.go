package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package

	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/database"
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The schema comes from the same embedded goose migrations production runs,
// so tests always see the current schema. The database is automatically
// cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// A :memory: database exists per connection; pin the pool to one.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}
