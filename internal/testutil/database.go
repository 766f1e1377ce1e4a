package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
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

	// Each connection gets its own in-memory database, so the pool must
	// stay on a single connection for the schema to be visible everywhere.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the embedded goose migrations.
//
//nolint:funlen // Database schema DDL
func createTestSchema(db *sql.DB) error {
	schema := `
		-- User table
		CREATE TABLE app_user (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			role VARCHAR(30) NOT NULL,
			franchise_or_broker_percent REAL,
			currency VARCHAR(3) NOT NULL DEFAULT 'USD',
			team_leader_id VARCHAR(36) REFERENCES app_user(id)
		);

		-- Operation table
		CREATE TABLE operation (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			address TEXT NOT NULL,
			operation_type VARCHAR(50) NOT NULL,
			status VARCHAR(20) NOT NULL,
			base_value REAL NOT NULL DEFAULT 0,
			advisor_fee_percent REAL NOT NULL DEFAULT 0,
			broker_fee_percent REAL NOT NULL DEFAULT 0,
			shared_with_percent REAL,
			referred_percent REAL,
			buyer_side BOOLEAN NOT NULL DEFAULT FALSE,
			seller_side BOOLEAN NOT NULL DEFAULT FALSE,
			buyer_side_percent REAL,
			seller_side_percent REAL,
			primary_advisor_id VARCHAR(36) NOT NULL REFERENCES app_user(id),
			primary_advisor_name VARCHAR(100) NOT NULL DEFAULT '',
			additional_advisor_id VARCHAR(36) REFERENCES app_user(id),
			additional_advisor_percent REAL,
			operation_date DATE,
			reservation_date DATE,
			capture_date DATE,
			assigned_expenses REAL,
			is_exclusive BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL
		);

		-- Expense table
		CREATE TABLE expense (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES app_user(id),
			amount REAL NOT NULL DEFAULT 0,
			amount_in_dollars REAL NOT NULL DEFAULT 0,
			date DATE NOT NULL,
			expense_type VARCHAR(50) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			is_recurring BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL
		);

		-- Materialized monthly report table
		CREATE TABLE materialized_monthly_report (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES app_user(id),
			year INTEGER NOT NULL,
			month INTEGER NOT NULL,
			operation_count INTEGER NOT NULL DEFAULT 0,
			total_value REAL NOT NULL DEFAULT 0,
			total_gross_broker_fee REAL NOT NULL DEFAULT 0,
			total_net_fee REAL NOT NULL DEFAULT 0,
			buyer_side_count INTEGER NOT NULL DEFAULT 0,
			seller_side_count INTEGER NOT NULL DEFAULT 0,
			average_buyer_side_percent REAL,
			average_seller_side_percent REAL,
			exclusivity_percent REAL NOT NULL DEFAULT 0,
			calculated_at TIMESTAMP NOT NULL,
			UNIQUE (user_id, year, month)
		);

		-- System settings table
		CREATE TABLE system_setting (
			key VARCHAR(50) NOT NULL PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}
