package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Initialize(":memory:")
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

// TestDatabaseIntegration tests the complete database lifecycle on disk.
func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := "test_integration.db"
	defer os.Remove(dbPath)

	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	for _, table := range []string{"kv_store", "migrations"} {
		query := "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
		var name string
		if err := db.QueryRowContext(ctx, query, table).Scan(&name); err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}

	// Re-running migrations must be a no-op.
	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Second migration run failed: %v", err)
	}
}

// TestTransactions exercises the dialect-aware transaction wrapper.
func TestTransactions(t *testing.T) {
	db := newTestDB(t)

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	if _, err := tx.Exec("INSERT INTO kv_store (key, value) VALUES (?, ?)", "highScore", "120"); err != nil {
		tx.Rollback()
		t.Fatalf("Failed to insert in transaction: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Failed to commit transaction: %v", err)
	}

	var value string
	if err := db.QueryRow("SELECT value FROM kv_store WHERE key = ?", "highScore").Scan(&value); err != nil {
		t.Fatalf("Failed to query after commit: %v", err)
	}
	if value != "120" {
		t.Errorf("value = %q, want 120", value)
	}

	tx2, err := db.Begin()
	if err != nil {
		t.Fatalf("Failed to begin second transaction: %v", err)
	}
	if _, err := tx2.Exec("INSERT INTO kv_store (key, value) VALUES (?, ?)", "currentStudent", "小明"); err != nil {
		tx2.Rollback()
		t.Fatalf("Failed to insert in second transaction: %v", err)
	}
	if err := tx2.Rollback(); err != nil {
		t.Fatalf("Failed to rollback transaction: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM kv_store WHERE key = ?", "currentStudent").Scan(&count); err != nil {
		t.Fatalf("Failed to query after rollback: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 rows after rollback, got %d", count)
	}
}

// TestFailedMigrationNotRecorded verifies a migration that errors is never
// marked as completed, so a fixed file can be applied on the next run.
func TestFailedMigrationNotRecorded(t *testing.T) {
	db, err := Initialize(":memory:")
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	dir := t.TempDir()
	sub := filepath.Join(dir, "sqlite")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("Failed to create migrations dir: %v", err)
	}
	broken := []byte("CREATE TABLE broken (")
	if err := os.WriteFile(filepath.Join(sub, "001_broken.sql"), broken, 0o644); err != nil {
		t.Fatalf("Failed to write migration file: %v", err)
	}

	if err := db.RunMigrations(dir); err == nil {
		t.Fatal("Expected broken migration to fail")
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count); err != nil {
		t.Fatalf("Failed to count migrations: %v", err)
	}
	if count != 0 {
		t.Errorf("Failed migration was recorded, count = %d", count)
	}
}

// TestConcurrentReads runs parallel reads against one connection.
func TestConcurrentReads(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.Exec(db.Dialect.UpsertKV(), "deviceId", "device_test"); err != nil {
		t.Fatalf("Failed to seed row: %v", err)
	}

	done := make(chan error)
	for i := 0; i < 10; i++ {
		go func() {
			var value string
			err := db.QueryRow("SELECT value FROM kv_store WHERE key = ?", "deviceId").Scan(&value)
			if err == nil && value != "device_test" {
				t.Errorf("value = %q, want device_test", value)
			}
			done <- err
		}()
	}
	for i := 0; i < 10; i++ {
		if err := <-done; err != nil {
			t.Errorf("Concurrent read failed: %v", err)
		}
	}
}
