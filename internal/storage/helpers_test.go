// ABOUTME: Shared test helpers for the storage package.
// ABOUTME: Creates temp-directory-backed stores with seeded exercises.
package storage

import (
	"path/filepath"
	"testing"

	"github.com/harperreed/liftlog/internal/models"
)

// setupTestDB creates a test database in a temp directory.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "liftlog.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// seedExercises loads a small catalog used across tests.
func seedExercises(t *testing.T, db *DB) {
	t.Helper()

	exercises := []models.Exercise{
		{ID: "squat", Name: "Squat", MuscleGroup: "Legs"},
		{ID: "bench-press", Name: "Bench Press", MuscleGroup: "Chest"},
		{ID: "deadlift", Name: "Deadlift", MuscleGroup: "Back"},
	}
	if err := db.UpsertExercises(exercises); err != nil {
		t.Fatalf("UpsertExercises failed: %v", err)
	}
}

// mustSaveEntry saves an entry or fails the test.
func mustSaveEntry(t *testing.T, db *DB, p SaveEntryParams) *models.Entry {
	t.Helper()

	entry, err := db.SaveEntry(p)
	if err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}
	return entry
}

// countRows returns the number of rows in a table.
func countRows(t *testing.T, db *DB, table string) int {
	t.Helper()

	var n int
	if err := db.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
