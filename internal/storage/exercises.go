// ABOUTME: Exercise catalog operations for the lifting log store.
// ABOUTME: Upsert by id only; the restrict FK protects referenced exercises.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/liftlog/internal/models"
)

// ErrExerciseInUse reports an exercise that cannot be deleted because a
// workout entry still references it.
var ErrExerciseInUse = errors.New("exercise is referenced by workout entries")

// UpsertExercises inserts or replaces exercises by id in one transaction.
// Rows absent from the given list are left alone; this write path never
// deletes catalog rows.
func (d *DB) UpsertExercises(exercises []models.Exercise) error {
	if len(exercises) == 0 {
		return nil
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("upsert exercises: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, ex := range exercises {
		_, err := tx.Exec(`
			INSERT INTO exercises (id, name, muscle_group)
			VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				muscle_group = excluded.muscle_group`,
			ex.ID, ex.Name, ex.MuscleGroup)
		if err != nil {
			return fmt.Errorf("upsert exercise %s: %w", ex.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert exercises: commit: %w", err)
	}

	d.notifier.publish(tableExercises)
	return nil
}

// GetExercise retrieves one exercise by id.
func (d *DB) GetExercise(id string) (*models.Exercise, error) {
	var ex models.Exercise
	err := d.db.QueryRow(`SELECT id, name, muscle_group FROM exercises WHERE id = ?`, id).
		Scan(&ex.ID, &ex.Name, &ex.MuscleGroup)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("exercise %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get exercise: %w", err)
	}
	return &ex, nil
}

// ListExercises retrieves the full catalog ordered by muscle group, then name.
func (d *DB) ListExercises() ([]*models.Exercise, error) {
	return d.SearchExercises("")
}

// SearchExercises retrieves exercises whose name or muscle group contains
// the substring, case-insensitively. A blank query returns the full list.
func (d *DB) SearchExercises(query string) ([]*models.Exercise, error) {
	var rows *sql.Rows
	var err error

	if strings.TrimSpace(query) == "" {
		rows, err = d.db.Query(`
			SELECT id, name, muscle_group FROM exercises
			ORDER BY muscle_group ASC, name ASC`)
	} else {
		rows, err = d.db.Query(`
			SELECT id, name, muscle_group FROM exercises
			WHERE name LIKE '%' || ? || '%' COLLATE NOCASE
			   OR muscle_group LIKE '%' || ? || '%' COLLATE NOCASE
			ORDER BY muscle_group ASC, name ASC`, query, query)
	}
	if err != nil {
		return nil, fmt.Errorf("search exercises: %w", err)
	}
	defer rows.Close()

	var exercises []*models.Exercise
	for rows.Next() {
		var ex models.Exercise
		if err := rows.Scan(&ex.ID, &ex.Name, &ex.MuscleGroup); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, &ex)
	}

	return exercises, rows.Err()
}

// DeleteExercise removes an exercise from the catalog. Fails with
// ErrExerciseInUse while any entry references it; the restrict FK makes
// the storage layer enforce that, not just this method.
func (d *DB) DeleteExercise(id string) error {
	result, err := d.db.Exec(`DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return fmt.Errorf("delete exercise %s: %w", id, ErrExerciseInUse)
		}
		return fmt.Errorf("delete exercise: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete exercise %s: %w", id, ErrNotFound)
	}

	d.notifier.publish(tableExercises)
	return nil
}
