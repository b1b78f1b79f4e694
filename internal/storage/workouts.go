// ABOUTME: Workout operations for the lifting log store.
// ABOUTME: Deleting a workout cascades to its entries and their sets.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/liftlog/internal/models"
)

// ErrNotFound reports a lookup that matched no row.
var ErrNotFound = errors.New("not found")

// CreateWorkout inserts a new workout with the current timestamp and
// returns it. An empty name is allowed and read back as "unnamed".
func (d *DB) CreateWorkout(name string) (*models.Workout, error) {
	w := models.NewWorkout(name)

	_, err := d.db.Exec(`
		INSERT INTO workouts (id, date, notes)
		VALUES (?, ?, ?)`,
		w.ID.String(), w.Date.UnixMilli(), w.Name)
	if err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}

	d.notifier.publish(tableWorkouts)
	return w, nil
}

// RenameWorkout updates the workout name. Empty is allowed; readers
// interpret it as unnamed.
func (d *DB) RenameWorkout(id uuid.UUID, name string) error {
	result, err := d.db.Exec(`UPDATE workouts SET notes = ? WHERE id = ?`, name, id.String())
	if err != nil {
		return fmt.Errorf("rename workout: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rename workout: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("rename workout %s: %w", id, ErrNotFound)
	}

	d.notifier.publish(tableWorkouts)
	return nil
}

// DeleteWorkout removes a workout. The cascade FK removes its entries,
// whose cascade FK removes their sets, so no orphan rows survive.
func (d *DB) DeleteWorkout(id uuid.UUID) error {
	result, err := d.db.Exec(`DELETE FROM workouts WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete workout %s: %w", id, ErrNotFound)
	}

	d.notifier.publish(tableWorkouts, tableEntries, tableSets)
	return nil
}

// GetWorkout retrieves a workout by ID, without its entries.
func (d *DB) GetWorkout(id uuid.UUID) (*models.Workout, error) {
	row := d.db.QueryRow(`SELECT id, date, notes FROM workouts WHERE id = ?`, id.String())
	return scanWorkout(row)
}

// GetWorkoutWithEntries retrieves a workout with its entries and their sets.
func (d *DB) GetWorkoutWithEntries(id uuid.UUID) (*models.Workout, error) {
	w, err := d.GetWorkout(id)
	if err != nil {
		return nil, err
	}

	entries, err := d.ListEntries(w.ID)
	if err != nil {
		return nil, fmt.Errorf("list workout entries: %w", err)
	}
	w.Entries = entries

	return w, nil
}

// ListWorkouts retrieves all workouts, most recent first.
func (d *DB) ListWorkouts() ([]*models.Workout, error) {
	rows, err := d.db.Query(`SELECT id, date, notes FROM workouts ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*models.Workout
	for rows.Next() {
		w, err := scanWorkoutRow(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}

	return workouts, rows.Err()
}

// ResolveWorkoutID finds the full workout ID from a prefix.
func (d *DB) ResolveWorkoutID(idOrPrefix string) (uuid.UUID, error) {
	return d.resolveID("workouts", idOrPrefix)
}

// resolveID finds the full UUID from a prefix in the given table.
func (d *DB) resolveID(table, idOrPrefix string) (uuid.UUID, error) {
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		id, err := uuid.Parse(idOrPrefix)
		if err != nil {
			return uuid.Nil, fmt.Errorf("invalid id %q: %w", idOrPrefix, err)
		}
		return id, nil
	}

	rows, err := d.db.Query(`SELECT id FROM `+table+` WHERE id LIKE ? || '%'`, idOrPrefix)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve id: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return uuid.Nil, fmt.Errorf("scan id: %w", err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return uuid.Nil, fmt.Errorf("resolve id: %w", err)
	}

	if len(matches) == 0 {
		return uuid.Nil, fmt.Errorf("%s: %w", idOrPrefix, ErrNotFound)
	}
	if len(matches) > 1 {
		return uuid.Nil, fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}

	id, err := uuid.Parse(matches[0])
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse id: %w", err)
	}
	return id, nil
}

// scanWorkout scans a single row into a Workout struct.
func scanWorkout(row *sql.Row) (*models.Workout, error) {
	var w models.Workout
	var idStr string
	var dateMillis int64

	err := row.Scan(&idStr, &dateMillis, &w.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan workout: %w", err)
	}

	w.ID, _ = uuid.Parse(idStr)
	w.Date = time.UnixMilli(dateMillis)
	return &w, nil
}

// scanWorkoutRow scans one of multiple rows into a Workout struct.
func scanWorkoutRow(rows *sql.Rows) (*models.Workout, error) {
	var w models.Workout
	var idStr string
	var dateMillis int64

	if err := rows.Scan(&idStr, &dateMillis, &w.Name); err != nil {
		return nil, fmt.Errorf("scan workout: %w", err)
	}

	w.ID, _ = uuid.Parse(idStr)
	w.Date = time.UnixMilli(dateMillis)
	return &w, nil
}
