// ABOUTME: Entry and set operations, the only multi-row writes in the store.
// ABOUTME: Every save replaces an entry's sets and summary inside one transaction.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/harperreed/liftlog/internal/models"
)

// Validation errors returned before any write is attempted.
var (
	ErrNoExercise = errors.New("entry has no exercise")
	ErrNoSets     = errors.New("entry has no sets")
)

// SetInput is one set as entered by the user. Reps and Weight are the raw
// strings from the editing surface; values that do not parse count as zero
// in storage and are excluded from the summary arithmetic.
type SetInput struct {
	Reps      string
	Weight    string
	ToFailure bool
}

// SaveEntryParams describes one entry save. When ExistingEntryID is set
// the entry is updated and all of its sets are replaced; otherwise a new
// entry is inserted.
type SaveEntryParams struct {
	WorkoutID       uuid.UUID
	ExerciseID      string
	Sets            []SetInput
	Notes           string
	SupersetGroupID *string
	UseLbs          bool
	ExistingEntryID *uuid.UUID
}

// SaveEntry writes an entry and its sets atomically. Sets are numbered
// 1..N in list order, and the entry's summary columns are recomputed from
// the set list before writing. Rejects blank exercise ids and empty set
// lists without touching storage.
func (d *DB) SaveEntry(p SaveEntryParams) (*models.Entry, error) {
	if strings.TrimSpace(p.ExerciseID) == "" {
		return nil, fmt.Errorf("save entry: %w", ErrNoExercise)
	}
	if len(p.Sets) == 0 {
		return nil, fmt.Errorf("save entry: %w", ErrNoSets)
	}

	entry := &models.Entry{
		WorkoutID:       p.WorkoutID,
		ExerciseID:      p.ExerciseID,
		Notes:           p.Notes,
		SupersetGroupID: p.SupersetGroupID,
		UseLbs:          p.UseLbs,
	}
	entry.SetCount, entry.AvgReps, entry.MaxWeightLbs = summarize(p.Sets)

	if p.ExistingEntryID != nil {
		entry.ID = *p.ExistingEntryID
	} else {
		entry.ID = uuid.New()
	}

	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("save entry: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if p.ExistingEntryID != nil {
		result, err := tx.Exec(`
			UPDATE workout_entries
			SET exercise_id = ?, sets = ?, reps = ?, weight_kg = ?,
			    notes = ?, superset_group_id = ?, use_lbs = ?
			WHERE id = ?`,
			entry.ExerciseID, entry.SetCount, entry.AvgReps, entry.MaxWeightLbs,
			entry.Notes, entry.SupersetGroupID, boolToInt(entry.UseLbs),
			entry.ID.String())
		if err != nil {
			return nil, fmt.Errorf("update entry: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("update entry: %w", err)
		}
		if affected == 0 {
			return nil, fmt.Errorf("update entry %s: %w", entry.ID, ErrNotFound)
		}

		// Replace all sets: delete-all then reinsert, renumbered. The
		// surrounding transaction is what keeps readers from ever seeing
		// the entry with zero sets.
		if _, err := tx.Exec(`DELETE FROM workout_sets WHERE entry_id = ?`, entry.ID.String()); err != nil {
			return nil, fmt.Errorf("delete entry sets: %w", err)
		}
	} else {
		_, err := tx.Exec(`
			INSERT INTO workout_entries
				(id, workout_id, exercise_id, sets, reps, weight_kg,
				 notes, superset_group_id, use_lbs)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			entry.ID.String(), entry.WorkoutID.String(), entry.ExerciseID,
			entry.SetCount, entry.AvgReps, entry.MaxWeightLbs,
			entry.Notes, entry.SupersetGroupID, boolToInt(entry.UseLbs))
		if err != nil {
			return nil, fmt.Errorf("insert entry: %w", err)
		}
	}

	for i, in := range p.Sets {
		set := models.Set{
			ID:        uuid.New(),
			EntryID:   entry.ID,
			SetNumber: i + 1,
			Reps:      parseReps(in.Reps),
			WeightLbs: parseWeight(in.Weight),
			ToFailure: in.ToFailure,
		}
		_, err := tx.Exec(`
			INSERT INTO workout_sets (id, entry_id, set_number, reps, weight_lbs, to_failure)
			VALUES (?, ?, ?, ?, ?, ?)`,
			set.ID.String(), set.EntryID.String(), set.SetNumber,
			set.Reps, set.WeightLbs, boolToInt(set.ToFailure))
		if err != nil {
			return nil, fmt.Errorf("insert set %d: %w", set.SetNumber, err)
		}
		entry.Sets = append(entry.Sets, set)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("save entry: commit: %w", err)
	}

	d.notifier.publish(tableEntries, tableSets)
	return entry, nil
}

// DeleteEntry removes an entry; the cascade FK removes its sets.
func (d *DB) DeleteEntry(id uuid.UUID) error {
	result, err := d.db.Exec(`DELETE FROM workout_entries WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete entry %s: %w", id, ErrNotFound)
	}

	d.notifier.publish(tableEntries, tableSets)
	return nil
}

// GetEntry retrieves an entry with its sets.
func (d *DB) GetEntry(id uuid.UUID) (*models.Entry, error) {
	row := d.db.QueryRow(`
		SELECT id, workout_id, exercise_id, sets, reps, weight_kg,
		       notes, superset_group_id, use_lbs
		FROM workout_entries WHERE id = ?`, id.String())

	entry, err := scanEntry(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("entry %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	entry.Sets, err = d.setsForEntry(entry.ID)
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// ListEntries retrieves all entries of a workout in insertion order, each
// with its sets.
func (d *DB) ListEntries(workoutID uuid.UUID) ([]*models.Entry, error) {
	rows, err := d.db.Query(`
		SELECT id, workout_id, exercise_id, sets, reps, weight_kg,
		       notes, superset_group_id, use_lbs
		FROM workout_entries WHERE workout_id = ? ORDER BY rowid ASC`,
		workoutID.String())
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.Entry
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	for _, entry := range entries {
		entry.Sets, err = d.setsForEntry(entry.ID)
		if err != nil {
			return nil, err
		}
	}

	return entries, nil
}

// LinkSuperset writes one freshly generated group id to both entries in
// the same transaction. A no-op when either id does not resolve.
func (d *DB) LinkSuperset(a, b uuid.UUID) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("link superset: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	err = tx.QueryRow(`SELECT COUNT(*) FROM workout_entries WHERE id IN (?, ?)`,
		a.String(), b.String()).Scan(&count)
	if err != nil {
		return fmt.Errorf("link superset: %w", err)
	}
	if count != 2 {
		return nil
	}

	group := uuid.New().String()
	_, err = tx.Exec(`UPDATE workout_entries SET superset_group_id = ? WHERE id IN (?, ?)`,
		group, a.String(), b.String())
	if err != nil {
		return fmt.Errorf("link superset: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("link superset: commit: %w", err)
	}

	d.notifier.publish(tableEntries)
	return nil
}

// UnlinkSuperset clears the group id on this entry only. Its former
// partner keeps the old group id; unlinking is one-sided.
func (d *DB) UnlinkSuperset(id uuid.UUID) error {
	_, err := d.db.Exec(`UPDATE workout_entries SET superset_group_id = NULL WHERE id = ?`,
		id.String())
	if err != nil {
		return fmt.Errorf("unlink superset: %w", err)
	}

	d.notifier.publish(tableEntries)
	return nil
}

// LastSetsForExercise returns the sets of the most recently inserted
// entry referencing the exercise, across all workouts. Insertion order,
// not workout date, decides recency. Empty when no prior entry exists.
func (d *DB) LastSetsForExercise(exerciseID string) ([]models.Set, error) {
	var entryID string
	err := d.db.QueryRow(`
		SELECT id FROM workout_entries
		WHERE exercise_id = ?
		ORDER BY rowid DESC LIMIT 1`, exerciseID).Scan(&entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last sets: %w", err)
	}

	id, err := uuid.Parse(entryID)
	if err != nil {
		return nil, fmt.Errorf("last sets: parse entry id: %w", err)
	}
	return d.setsForEntry(id)
}

// ResolveEntryID finds the full entry ID from a prefix.
func (d *DB) ResolveEntryID(idOrPrefix string) (uuid.UUID, error) {
	return d.resolveID("workout_entries", idOrPrefix)
}

// setsForEntry returns an entry's sets ordered by set number.
func (d *DB) setsForEntry(entryID uuid.UUID) ([]models.Set, error) {
	rows, err := d.db.Query(`
		SELECT id, entry_id, set_number, reps, weight_lbs, to_failure
		FROM workout_sets WHERE entry_id = ? ORDER BY set_number ASC`,
		entryID.String())
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	defer rows.Close()

	var sets []models.Set
	for rows.Next() {
		var s models.Set
		var idStr, entryStr string
		var toFailure int
		if err := rows.Scan(&idStr, &entryStr, &s.SetNumber, &s.Reps, &s.WeightLbs, &toFailure); err != nil {
			return nil, fmt.Errorf("scan set: %w", err)
		}
		s.ID, _ = uuid.Parse(idStr)
		s.EntryID, _ = uuid.Parse(entryStr)
		s.ToFailure = toFailure != 0
		sets = append(sets, s)
	}

	return sets, rows.Err()
}

// scanEntry scans one entry row via the given scan function.
func scanEntry(scan func(dest ...any) error) (*models.Entry, error) {
	var e models.Entry
	var idStr, workoutStr string
	var superset sql.NullString
	var useLbs int

	err := scan(&idStr, &workoutStr, &e.ExerciseID, &e.SetCount, &e.AvgReps,
		&e.MaxWeightLbs, &e.Notes, &superset, &useLbs)
	if err != nil {
		return nil, err
	}

	e.ID, _ = uuid.Parse(idStr)
	e.WorkoutID, _ = uuid.Parse(workoutStr)
	if superset.Valid {
		e.SupersetGroupID = &superset.String
	}
	e.UseLbs = useLbs != 0
	return &e, nil
}

// summarize recomputes the denormalized entry summary from the set list:
// set count, truncated integer average of the parseable reps, and the
// maximum parseable weight. Unparseable values are excluded; an entry
// with none yields zeros.
func summarize(sets []SetInput) (count, avgReps int, maxWeight float64) {
	count = len(sets)

	repsSum, repsN := 0, 0
	for _, s := range sets {
		if r, err := strconv.Atoi(strings.TrimSpace(s.Reps)); err == nil {
			repsSum += r
			repsN++
		}
		if w, err := strconv.ParseFloat(strings.TrimSpace(s.Weight), 64); err == nil && w > maxWeight {
			maxWeight = w
		}
	}
	if repsN > 0 {
		avgReps = repsSum / repsN
	}

	return count, avgReps, maxWeight
}

// parseReps converts a raw reps string, defaulting to zero.
func parseReps(s string) int {
	r, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return r
}

// parseWeight converts a raw weight string, defaulting to zero.
func parseWeight(s string) float64 {
	w, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return w
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
