// ABOUTME: Versioned schema definition for the lifting log store.
// ABOUTME: Each migration step brings the schema from version N-1 to N.
package storage

// Schema version history:
//   1 - exercises, workouts, workout_entries with FK indices
//   2 - superset_group_id column on workout_entries; workout_sets table + index
//   3 - use_lbs column on workout_entries, existing rows default to pounds
const currentSchemaVersion = 3

// Legacy column names are kept for on-disk compatibility with earlier
// releases: workouts.notes holds the user-facing workout name, and the
// workout_entries summary column weight_kg stores pounds despite its name.
// The model layer names these fields by what they actually hold.
var migrations = []string{
	// v1: baseline relations
	`
	CREATE TABLE IF NOT EXISTS exercises (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		muscle_group TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS workouts (
		id TEXT PRIMARY KEY,
		date INTEGER NOT NULL,
		notes TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS workout_entries (
		id TEXT PRIMARY KEY,
		workout_id TEXT NOT NULL REFERENCES workouts(id) ON DELETE CASCADE,
		exercise_id TEXT NOT NULL REFERENCES exercises(id) ON DELETE RESTRICT,
		sets INTEGER NOT NULL DEFAULT 0,
		reps INTEGER NOT NULL DEFAULT 0,
		weight_kg REAL NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_workout_entries_workout ON workout_entries(workout_id);
	CREATE INDEX IF NOT EXISTS idx_workout_entries_exercise ON workout_entries(exercise_id);
	`,

	// v2: superset linking and per-set rows
	`
	ALTER TABLE workout_entries ADD COLUMN superset_group_id TEXT;

	CREATE TABLE IF NOT EXISTS workout_sets (
		id TEXT PRIMARY KEY,
		entry_id TEXT NOT NULL REFERENCES workout_entries(id) ON DELETE CASCADE,
		set_number INTEGER NOT NULL,
		reps INTEGER NOT NULL DEFAULT 0,
		weight_lbs REAL NOT NULL DEFAULT 0,
		to_failure INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_workout_sets_entry ON workout_sets(entry_id);
	`,

	// v3: per-entry unit preference, existing rows default to pounds
	`
	ALTER TABLE workout_entries ADD COLUMN use_lbs INTEGER NOT NULL DEFAULT 1;
	`,
}
