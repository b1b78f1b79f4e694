// ABOUTME: Entry and Set models for exercises logged within a workout.
// ABOUTME: Entries cache summary values recomputed from their sets on every save.
package models

import "github.com/google/uuid"

// Entry is one exercise logged within a workout. The SetCount, AvgReps and
// MaxWeightLbs fields are denormalized caches derived from the entry's sets;
// they are recomputed inside every save, never edited directly.
type Entry struct {
	ID           uuid.UUID
	WorkoutID    uuid.UUID
	ExerciseID   string
	SetCount     int
	AvgReps      int
	MaxWeightLbs float64
	Notes        string

	// SupersetGroupID is shared by the two entries of a superset pair
	// within the same workout. Nil means not linked.
	SupersetGroupID *string

	// UseLbs is a per-entry display preference. Weight is always stored
	// in pounds regardless of this flag.
	UseLbs bool

	Sets []Set // populated when fetching the full entry
}

// Set is one block of repetitions within an entry. Weight is stored in
// pounds; unit conversion happens only at the presentation boundary.
type Set struct {
	ID        uuid.UUID
	EntryID   uuid.UUID
	SetNumber int // 1-based, contiguous within an entry
	Reps      int
	WeightLbs float64
	ToFailure bool
}
