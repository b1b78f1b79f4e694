// ABOUTME: Repository interface for the lifting log store.
// ABOUTME: The only contract through which other packages read or write rows.
package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/harperreed/liftlog/internal/models"
)

// Repository defines the storage contract for the lifting log. All
// multi-row writes happen behind this interface inside single
// transactions; callers never compose partial writes themselves.
type Repository interface {
	// Workout operations
	CreateWorkout(name string) (*models.Workout, error)
	RenameWorkout(id uuid.UUID, name string) error
	DeleteWorkout(id uuid.UUID) error
	GetWorkout(id uuid.UUID) (*models.Workout, error)
	GetWorkoutWithEntries(id uuid.UUID) (*models.Workout, error)
	ListWorkouts() ([]*models.Workout, error)
	ResolveWorkoutID(idOrPrefix string) (uuid.UUID, error)

	// Entry operations
	SaveEntry(p SaveEntryParams) (*models.Entry, error)
	DeleteEntry(id uuid.UUID) error
	GetEntry(id uuid.UUID) (*models.Entry, error)
	ListEntries(workoutID uuid.UUID) ([]*models.Entry, error)
	LinkSuperset(a, b uuid.UUID) error
	UnlinkSuperset(id uuid.UUID) error
	LastSetsForExercise(exerciseID string) ([]models.Set, error)
	ResolveEntryID(idOrPrefix string) (uuid.UUID, error)

	// Exercise catalog operations
	UpsertExercises(exercises []models.Exercise) error
	GetExercise(id string) (*models.Exercise, error)
	ListExercises() ([]*models.Exercise, error)
	SearchExercises(query string) ([]*models.Exercise, error)
	DeleteExercise(id string) error

	// Live queries
	WatchWorkouts(ctx context.Context) (<-chan []*models.Workout, error)
	WatchEntries(ctx context.Context, workoutID uuid.UUID) (<-chan []*models.Entry, error)
	WatchExercises(ctx context.Context, query string) (<-chan []*models.Exercise, error)

	// Lifecycle
	Recreated() bool
	Close() error
}

var _ Repository = (*DB)(nil)
