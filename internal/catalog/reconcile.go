// ABOUTME: Reconciler merging the remote reference list into the local cache.
// ABOUTME: Additive upsert by id; local rows are never deleted here.
package catalog

import (
	"context"
	"fmt"

	"github.com/harperreed/liftlog/internal/models"
)

// Cache is the slice of the repository the reconciler writes through.
type Cache interface {
	UpsertExercises(exercises []models.Exercise) error
}

// Reconciler refreshes the local exercise cache from an ExerciseSource.
type Reconciler struct {
	cache  Cache
	source ExerciseSource
}

// NewReconciler creates a Reconciler over the given cache and source.
func NewReconciler(cache Cache, source ExerciseSource) *Reconciler {
	return &Reconciler{cache: cache, source: source}
}

// Refresh fetches the authoritative list and upserts each record by id in
// one transaction, returning the number of records applied. A fetch or
// write error leaves the cache exactly as it was; retrying is the
// caller's decision. Local rows absent from the fetched list stay put —
// exercises removed remotely linger locally and remain referenceable.
func (r *Reconciler) Refresh(ctx context.Context) (int, error) {
	remote, err := r.source.FetchExercises(ctx)
	if err != nil {
		return 0, fmt.Errorf("refresh exercises: %w", err)
	}

	exercises := make([]models.Exercise, 0, len(remote))
	for _, rec := range remote {
		if rec.ID == "" {
			continue
		}
		exercises = append(exercises, models.Exercise{
			ID:          rec.ID,
			Name:        rec.Name,
			MuscleGroup: rec.MuscleGroup,
		})
	}

	if err := r.cache.UpsertExercises(exercises); err != nil {
		return 0, fmt.Errorf("refresh exercises: %w", err)
	}

	return len(exercises), nil
}
