// ABOUTME: Tests for live queries: initial snapshots and post-write refreshes.
// ABOUTME: Uses short receive deadlines so a silent watcher fails fast.
package storage

import (
	"context"
	"testing"
	"time"
)

// recv pulls the next snapshot or fails the test after a deadline.
func recv[T any](t *testing.T, ch <-chan []T) []T {
	t.Helper()

	select {
	case snapshot, ok := <-ch:
		if !ok {
			t.Fatal("Watch channel closed unexpectedly")
		}
		return snapshot
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for a snapshot")
		return nil
	}
}

func TestWatchWorkoutsDeliversInitialSnapshot(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.CreateWorkout("Existing"); err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := db.WatchWorkouts(ctx)
	if err != nil {
		t.Fatalf("WatchWorkouts failed: %v", err)
	}

	snapshot := recv(t, ch)
	if len(snapshot) != 1 || snapshot[0].Name != "Existing" {
		t.Errorf("Unexpected initial snapshot: %+v", snapshot)
	}
}

func TestWatchWorkoutsRefreshesAfterWrite(t *testing.T) {
	db := setupTestDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := db.WatchWorkouts(ctx)
	if err != nil {
		t.Fatalf("WatchWorkouts failed: %v", err)
	}
	if got := recv(t, ch); len(got) != 0 {
		t.Fatalf("Expected an empty initial snapshot, got %d workouts", len(got))
	}

	if _, err := db.CreateWorkout("Leg Day"); err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}

	snapshot := recv(t, ch)
	if len(snapshot) != 1 || snapshot[0].Name != "Leg Day" {
		t.Errorf("Expected the new workout in the refresh, got %+v", snapshot)
	}
}

func TestWatchEntriesRefreshesOnSetChange(t *testing.T) {
	db := setupTestDB(t)
	seedExercises(t, db)

	w, err := db.CreateWorkout("Leg Day")
	if err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := db.WatchEntries(ctx, w.ID)
	if err != nil {
		t.Fatalf("WatchEntries failed: %v", err)
	}
	if got := recv(t, ch); len(got) != 0 {
		t.Fatalf("Expected no entries yet, got %d", len(got))
	}

	entry := mustSaveEntry(t, db, SaveEntryParams{
		WorkoutID:  w.ID,
		ExerciseID: "squat",
		Sets:       []SetInput{{Reps: "5", Weight: "225"}},
		UseLbs:     true,
	})

	snapshot := recv(t, ch)
	if len(snapshot) != 1 || snapshot[0].ID != entry.ID {
		t.Fatalf("Expected the saved entry, got %+v", snapshot)
	}
	if len(snapshot[0].Sets) != 1 {
		t.Errorf("Expected sets in the snapshot, got %d", len(snapshot[0].Sets))
	}
}

func TestWatchExercisesFiltered(t *testing.T) {
	db := setupTestDB(t)
	seedExercises(t, db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := db.WatchExercises(ctx, "legs")
	if err != nil {
		t.Fatalf("WatchExercises failed: %v", err)
	}

	snapshot := recv(t, ch)
	if len(snapshot) != 1 || snapshot[0].ID != "squat" {
		t.Errorf("Expected the filtered snapshot, got %+v", snapshot)
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	db := setupTestDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := db.WatchWorkouts(ctx)
	if err != nil {
		t.Fatalf("WatchWorkouts failed: %v", err)
	}
	recv(t, ch)

	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			// A refresh could already be in flight; the close follows.
			if _, ok := <-ch; ok {
				t.Error("Expected the channel closed after cancel")
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for the channel to close")
	}

	// Writes after cancellation still succeed against the store.
	if _, err := db.CreateWorkout("After"); err != nil {
		t.Errorf("CreateWorkout after cancel failed: %v", err)
	}
}
