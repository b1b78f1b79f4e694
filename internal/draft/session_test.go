// ABOUTME: Tests for the entry editing state machine.
// ABOUTME: Runs against a real temp-directory store, not a stub.
package draft

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/storage"
)

func setupTest(t *testing.T) (*storage.DB, *models.Workout) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "liftlog.db")
	db, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	err = db.UpsertExercises([]models.Exercise{
		{ID: "squat", Name: "Squat", MuscleGroup: "Legs"},
		{ID: "bench-press", Name: "Bench Press", MuscleGroup: "Chest"},
	})
	if err != nil {
		t.Fatalf("UpsertExercises failed: %v", err)
	}

	w, err := db.CreateWorkout("Leg Day")
	if err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}
	return db, w
}

// pick advances a fresh session to EditingDraft on the given exercise.
func pick(t *testing.T, s *Session, workoutID uuid.UUID, exerciseID string) {
	t.Helper()

	if err := s.StartEntry(workoutID); err != nil {
		t.Fatalf("StartEntry failed: %v", err)
	}
	exercises, err := s.Exercises()
	if err != nil {
		t.Fatalf("Exercises failed: %v", err)
	}
	for _, ex := range exercises {
		if ex.ID == exerciseID {
			if err := s.SelectExercise(ex); err != nil {
				t.Fatalf("SelectExercise failed: %v", err)
			}
			return
		}
	}
	t.Fatalf("exercise %s not in catalog", exerciseID)
}

func TestSessionStatesGateOperations(t *testing.T) {
	db, w := setupTest(t)
	s := NewSession(db, true)

	if s.State() != Idle {
		t.Fatalf("Expected Idle, got %v", s.State())
	}

	// Draft operations are rejected while idle.
	if err := s.AddSet(); !errors.Is(err, ErrNoDraft) {
		t.Errorf("Expected ErrNoDraft from AddSet, got %v", err)
	}
	if _, err := s.Save(); !errors.Is(err, ErrNoDraft) {
		t.Errorf("Expected ErrNoDraft from Save, got %v", err)
	}
	if err := s.SetFilter("x"); !errors.Is(err, ErrNotPicking) {
		t.Errorf("Expected ErrNotPicking from SetFilter, got %v", err)
	}

	if err := s.StartEntry(w.ID); err != nil {
		t.Fatalf("StartEntry failed: %v", err)
	}
	if s.State() != PickingExercise {
		t.Fatalf("Expected PickingExercise, got %v", s.State())
	}

	// Only one edit at a time.
	if err := s.StartEntry(w.ID); !errors.Is(err, ErrEditInProgress) {
		t.Errorf("Expected ErrEditInProgress, got %v", err)
	}
	// Catalog operations only while picking.
	if err := s.AddSet(); !errors.Is(err, ErrNoDraft) {
		t.Errorf("Expected ErrNoDraft while picking, got %v", err)
	}
}

func TestSessionFilterNarrowsCatalog(t *testing.T) {
	db, w := setupTest(t)
	s := NewSession(db, true)

	if err := s.StartEntry(w.ID); err != nil {
		t.Fatalf("StartEntry failed: %v", err)
	}

	exercises, err := s.Exercises()
	if err != nil {
		t.Fatalf("Exercises failed: %v", err)
	}
	if len(exercises) != 2 {
		t.Fatalf("Expected the full catalog, got %d", len(exercises))
	}

	if err := s.SetFilter("bench"); err != nil {
		t.Fatalf("SetFilter failed: %v", err)
	}
	exercises, err = s.Exercises()
	if err != nil {
		t.Fatalf("Exercises failed: %v", err)
	}
	if len(exercises) != 1 || exercises[0].ID != "bench-press" {
		t.Errorf("Expected only bench-press, got %+v", exercises)
	}
}

func TestSelectExerciseSeedsDefaultSet(t *testing.T) {
	db, w := setupTest(t)
	s := NewSession(db, true)
	pick(t, s, w.ID, "squat")

	if s.State() != EditingDraft {
		t.Fatalf("Expected EditingDraft, got %v", s.State())
	}
	d := s.Draft()
	if d.ExerciseID != "squat" || d.ExerciseName != "Squat" {
		t.Errorf("Draft exercise: %s / %s", d.ExerciseID, d.ExerciseName)
	}
	if len(d.Sets) != 1 {
		t.Fatalf("Expected one seeded set, got %d", len(d.Sets))
	}
	if d.Sets[0].Reps != "8" || d.Sets[0].Weight != "0" {
		t.Errorf("Unexpected default set: %+v", d.Sets[0])
	}
	if !d.UseLbs {
		t.Error("Expected the session default unit on a new draft")
	}
}

func TestSelectExerciseSeedsFromHistory(t *testing.T) {
	db, w := setupTest(t)

	_, err := db.SaveEntry(storage.SaveEntryParams{
		WorkoutID:  w.ID,
		ExerciseID: "squat",
		Sets: []storage.SetInput{
			{Reps: "5", Weight: "225"},
			{Reps: "3", Weight: "245", ToFailure: true},
		},
		UseLbs: true,
	})
	if err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}

	s := NewSession(db, true)
	pick(t, s, w.ID, "squat")

	d := s.Draft()
	if len(d.Sets) != 2 {
		t.Fatalf("Expected 2 seeded sets, got %d", len(d.Sets))
	}
	if d.Sets[0].Reps != "5" || d.Sets[0].Weight != "225" {
		t.Errorf("Unexpected first seeded set: %+v", d.Sets[0])
	}
	if d.Sets[1].Weight != "245" || !d.Sets[1].ToFailure {
		t.Errorf("Unexpected second seeded set: %+v", d.Sets[1])
	}
}

func TestAddRemoveUpdateSets(t *testing.T) {
	db, w := setupTest(t)
	s := NewSession(db, true)
	pick(t, s, w.ID, "squat")

	if err := s.UpdateSet(0, SetEdit{Reps: "10", Weight: "135", ToFailure: true}); err != nil {
		t.Fatalf("UpdateSet failed: %v", err)
	}

	// AddSet copies the last set but clears the failure flag.
	if err := s.AddSet(); err != nil {
		t.Fatalf("AddSet failed: %v", err)
	}
	d := s.Draft()
	if len(d.Sets) != 2 {
		t.Fatalf("Expected 2 sets, got %d", len(d.Sets))
	}
	if d.Sets[1].Reps != "10" || d.Sets[1].Weight != "135" {
		t.Errorf("AddSet did not copy the last set: %+v", d.Sets[1])
	}
	if d.Sets[1].ToFailure {
		t.Error("AddSet should reset the failure flag")
	}

	if err := s.RemoveSet(0); err != nil {
		t.Fatalf("RemoveSet failed: %v", err)
	}
	if len(s.Draft().Sets) != 1 {
		t.Fatalf("Expected 1 set after removal, got %d", len(s.Draft().Sets))
	}

	// The last set cannot be removed.
	if err := s.RemoveSet(0); !errors.Is(err, ErrLastSet) {
		t.Errorf("Expected ErrLastSet, got %v", err)
	}
	if err := s.UpdateSet(5, SetEdit{}); err == nil {
		t.Error("Expected an out-of-range error")
	}
}

func TestSaveCommitsOnceAndResets(t *testing.T) {
	db, w := setupTest(t)
	s := NewSession(db, true)
	pick(t, s, w.ID, "squat")

	if err := s.UpdateSet(0, SetEdit{Reps: "10", Weight: "135"}); err != nil {
		t.Fatalf("UpdateSet failed: %v", err)
	}
	if err := s.AddSet(); err != nil {
		t.Fatalf("AddSet failed: %v", err)
	}
	if err := s.UpdateSet(1, SetEdit{Reps: "8", Weight: "145"}); err != nil {
		t.Fatalf("UpdateSet failed: %v", err)
	}
	if err := s.SetNotes("felt strong"); err != nil {
		t.Fatalf("SetNotes failed: %v", err)
	}

	entry, err := s.Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if s.State() != Idle || s.Draft() != nil {
		t.Error("Expected the session reset after save")
	}

	if entry.SetCount != 2 || entry.AvgReps != 9 || entry.MaxWeightLbs != 145 {
		t.Errorf("Unexpected summary: %d/%d/%v",
			entry.SetCount, entry.AvgReps, entry.MaxWeightLbs)
	}
	if entry.Notes != "felt strong" {
		t.Errorf("Unexpected notes: %q", entry.Notes)
	}

	entries, err := db.ListEntries(w.ID)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected exactly one stored entry, got %d", len(entries))
	}
}

func TestSaveFailurePreservesDraft(t *testing.T) {
	db, w := setupTest(t)
	s := NewSession(db, true)
	pick(t, s, w.ID, "squat")

	// Pull the workout out from under the draft so the commit hits a
	// foreign key failure.
	if err := db.DeleteWorkout(w.ID); err != nil {
		t.Fatalf("DeleteWorkout failed: %v", err)
	}

	if _, err := s.Save(); err == nil {
		t.Fatal("Expected the save to fail")
	}
	if s.State() != EditingDraft || s.Draft() == nil {
		t.Error("Expected the draft preserved after a failed save")
	}

	// Nothing was written.
	if n := len(mustListAllEntries(t, db, w.ID)); n != 0 {
		t.Errorf("Expected no entries, got %d", n)
	}
}

func mustListAllEntries(t *testing.T, db *storage.DB, workoutID uuid.UUID) []*models.Entry {
	t.Helper()
	entries, err := db.ListEntries(workoutID)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	return entries
}

func TestCancelDiscardsDraft(t *testing.T) {
	db, w := setupTest(t)
	s := NewSession(db, true)
	pick(t, s, w.ID, "squat")

	if err := s.UpdateSet(0, SetEdit{Reps: "10", Weight: "135"}); err != nil {
		t.Fatalf("UpdateSet failed: %v", err)
	}

	s.Cancel()

	if s.State() != Idle || s.Draft() != nil {
		t.Error("Expected an idle session after cancel")
	}
	entries, err := db.ListEntries(w.ID)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Cancel must not write, got %d entries", len(entries))
	}
}

func TestToggleUnitsDoesNotConvert(t *testing.T) {
	db, w := setupTest(t)
	s := NewSession(db, true)
	pick(t, s, w.ID, "squat")

	if err := s.UpdateSet(0, SetEdit{Reps: "5", Weight: "100"}); err != nil {
		t.Fatalf("UpdateSet failed: %v", err)
	}
	if err := s.ToggleUnits(); err != nil {
		t.Fatalf("ToggleUnits failed: %v", err)
	}

	d := s.Draft()
	if d.UseLbs {
		t.Error("Expected the unit flag flipped")
	}
	if d.Sets[0].Weight != "100" {
		t.Errorf("Toggling units must not convert values, got %q", d.Sets[0].Weight)
	}
}

func TestEditEntrySeedsExistingValues(t *testing.T) {
	db, w := setupTest(t)

	saved, err := db.SaveEntry(storage.SaveEntryParams{
		WorkoutID:  w.ID,
		ExerciseID: "bench-press",
		Sets: []storage.SetInput{
			{Reps: "8", Weight: "185"},
			{Reps: "6", Weight: "195"},
		},
		Notes:  "paused",
		UseLbs: true,
	})
	if err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}

	s := NewSession(db, true)
	if err := s.EditEntry(saved, "Bench Press"); err != nil {
		t.Fatalf("EditEntry failed: %v", err)
	}
	if s.State() != EditingDraft {
		t.Fatalf("Expected EditingDraft, got %v", s.State())
	}

	d := s.Draft()
	if d.ExerciseName != "Bench Press" || d.Notes != "paused" {
		t.Errorf("Draft not seeded: %+v", d)
	}
	if len(d.Sets) != 2 || d.Sets[1].Weight != "195" {
		t.Errorf("Sets not seeded: %+v", d.Sets)
	}

	// Saving the edit rewrites the same entry instead of adding one.
	if err := s.UpdateSet(0, SetEdit{Reps: "8", Weight: "190"}); err != nil {
		t.Fatalf("UpdateSet failed: %v", err)
	}
	entry, err := s.Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if entry.ID != saved.ID {
		t.Errorf("Expected the same entry ID, got %s vs %s", entry.ID, saved.ID)
	}

	entries, err := db.ListEntries(w.ID)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected 1 entry after rewrite, got %d", len(entries))
	}
	if entries[0].MaxWeightLbs != 195 {
		t.Errorf("Expected max weight 195, got %v", entries[0].MaxWeightLbs)
	}
}
