// ABOUTME: In-memory staged representation of an entry being edited.
// ABOUTME: A draft never touches storage; only Session.Save converts it to rows.
package draft

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/storage"
)

// SetEdit is one set as it appears in the editor. Reps and Weight stay
// raw strings until save so partial input never fails mid-edit.
type SetEdit struct {
	Reps      string
	Weight    string
	ToFailure bool
}

// Draft stages one entry's pending edits. It holds no storage handle;
// committing it is Session.Save's job, and cancelling simply drops it.
type Draft struct {
	WorkoutID       uuid.UUID
	ExerciseID      string
	ExerciseName    string
	Sets            []SetEdit
	Notes           string
	SupersetGroupID *string
	UseLbs          bool

	existingID *uuid.UUID
}

// defaultSet is the single blank set a brand-new draft starts with.
func defaultSet() SetEdit {
	return SetEdit{Reps: "8", Weight: "0"}
}

// setsFromModel converts stored sets into editable form.
func setsFromModel(sets []models.Set) []SetEdit {
	edits := make([]SetEdit, 0, len(sets))
	for _, s := range sets {
		edits = append(edits, SetEdit{
			Reps:      strconv.Itoa(s.Reps),
			Weight:    strconv.FormatFloat(s.WeightLbs, 'f', -1, 64),
			ToFailure: s.ToFailure,
		})
	}
	return edits
}

// params converts the draft into a single storage save call.
func (d *Draft) params() storage.SaveEntryParams {
	sets := make([]storage.SetInput, 0, len(d.Sets))
	for _, s := range d.Sets {
		sets = append(sets, storage.SetInput{
			Reps:      s.Reps,
			Weight:    s.Weight,
			ToFailure: s.ToFailure,
		})
	}
	return storage.SaveEntryParams{
		WorkoutID:       d.WorkoutID,
		ExerciseID:      d.ExerciseID,
		Sets:            sets,
		Notes:           d.Notes,
		SupersetGroupID: d.SupersetGroupID,
		UseLbs:          d.UseLbs,
		ExistingEntryID: d.existingID,
	}
}
