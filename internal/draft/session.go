// ABOUTME: Staging state machine for interactive entry editing.
// ABOUTME: Storage is touched exactly once, by Save; Cancel always discards.
package draft

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/storage"
)

// State is the editing phase of a Session.
type State int

const (
	// Idle means no entry is being edited.
	Idle State = iota
	// PickingExercise means the user is choosing an exercise from the catalog.
	PickingExercise
	// EditingDraft means a draft exists and is being edited.
	EditingDraft
)

var (
	// ErrEditInProgress rejects starting a new edit while one is staged.
	ErrEditInProgress = errors.New("an edit is already in progress")
	// ErrNoDraft rejects draft operations outside EditingDraft.
	ErrNoDraft = errors.New("no draft is being edited")
	// ErrNotPicking rejects catalog operations outside PickingExercise.
	ErrNotPicking = errors.New("not picking an exercise")
	// ErrLastSet rejects removing the only remaining set of a draft.
	ErrLastSet = errors.New("a draft keeps at least one set")
)

// Store is the slice of the repository a Session needs.
type Store interface {
	SearchExercises(query string) ([]*models.Exercise, error)
	LastSetsForExercise(exerciseID string) ([]models.Set, error)
	SaveEntry(p storage.SaveEntryParams) (*models.Entry, error)
}

// Session drives one entry edit at a time. Not safe for concurrent use;
// it models a single interactive editing surface.
type Session struct {
	store         Store
	state         State
	search        string
	draft         *Draft
	defaultUseLbs bool
}

// NewSession creates an idle Session. defaultUseLbs seeds the unit flag
// of new drafts from the caller's current preference.
func NewSession(store Store, defaultUseLbs bool) *Session {
	return &Session{store: store, defaultUseLbs: defaultUseLbs}
}

// State returns the current editing phase.
func (s *Session) State() State {
	return s.state
}

// Draft returns the staged draft, or nil outside EditingDraft.
func (s *Session) Draft() *Draft {
	return s.draft
}

// StartEntry begins a new entry for the workout and moves to
// PickingExercise.
func (s *Session) StartEntry(workoutID uuid.UUID) error {
	if s.state != Idle {
		return ErrEditInProgress
	}
	s.draft = &Draft{WorkoutID: workoutID, UseLbs: s.defaultUseLbs}
	s.search = ""
	s.state = PickingExercise
	return nil
}

// SetFilter updates the live catalog search substring.
func (s *Session) SetFilter(query string) error {
	if s.state != PickingExercise {
		return ErrNotPicking
	}
	s.search = query
	return nil
}

// Exercises returns the catalog filtered by the current search substring;
// a blank filter returns the full list.
func (s *Session) Exercises() ([]*models.Exercise, error) {
	if s.state != PickingExercise {
		return nil, ErrNotPicking
	}
	return s.store.SearchExercises(s.search)
}

// SelectExercise locks in the exercise and moves to EditingDraft. The set
// list seeds from the user's last-used sets for that exercise, or one
// blank set when there is no history.
func (s *Session) SelectExercise(ex *models.Exercise) error {
	if s.state != PickingExercise {
		return ErrNotPicking
	}

	last, err := s.store.LastSetsForExercise(ex.ID)
	if err != nil {
		return fmt.Errorf("seed draft: %w", err)
	}

	s.draft.ExerciseID = ex.ID
	s.draft.ExerciseName = ex.Name
	if len(last) > 0 {
		s.draft.Sets = setsFromModel(last)
	} else {
		s.draft.Sets = []SetEdit{defaultSet()}
	}
	s.state = EditingDraft
	return nil
}

// EditEntry starts editing an existing entry, seeding the draft from its
// current sets and flags.
func (s *Session) EditEntry(entry *models.Entry, exerciseName string) error {
	if s.state != Idle {
		return ErrEditInProgress
	}

	id := entry.ID
	s.draft = &Draft{
		WorkoutID:       entry.WorkoutID,
		ExerciseID:      entry.ExerciseID,
		ExerciseName:    exerciseName,
		Sets:            setsFromModel(entry.Sets),
		Notes:           entry.Notes,
		SupersetGroupID: entry.SupersetGroupID,
		UseLbs:          entry.UseLbs,
		existingID:      &id,
	}
	if len(s.draft.Sets) == 0 {
		s.draft.Sets = []SetEdit{defaultSet()}
	}
	s.state = EditingDraft
	return nil
}

// AddSet appends a copy of the last set with the failure flag reset.
func (s *Session) AddSet() error {
	if s.state != EditingDraft {
		return ErrNoDraft
	}
	next := s.draft.Sets[len(s.draft.Sets)-1]
	next.ToFailure = false
	s.draft.Sets = append(s.draft.Sets, next)
	return nil
}

// RemoveSet drops the set at the given position. Refused when it would
// leave the draft empty.
func (s *Session) RemoveSet(i int) error {
	if s.state != EditingDraft {
		return ErrNoDraft
	}
	if i < 0 || i >= len(s.draft.Sets) {
		return fmt.Errorf("set %d out of range", i)
	}
	if len(s.draft.Sets) == 1 {
		return ErrLastSet
	}
	s.draft.Sets = append(s.draft.Sets[:i], s.draft.Sets[i+1:]...)
	return nil
}

// UpdateSet replaces the set at the given position.
func (s *Session) UpdateSet(i int, set SetEdit) error {
	if s.state != EditingDraft {
		return ErrNoDraft
	}
	if i < 0 || i >= len(s.draft.Sets) {
		return fmt.Errorf("set %d out of range", i)
	}
	s.draft.Sets[i] = set
	return nil
}

// SetNotes replaces the draft notes.
func (s *Session) SetNotes(notes string) error {
	if s.state != EditingDraft {
		return ErrNoDraft
	}
	s.draft.Notes = notes
	return nil
}

// ToggleUnits flips the draft's display unit flag. Already-entered values
// are not converted; conversion belongs to the presentation boundary.
func (s *Session) ToggleUnits() error {
	if s.state != EditingDraft {
		return ErrNoDraft
	}
	s.draft.UseLbs = !s.draft.UseLbs
	return nil
}

// Save validates the draft and commits it through exactly one SaveEntry
// call. On success the session returns to Idle with the draft cleared; on
// failure the draft is preserved so the user can correct it.
func (s *Session) Save() (*models.Entry, error) {
	if s.state != EditingDraft {
		return nil, ErrNoDraft
	}
	if strings.TrimSpace(s.draft.ExerciseID) == "" {
		return nil, storage.ErrNoExercise
	}
	if len(s.draft.Sets) == 0 {
		return nil, storage.ErrNoSets
	}

	entry, err := s.store.SaveEntry(s.draft.params())
	if err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	s.draft = nil
	s.state = Idle
	return entry, nil
}

// Cancel discards the draft unconditionally. No storage call is made.
func (s *Session) Cancel() {
	s.draft = nil
	s.search = ""
	s.state = Idle
}
