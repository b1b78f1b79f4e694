// ABOUTME: Workout model for lifting sessions.
// ABOUTME: A workout owns entries, which own ordered sets.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Workout represents one training session.
type Workout struct {
	ID      uuid.UUID
	Date    time.Time
	Name    string   // empty means unnamed; display falls back to the date
	Entries []*Entry // populated when fetching the full workout
}

// NewWorkout creates a new Workout with generated UUID and current timestamp.
func NewWorkout(name string) *Workout {
	return &Workout{
		ID:   uuid.New(),
		Date: time.Now(),
		Name: name,
	}
}

// DisplayName returns the workout name, falling back to the formatted
// creation date for unnamed workouts.
func (w *Workout) DisplayName() string {
	if w.Name != "" {
		return w.Name
	}
	return w.Date.Format("Mon Jan 2, 2006")
}
