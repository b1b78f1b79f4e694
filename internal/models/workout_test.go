// ABOUTME: Tests for workout model constructors and display naming.
package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewWorkout(t *testing.T) {
	w := NewWorkout("Leg Day")
	if w.ID == uuid.Nil {
		t.Error("Expected a generated ID")
	}
	if w.Name != "Leg Day" {
		t.Errorf("Expected name 'Leg Day', got %q", w.Name)
	}
	if time.Since(w.Date) > time.Minute {
		t.Errorf("Expected a current timestamp, got %v", w.Date)
	}
}

func TestDisplayName(t *testing.T) {
	named := &Workout{Name: "Push A"}
	if got := named.DisplayName(); got != "Push A" {
		t.Errorf("Expected the name, got %q", got)
	}

	unnamed := &Workout{Date: time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC)}
	if got := unnamed.DisplayName(); got != "Mon Mar 9, 2026" {
		t.Errorf("Expected the formatted date, got %q", got)
	}
}
