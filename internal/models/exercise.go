// ABOUTME: Exercise reference data synchronized from the remote catalog.
// ABOUTME: Exercises are owned remotely; locally they are only inserted or replaced by id.
package models

// Exercise is one entry in the reference exercise catalog. The id is the
// stable identifier assigned by the remote source, never generated locally.
type Exercise struct {
	ID          string
	Name        string
	MuscleGroup string
}
