// ABOUTME: MCP tool implementations for the lifting log.
// ABOUTME: Exposes workout, entry, superset, and catalog operations.
package mcp

import (
	"context"
	"fmt"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/liftlog/internal/storage"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_workout",
		Description: "Start a new workout session, optionally named",
	}, s.handleCreateWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List workout sessions, most recent first",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a workout with all its entries and sets",
	}, s.handleGetWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "rename_workout",
		Description: "Rename a workout (empty name means unnamed)",
	}, s.handleRenameWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a workout with all its entries and sets",
	}, s.handleDeleteWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_entry",
		Description: "Log an exercise with its sets in a workout, or rewrite an existing entry",
	}, s.handleLogEntry)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_entry",
		Description: "Delete a logged entry and its sets",
	}, s.handleDeleteEntry)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "link_superset",
		Description: "Link two entries of one workout as a superset pair",
	}, s.handleLinkSuperset)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "unlink_superset",
		Description: "Remove one entry from its superset pair",
	}, s.handleUnlinkSuperset)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "last_sets",
		Description: "Get the sets from the most recent entry for an exercise",
	}, s.handleLastSets)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "search_exercises",
		Description: "Search the exercise catalog by name or muscle group",
	}, s.handleSearchExercises)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "sync_exercises",
		Description: "Refresh the exercise catalog from the remote reference source",
	}, s.handleSyncExercises)
}

// Tool input/output types

type createWorkoutInput struct {
	Name string `json:"name,omitempty" jsonschema:"Workout name; empty means unnamed"`
}

type workoutOutput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

type listWorkoutsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type workoutIDInput struct {
	ID string `json:"id" jsonschema:"Workout ID or prefix"`
}

type renameWorkoutInput struct {
	ID   string `json:"id" jsonschema:"Workout ID or prefix"`
	Name string `json:"name" jsonschema:"New name; empty clears it"`
}

type setInput struct {
	Reps      string `json:"reps" jsonschema:"Repetitions as entered"`
	Weight    string `json:"weight,omitempty" jsonschema:"Weight in pounds as entered"`
	ToFailure bool   `json:"to_failure,omitempty" jsonschema:"Whether the set was taken to failure"`
}

type logEntryInput struct {
	WorkoutID  string     `json:"workout_id" jsonschema:"Workout ID or prefix"`
	ExerciseID string     `json:"exercise_id" jsonschema:"Exercise catalog ID"`
	Sets       []setInput `json:"sets" jsonschema:"Ordered list of sets"`
	Notes      string     `json:"notes,omitempty" jsonschema:"Entry notes"`
	UseKg      bool       `json:"use_kg,omitempty" jsonschema:"Display this entry in kilograms"`
	EntryID    string     `json:"entry_id,omitempty" jsonschema:"Existing entry ID to rewrite instead of inserting"`
}

type entryOutput struct {
	ID           string  `json:"id"`
	ExerciseID   string  `json:"exercise_id"`
	SetCount     int     `json:"set_count"`
	AvgReps      int     `json:"avg_reps"`
	MaxWeightLbs float64 `json:"max_weight_lbs"`
	Message      string  `json:"message"`
}

type entryIDInput struct {
	ID string `json:"id" jsonschema:"Entry ID or prefix"`
}

type linkSupersetInput struct {
	EntryA string `json:"entry_a" jsonschema:"First entry ID or prefix"`
	EntryB string `json:"entry_b" jsonschema:"Second entry ID or prefix"`
}

type lastSetsInput struct {
	ExerciseID string `json:"exercise_id" jsonschema:"Exercise catalog ID"`
}

type searchExercisesInput struct {
	Query string `json:"query,omitempty" jsonschema:"Substring matched against name and muscle group; empty lists all"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleCreateWorkout(ctx context.Context, req *mcp.CallToolRequest, input createWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	w, err := s.repo.CreateWorkout(input.Name)
	if err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to create workout: %w", err)
	}

	return nil, workoutOutput{
		ID:      w.ID.String()[:8],
		Name:    w.DisplayName(),
		Date:    w.Date.Format("2006-01-02 15:04"),
		Message: fmt.Sprintf("Started workout %q (ID: %s)", w.DisplayName(), w.ID.String()[:8]),
	}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	workouts, err := s.repo.ListWorkouts()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	if len(workouts) > input.Limit {
		workouts = workouts[:input.Limit]
	}

	if len(workouts) == 0 {
		return nil, map[string]interface{}{"message": "No workouts found."}, nil
	}

	return nil, workouts, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutIDInput) (*mcp.CallToolResult, any, error) {
	id, err := s.repo.ResolveWorkoutID(input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("workout not found: %s", input.ID)
	}

	w, err := s.repo.GetWorkoutWithEntries(id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get workout: %w", err)
	}

	return nil, w, nil
}

func (s *Server) handleRenameWorkout(ctx context.Context, req *mcp.CallToolRequest, input renameWorkoutInput) (*mcp.CallToolResult, simpleOutput, error) {
	id, err := s.repo.ResolveWorkoutID(input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("workout not found: %s", input.ID)
	}

	if err := s.repo.RenameWorkout(id, input.Name); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to rename workout: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Renamed workout %s", input.ID),
	}, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	id, err := s.repo.ResolveWorkoutID(input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("workout not found: %s", input.ID)
	}

	if err := s.repo.DeleteWorkout(id); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete workout: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted workout %s with its entries and sets", input.ID),
	}, nil
}

func (s *Server) handleLogEntry(ctx context.Context, req *mcp.CallToolRequest, input logEntryInput) (*mcp.CallToolResult, entryOutput, error) {
	workoutID, err := s.repo.ResolveWorkoutID(input.WorkoutID)
	if err != nil {
		return nil, entryOutput{}, fmt.Errorf("workout not found: %s", input.WorkoutID)
	}

	params := storage.SaveEntryParams{
		WorkoutID:  workoutID,
		ExerciseID: input.ExerciseID,
		Notes:      input.Notes,
		UseLbs:     !input.UseKg,
	}
	for _, set := range input.Sets {
		params.Sets = append(params.Sets, storage.SetInput{
			Reps:      set.Reps,
			Weight:    set.Weight,
			ToFailure: set.ToFailure,
		})
	}

	if input.EntryID != "" {
		entryID, err := s.repo.ResolveEntryID(input.EntryID)
		if err != nil {
			return nil, entryOutput{}, fmt.Errorf("entry not found: %s", input.EntryID)
		}
		params.ExistingEntryID = &entryID

		// Keep the existing superset link across a rewrite.
		existing, err := s.repo.GetEntry(entryID)
		if err != nil {
			return nil, entryOutput{}, fmt.Errorf("failed to load entry: %w", err)
		}
		params.SupersetGroupID = existing.SupersetGroupID
	}

	entry, err := s.repo.SaveEntry(params)
	if err != nil {
		return nil, entryOutput{}, fmt.Errorf("failed to save entry: %w", err)
	}

	return nil, entryOutput{
		ID:           entry.ID.String()[:8],
		ExerciseID:   entry.ExerciseID,
		SetCount:     entry.SetCount,
		AvgReps:      entry.AvgReps,
		MaxWeightLbs: entry.MaxWeightLbs,
		Message: fmt.Sprintf("Logged %s: %d sets, avg %d reps, top set %s lbs",
			entry.ExerciseID, entry.SetCount, entry.AvgReps,
			strconv.FormatFloat(entry.MaxWeightLbs, 'f', -1, 64)),
	}, nil
}

func (s *Server) handleDeleteEntry(ctx context.Context, req *mcp.CallToolRequest, input entryIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	id, err := s.repo.ResolveEntryID(input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("entry not found: %s", input.ID)
	}

	if err := s.repo.DeleteEntry(id); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete entry: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted entry %s", input.ID),
	}, nil
}

func (s *Server) handleLinkSuperset(ctx context.Context, req *mcp.CallToolRequest, input linkSupersetInput) (*mcp.CallToolResult, simpleOutput, error) {
	a, err := s.repo.ResolveEntryID(input.EntryA)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("entry not found: %s", input.EntryA)
	}
	b, err := s.repo.ResolveEntryID(input.EntryB)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("entry not found: %s", input.EntryB)
	}

	if err := s.repo.LinkSuperset(a, b); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to link superset: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Linked %s and %s as a superset", input.EntryA, input.EntryB),
	}, nil
}

func (s *Server) handleUnlinkSuperset(ctx context.Context, req *mcp.CallToolRequest, input entryIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	id, err := s.repo.ResolveEntryID(input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("entry not found: %s", input.ID)
	}

	if err := s.repo.UnlinkSuperset(id); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to unlink superset: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Unlinked entry %s from its superset", input.ID),
	}, nil
}

func (s *Server) handleLastSets(ctx context.Context, req *mcp.CallToolRequest, input lastSetsInput) (*mcp.CallToolResult, any, error) {
	sets, err := s.repo.LastSetsForExercise(input.ExerciseID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get last sets: %w", err)
	}

	if len(sets) == 0 {
		return nil, map[string]interface{}{"message": "No prior entry for that exercise."}, nil
	}

	return nil, sets, nil
}

func (s *Server) handleSearchExercises(ctx context.Context, req *mcp.CallToolRequest, input searchExercisesInput) (*mcp.CallToolResult, any, error) {
	exercises, err := s.repo.SearchExercises(input.Query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to search exercises: %w", err)
	}

	if len(exercises) == 0 {
		return nil, map[string]interface{}{"message": "No exercises found."}, nil
	}

	return nil, exercises, nil
}

func (s *Server) handleSyncExercises(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, simpleOutput, error) {
	if s.reconciler == nil {
		return nil, simpleOutput{}, fmt.Errorf("no exercise source configured")
	}

	n, err := s.reconciler.Refresh(ctx)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to sync exercises: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Refreshed %d exercises from the reference source", n),
	}, nil
}
