// ABOUTME: CLI commands for managing workout sessions.
// ABOUTME: Supports add, list, show, rename, and delete subcommands.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var workoutLimit int

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Manage workout sessions",
	Long: `Track workout sessions.

A workout is one training session. It owns entries (one per exercise
performed), and each entry owns its sets. Deleting a workout removes its
entries and their sets with it.

COMMANDS:

  add      Start a new workout session
  list     List sessions, newest first
  show     View a session with entries and sets
  rename   Rename a session (empty name shows as its date)
  delete   Delete a session and everything it contains`,
}

var workoutAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Start a new workout",
	Long: `Start a new workout session.

The name is optional; unnamed workouts display as their creation date.

Examples:
  liftlog workout add "Leg Day"
  liftlog workout add`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}

		w, err := repo.CreateWorkout(name)
		if err != nil {
			return fmt.Errorf("failed to create workout: %w", err)
		}

		color.Green("✓ Started workout %q", w.DisplayName())
		fmt.Printf("  ID: %s\n", w.ID.String()[:8])
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts, err := repo.ListWorkouts()
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}
		if workoutLimit > 0 && len(workouts) > workoutLimit {
			workouts = workouts[:workoutLimit]
		}

		if len(workouts) == 0 {
			fmt.Println("No workouts found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, w := range workouts {
			fmt.Printf("%s %s %s\n",
				faint.Sprint(w.ID.String()[:8]),
				faint.Sprint(w.Date.Format("2006-01-02 15:04")),
				w.DisplayName())
		}
		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a workout with its entries and sets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := repo.ResolveWorkoutID(args[0])
		if err != nil {
			return fmt.Errorf("workout not found: %s", args[0])
		}

		w, err := repo.GetWorkoutWithEntries(id)
		if err != nil {
			return fmt.Errorf("failed to get workout: %w", err)
		}

		fmt.Printf("%s  (%s)\n", w.DisplayName(), w.Date.Format("2006-01-02 15:04"))
		if len(w.Entries) == 0 {
			fmt.Println("  No entries logged.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, e := range w.Entries {
			name := e.ExerciseID
			if ex, err := repo.GetExercise(e.ExerciseID); err == nil {
				name = ex.Name
			}
			marker := ""
			if e.SupersetGroupID != nil {
				marker = "  ⇄ superset"
			}
			fmt.Printf("  %s %s%s\n", faint.Sprint(e.ID.String()[:8]), name, marker)
			for _, s := range e.Sets {
				line := fmt.Sprintf("    %d. %d x %s lbs",
					s.SetNumber, s.Reps, strconv.FormatFloat(s.WeightLbs, 'f', -1, 64))
				if s.ToFailure {
					line += " (to failure)"
				}
				fmt.Println(line)
			}
			if e.Notes != "" {
				fmt.Printf("    %s\n", faint.Sprint(e.Notes))
			}
		}
		return nil
	},
}

var workoutRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a workout",
	Long: `Rename a workout session.

An empty name is allowed; the workout then displays as its date.

Examples:
  liftlog workout rename ab12 "Push Day"
  liftlog workout rename ab12 ""`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := repo.ResolveWorkoutID(args[0])
		if err != nil {
			return fmt.Errorf("workout not found: %s", args[0])
		}

		if err := repo.RenameWorkout(id, args[1]); err != nil {
			return fmt.Errorf("failed to rename workout: %w", err)
		}

		color.Green("✓ Renamed workout %s", args[0])
		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a workout and all its entries and sets",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := repo.ResolveWorkoutID(args[0])
		if err != nil {
			return fmt.Errorf("workout not found: %s", args[0])
		}

		if err := repo.DeleteWorkout(id); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}

		color.Green("✓ Deleted workout %s", args[0])
		return nil
	},
}

func init() {
	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 20, "Max workouts to list")

	workoutCmd.AddCommand(workoutAddCmd)
	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutShowCmd)
	workoutCmd.AddCommand(workoutRenameCmd)
	workoutCmd.AddCommand(workoutDeleteCmd)
	rootCmd.AddCommand(workoutCmd)
}
