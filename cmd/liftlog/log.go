// ABOUTME: CLI command for logging an exercise entry via the draft engine.
// ABOUTME: Parses REPSxWEIGHT[f] set specs and commits them in one save.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/liftlog/internal/draft"
	"github.com/harperreed/liftlog/internal/models"
)

var (
	logSets    []string
	logNotes   string
	logUseKg   bool
	logEntryID string
)

var logCmd = &cobra.Command{
	Use:   "log <workout-id> <exercise>",
	Short: "Log an exercise with its sets in a workout",
	Long: `Log one exercise entry in a workout.

The exercise argument matches the catalog by id, or by name/muscle group
substring when it resolves to exactly one exercise.

Each --set takes REPSxWEIGHT with an optional 'f' suffix for a set taken
to failure. Weight is in pounds (your stored unit) regardless of the
display preference. Without --set, the entry reuses your last-used sets
for that exercise, or one default set if you have no history.

Examples:
  liftlog log ab12 squat -s 10x135 -s 8x145
  liftlog log ab12 bench-press -s 5x185f --notes "paused reps"
  liftlog log ab12 deadlift --entry e1f2 -s 3x315   # rewrite an entry`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		session := draft.NewSession(repo, cfg.UseLbsDefault())

		if logEntryID != "" {
			if err := startRewrite(session, logEntryID); err != nil {
				return err
			}
		} else {
			if err := startNewEntry(session, args[0], args[1]); err != nil {
				return err
			}
		}

		if len(logSets) > 0 {
			if err := applySetSpecs(session, logSets); err != nil {
				session.Cancel()
				return err
			}
		}
		if logNotes != "" {
			if err := session.SetNotes(logNotes); err != nil {
				return err
			}
		}
		if logUseKg && session.Draft().UseLbs {
			if err := session.ToggleUnits(); err != nil {
				return err
			}
		}

		entry, err := session.Save()
		if err != nil {
			session.Cancel()
			return fmt.Errorf("failed to log entry: %w", err)
		}

		color.Green("✓ Logged %s", exerciseLabel(entry))
		fmt.Printf("  ID: %s\n", entry.ID.String()[:8])
		fmt.Printf("  %d sets, avg %d reps, top set %s lbs\n",
			entry.SetCount, entry.AvgReps,
			strconv.FormatFloat(entry.MaxWeightLbs, 'f', -1, 64))
		return nil
	},
}

// startNewEntry walks the session through exercise picking.
func startNewEntry(session *draft.Session, workoutArg, exerciseArg string) error {
	workoutID, err := repo.ResolveWorkoutID(workoutArg)
	if err != nil {
		return fmt.Errorf("workout not found: %s", workoutArg)
	}

	if err := session.StartEntry(workoutID); err != nil {
		return err
	}

	// Exact catalog id wins; otherwise search by substring.
	if ex, err := repo.GetExercise(exerciseArg); err == nil {
		return session.SelectExercise(ex)
	}

	if err := session.SetFilter(exerciseArg); err != nil {
		return err
	}
	matches, err := session.Exercises()
	if err != nil {
		return fmt.Errorf("failed to search exercises: %w", err)
	}

	switch len(matches) {
	case 0:
		session.Cancel()
		return fmt.Errorf("no exercise matches %q (try 'liftlog exercises sync')", exerciseArg)
	case 1:
		return session.SelectExercise(matches[0])
	default:
		session.Cancel()
		var names []string
		for _, ex := range matches {
			names = append(names, ex.Name)
		}
		return fmt.Errorf("%q is ambiguous: %s", exerciseArg, strings.Join(names, ", "))
	}
}

// startRewrite seeds the session from an existing entry.
func startRewrite(session *draft.Session, entryArg string) error {
	id, err := repo.ResolveEntryID(entryArg)
	if err != nil {
		return fmt.Errorf("entry not found: %s", entryArg)
	}

	entry, err := repo.GetEntry(id)
	if err != nil {
		return fmt.Errorf("failed to load entry: %w", err)
	}

	name := entry.ExerciseID
	if ex, err := repo.GetExercise(entry.ExerciseID); err == nil {
		name = ex.Name
	}
	return session.EditEntry(entry, name)
}

// applySetSpecs replaces the seeded draft sets with the parsed specs.
func applySetSpecs(session *draft.Session, specs []string) error {
	sets := make([]draft.SetEdit, 0, len(specs))
	for _, spec := range specs {
		set, err := parseSetSpec(spec)
		if err != nil {
			return err
		}
		sets = append(sets, set)
	}

	// Trim seeded sets down to one, then overwrite and extend.
	for len(session.Draft().Sets) > 1 {
		if err := session.RemoveSet(len(session.Draft().Sets) - 1); err != nil {
			return err
		}
	}
	for i, set := range sets {
		if i > 0 {
			if err := session.AddSet(); err != nil {
				return err
			}
		}
		if err := session.UpdateSet(i, set); err != nil {
			return err
		}
	}
	return nil
}

// parseSetSpec parses REPSxWEIGHT[f], e.g. "10x135", "8x145f", "12".
func parseSetSpec(spec string) (draft.SetEdit, error) {
	set := draft.SetEdit{Weight: "0"}

	raw := spec
	if strings.HasSuffix(strings.ToLower(raw), "f") {
		set.ToFailure = true
		raw = raw[:len(raw)-1]
	}

	reps, weight, found := strings.Cut(raw, "x")
	set.Reps = reps
	if found {
		set.Weight = weight
	}

	if _, err := strconv.Atoi(set.Reps); err != nil {
		return set, fmt.Errorf("invalid set spec %q: want REPSxWEIGHT[f]", spec)
	}
	if _, err := strconv.ParseFloat(set.Weight, 64); err != nil {
		return set, fmt.Errorf("invalid set spec %q: want REPSxWEIGHT[f]", spec)
	}
	return set, nil
}

// exerciseLabel resolves the exercise display name for output.
func exerciseLabel(entry *models.Entry) string {
	if ex, err := repo.GetExercise(entry.ExerciseID); err == nil {
		return ex.Name
	}
	return entry.ExerciseID
}

func init() {
	logCmd.Flags().StringArrayVarP(&logSets, "set", "s", nil, "Set as REPSxWEIGHT[f], repeatable")
	logCmd.Flags().StringVar(&logNotes, "notes", "", "Entry notes")
	logCmd.Flags().BoolVar(&logUseKg, "kg", false, "Display this entry in kilograms")
	logCmd.Flags().StringVar(&logEntryID, "entry", "", "Existing entry ID to rewrite")
	rootCmd.AddCommand(logCmd)
}
