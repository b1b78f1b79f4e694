// ABOUTME: CLI commands for the cached exercise catalog.
// ABOUTME: Supports list, search, and sync from the remote reference source.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/liftlog/internal/catalog"
	"github.com/harperreed/liftlog/internal/models"
)

var exercisesSyncURL string

var exercisesCmd = &cobra.Command{
	Use:     "exercises",
	Aliases: []string{"ex"},
	Short:   "Browse and refresh the exercise catalog",
	Long: `The exercise catalog is reference data owned by a remote source and
cached locally. Syncing upserts by id: new exercises appear, changed ones
refresh, and local rows are never deleted — an exercise you have logged
stays referenceable even if it disappears remotely.`,
}

var exercisesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the cached catalog by muscle group",
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := repo.ListExercises()
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}
		printExercises(exercises)
		return nil
	},
}

var exercisesSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search by name or muscle group substring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := repo.SearchExercises(args[0])
		if err != nil {
			return fmt.Errorf("failed to search exercises: %w", err)
		}
		printExercises(exercises)
		return nil
	},
}

var exercisesSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the catalog from the remote reference source",
	RunE: func(cmd *cobra.Command, args []string) error {
		url := exercisesSyncURL
		if url == "" {
			url = cfg.ExerciseSourceURL
		}
		if url == "" {
			return fmt.Errorf("no exercise source configured (set exercise_source_url or pass --url)")
		}

		reconciler := catalog.NewReconciler(repo, catalog.NewHTTPSource(url))
		n, err := reconciler.Refresh(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to sync exercises: %w", err)
		}

		color.Green("✓ Refreshed %d exercises", n)
		return nil
	},
}

func printExercises(exercises []*models.Exercise) {
	if len(exercises) == 0 {
		fmt.Println("No exercises found. Try 'liftlog exercises sync'.")
		return
	}

	faint := color.New(color.Faint)
	group := ""
	for _, ex := range exercises {
		if ex.MuscleGroup != group {
			group = ex.MuscleGroup
			fmt.Println(group)
		}
		fmt.Printf("  %s %s\n", faint.Sprint(ex.ID), ex.Name)
	}
}

func init() {
	exercisesSyncCmd.Flags().StringVar(&exercisesSyncURL, "url", "", "Override the configured source URL")

	exercisesCmd.AddCommand(exercisesListCmd)
	exercisesCmd.AddCommand(exercisesSearchCmd)
	exercisesCmd.AddCommand(exercisesSyncCmd)
	rootCmd.AddCommand(exercisesCmd)
}
