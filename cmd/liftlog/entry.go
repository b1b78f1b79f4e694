// ABOUTME: CLI commands for entry deletion and superset linking.
// ABOUTME: Supports entry delete, superset link/unlink, and last-sets lookup.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage logged entries",
}

var entryDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an entry and its sets",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := repo.ResolveEntryID(args[0])
		if err != nil {
			return fmt.Errorf("entry not found: %s", args[0])
		}

		if err := repo.DeleteEntry(id); err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}

		color.Green("✓ Deleted entry %s", args[0])
		return nil
	},
}

var entryLastCmd = &cobra.Command{
	Use:   "last <exercise-id>",
	Short: "Show the sets from your most recent entry for an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sets, err := repo.LastSetsForExercise(args[0])
		if err != nil {
			return fmt.Errorf("failed to get last sets: %w", err)
		}

		if len(sets) == 0 {
			fmt.Println("No prior entry for that exercise.")
			return nil
		}

		for _, s := range sets {
			line := fmt.Sprintf("%d. %d x %s lbs",
				s.SetNumber, s.Reps, strconv.FormatFloat(s.WeightLbs, 'f', -1, 64))
			if s.ToFailure {
				line += " (to failure)"
			}
			fmt.Println(line)
		}
		return nil
	},
}

var supersetCmd = &cobra.Command{
	Use:   "superset",
	Short: "Link or unlink superset pairs",
	Long: `Mark two entries of the same workout as a superset pair.

Linking gives both entries one freshly generated group id. Unlinking is
one-sided: it clears only the named entry, and the former partner keeps
its group id.`,
}

var supersetLinkCmd = &cobra.Command{
	Use:   "link <entry-a> <entry-b>",
	Short: "Link two entries as a superset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := repo.ResolveEntryID(args[0])
		if err != nil {
			return fmt.Errorf("entry not found: %s", args[0])
		}
		b, err := repo.ResolveEntryID(args[1])
		if err != nil {
			return fmt.Errorf("entry not found: %s", args[1])
		}

		if err := repo.LinkSuperset(a, b); err != nil {
			return fmt.Errorf("failed to link superset: %w", err)
		}

		color.Green("✓ Linked %s and %s", args[0], args[1])
		return nil
	},
}

var supersetUnlinkCmd = &cobra.Command{
	Use:   "unlink <entry>",
	Short: "Remove one entry from its superset pair",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := repo.ResolveEntryID(args[0])
		if err != nil {
			return fmt.Errorf("entry not found: %s", args[0])
		}

		if err := repo.UnlinkSuperset(id); err != nil {
			return fmt.Errorf("failed to unlink superset: %w", err)
		}

		color.Green("✓ Unlinked %s", args[0])
		return nil
	},
}

func init() {
	entryCmd.AddCommand(entryDeleteCmd)
	entryCmd.AddCommand(entryLastCmd)
	rootCmd.AddCommand(entryCmd)

	supersetCmd.AddCommand(supersetLinkCmd)
	supersetCmd.AddCommand(supersetUnlinkCmd)
	rootCmd.AddCommand(supersetCmd)
}
