// ABOUTME: Root Cobra command for liftlog CLI.
// ABOUTME: Opens the store via config in PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/liftlog/internal/config"
	"github.com/harperreed/liftlog/internal/storage"
)

var (
	cfg  *config.Config
	repo storage.Repository
)

var rootCmd = &cobra.Command{
	Use:   "liftlog",
	Short: "Offline-first personal lifting log",
	Long: `Liftlog is a local, offline-first log of your lifting sessions.

WHAT IT TRACKS:

  Workouts   training sessions, named or falling back to their date
  Entries    one exercise logged within a workout
  Sets       reps x weight blocks within an entry, optionally to failure

QUICK START:

  $ liftlog workout add "Leg Day"           # Start a session
  $ liftlog log ab12 squat -s 10x135 -s 8x145
  $ liftlog workout show ab12               # See the session
  $ liftlog workout list                    # All sessions, newest first

SUPERSETS:

  $ liftlog superset link e1f2 a3b4   # Mark two entries as back-to-back
  $ liftlog superset unlink e1f2      # One-sided: the partner keeps its link

EXERCISE CATALOG:

  The exercise list is reference data owned by a remote source and cached
  locally. Syncing only adds or refreshes entries, never deletes them.

  $ liftlog exercises sync            # Refresh from the configured source
  $ liftlog exercises search chest    # Search by name or muscle group

MCP INTEGRATION:

  Run 'liftlog mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants.

DATA STORAGE:

  A single SQLite file at ~/.local/share/liftlog/liftlog.db. Weight is
  always stored in pounds; unit preferences only change display.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that don't touch the store
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}

		if repo.Recreated() {
			color.Yellow("⚠ Incompatible database recreated; previous data was lost")
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
