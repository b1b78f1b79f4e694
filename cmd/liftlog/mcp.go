// ABOUTME: CLI command to run the MCP server over stdio.
// ABOUTME: Exposes the lifting log to MCP-compatible AI assistants.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/liftlog/internal/catalog"
	"github.com/harperreed/liftlog/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol server",
	Long: `Run the MCP server on stdio for use with Claude Desktop or other
MCP-compatible AI assistants. Add to your Claude config:

  {
    "mcpServers": {
      "liftlog": { "command": "liftlog", "args": ["mcp"] }
    }
  }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var reconciler *catalog.Reconciler
		if cfg.ExerciseSourceURL != "" {
			reconciler = catalog.NewReconciler(repo, catalog.NewHTTPSource(cfg.ExerciseSourceURL))
		}

		server, err := mcp.NewServer(repo, reconciler)
		if err != nil {
			return fmt.Errorf("failed to create MCP server: %w", err)
		}

		return server.Serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
