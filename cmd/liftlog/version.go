// ABOUTME: Version command for liftlog CLI.
// ABOUTME: Reports the build version string.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the liftlog version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("liftlog %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
