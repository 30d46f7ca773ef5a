// Package cli is the server command line: a root command with a serve
// subcommand driven by a YAML config file and environment overrides.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quizparty",
		Short: "Real-time trivia party game server",
		Long: `quizparty runs the trivia party game engine: room sessions,
question flow, scoring, achievements, and the SSE event stream.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
