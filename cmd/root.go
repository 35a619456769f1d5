// Package cmd wires the tidygit subcommands.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tidygit/tidygit/internal/buildinfo"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "tidygit",
	Short: "Small Git/GitHub maintenance tools",
	Long: `tidygit automates routine Git/GitHub maintenance tasks:
signing unsigned commits, rewriting author identity across a branch,
normalizing trailing newlines in touched files, switching a remote between
HTTPS and SSH, and naming feature branches and opening pull requests with
the help of the OpenAI and GitHub APIs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")
	rootCmd.Version = buildinfo.Version()
}

// Run executes the CLI.
func Run() error {
	return rootCmd.Execute()
}
