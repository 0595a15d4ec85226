package main

import (
	"resync/internal/version"

	"github.com/spf13/cobra"
)

var (
	// verbosity is the accumulated -v count
	verbosity int
	// quietFlag suppresses all log output
	quietFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "resync",
	Short: "resync - post-merge environment sync advisor",
	Long: `resync inspects what changed when your working tree moved (typically a
post-merge hook firing after git pull) and tells you which environment sync
steps that change requires: dependency installs, schema migrations, or a
single unified sync command when the modern toolchain is present.`,
	Version:       version.Version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.SetVersionTemplate("resync version {{.Version}}\n")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false,
		"Suppress all log output")
}
