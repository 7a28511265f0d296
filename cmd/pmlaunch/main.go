package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vertti/pmlaunch/pkg/launch"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(launch.FailureCode)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pmlaunch [manager]",
	Short: "Bootstrap launcher for npm, yarn and pnpm installs",
	Long: "pmlaunch detects which Node package manager is in effect, resolves its CLI\n" +
		"script on disk, composes a child environment with or without private-registry\n" +
		"credentials, runs the install step without a shell, and relays its redacted\n" +
		"output. The child's exit code becomes pmlaunch's exit code.",
	Args:         cobra.MaximumNArgs(1),
	Version:      Version,
	RunE:         runLaunch,
	SilenceUsage: true,
}
