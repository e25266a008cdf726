// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// debug prints command lines and environment overlays before running.
	debug bool
	// scenarioFile allows specifying a custom scenario file.
	scenarioFile string

	// rootCmd represents the base command when called without any subcommands.
	rootCmd = &cobra.Command{
		Use:   "rolebook",
		Short: "A scenario-driven playbook runner for testing Ansible roles",
		Long: TitleStyle.Render("rolebook") + SubtitleStyle.Render(" - A scenario-driven playbook runner") + `

rolebook wraps ansible-playbook for test scenarios: it merges the
scenario's option and environment layers into a single command line,
runs the playbook for the requested lifecycle action, and exits with
the playbook runner's own exit code.

Scenarios are defined in 'rolebook.cue' files. Each lifecycle action
maps to one playbook; actions without a playbook are skipped.

` + SubtitleStyle.Render("Examples:") + `
  rolebook create           Provision the scenario instances
  rolebook converge         Apply the role under test
  rolebook verify           Run the verification playbook
  rolebook destroy          Tear the scenario instances down
  rolebook syntax           Check the converge playbook syntax`,
		PersistentPreRun: func(*cobra.Command, []string) {
			if debug {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "print command lines and environment overlays")
	rootCmd.PersistentFlags().StringVar(&scenarioFile, "scenario", "", "scenario file (default is ./rolebook.cue)")

	// Add subcommands
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(convergeCmd)
	rootCmd.AddCommand(destroyCmd)
	rootCmd.AddCommand(prepareCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(sideEffectCmd)
	rootCmd.AddCommand(syntaxCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command. It is the only place in the program
// that calls os.Exit: typed errors from the layers below are rendered
// here and their exit code applied to the process.
func Execute() {
	err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err == nil {
		return
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		renderServiceError(os.Stderr, svcErr)
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		os.Exit(int(exitErr.Code))
	}
	os.Exit(1)
}
