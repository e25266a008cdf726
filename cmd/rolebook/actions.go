// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/rolebook/rolebook/internal/config"
	"github.com/rolebook/rolebook/internal/issue"
	"github.com/rolebook/rolebook/internal/provisioner"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	createCmd = newActionCommand("create", config.ActionCreate,
		"Run the create playbook to provision scenario instances")
	convergeCmd = newActionCommand("converge", config.ActionConverge,
		"Run the converge playbook against the scenario instances")
	destroyCmd = newActionCommand("destroy", config.ActionDestroy,
		"Run the destroy playbook to tear scenario instances down")
	prepareCmd = newActionCommand("prepare", config.ActionPrepare,
		"Run the prepare playbook after instance creation")
	verifyCmd = newActionCommand("verify", config.ActionVerify,
		"Run the verify playbook with the verifier environment")
	cleanupCmd = newActionCommand("cleanup", config.ActionCleanup,
		"Run the cleanup playbook before destroy")
	sideEffectCmd = newActionCommand("side-effect", config.ActionSideEffect,
		"Run the side-effect playbook between converge runs")
	syntaxCmd = newActionCommand("syntax", config.ActionSyntax,
		"Check the converge playbook syntax without executing it")
)

// newActionCommand builds the cobra command for one lifecycle action.
// Every action shares the same shape: load the scenario, build the
// playbook command, execute, translate failures.
func newActionCommand(use string, action config.Action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAction(cmd, action)
		},
	}
}

// runAction executes one lifecycle action end to end. Errors come back
// typed; nothing below Execute terminates the process.
func runAction(cmd *cobra.Command, action config.Action) error {
	cfg, err := config.Load(config.LoadOptions{
		ScenarioFilePath: scenarioFile,
		Action:           action,
		Debug:            debug,
	})
	if err != nil {
		return newServiceError(err, configIssueID(err), formatActionableError(err))
	}

	driver, err := provisioner.DriverForName(cfg.Driver.Name)
	if err != nil {
		return newServiceError(err, issue.ConfigInvalidId, ErrorStyle.Render(err.Error()))
	}

	playbook := provisioner.NewPlaybook(cfg.Provisioner.Playbooks.PlaybookFor(action), cfg, action == config.ActionVerify)
	playbook.Driver = driver
	if action == config.ActionSyntax {
		playbook.AddCLIArg("syntax-check", true)
	}

	stdout, err := playbook.Execute(cmd.Context())
	if err != nil {
		return playbookFailure(err)
	}

	fmt.Fprint(cmd.OutOrStdout(), stdout)
	return nil
}

// playbookFailure maps execution errors to ServiceErrors carrying the
// right issue catalog entry and, for non-zero playbook exits, the
// ExitError the boundary converts into the process exit code.
func playbookFailure(err error) error {
	var pbErr *provisioner.PlaybookError
	if errors.As(err, &pbErr) {
		for _, warning := range pbErr.Warnings {
			log.Warn(WarningStyle.Render(warning))
		}
		styled := ErrorStyle.Render(fmt.Sprintf("ansible-playbook returned exit code %s, command was: ", pbErr.ExitCode)) +
			DimStyle.Render(pbErr.Command)
		return newServiceError(
			&ExitError{Code: pbErr.ExitCode, Err: err},
			issue.PlaybookFailedId,
			styled,
		)
	}

	if errors.Is(err, provisioner.ErrSanityCheck) {
		return newServiceError(err, issue.SanityCheckFailedId, ErrorStyle.Render(err.Error()))
	}

	if errors.Is(err, exec.ErrNotFound) {
		return newServiceError(err, issue.RunnerNotFoundId, ErrorStyle.Render(err.Error()))
	}

	// Spawn failure of another kind: keep exit code 1 via the boundary.
	return newServiceError(err, 0, ErrorStyle.Render(err.Error()))
}

// configIssueID distinguishes "the file would not load" from "the file
// loaded but failed validation".
func configIssueID(err error) issue.Id {
	if errors.Is(err, config.ErrInvalidScenario) {
		return issue.ConfigInvalidId
	}
	return issue.ConfigLoadFailedId
}

// formatActionableError renders an ActionableError with its suggestions;
// other errors fall back to their plain message.
func formatActionableError(err error) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ErrorStyle.Render(ae.Format(debug))
	}
	return ErrorStyle.Render(err.Error())
}
