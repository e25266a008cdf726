// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/rolebook/rolebook/internal/config"
	"github.com/rolebook/rolebook/internal/issue"
	"github.com/rolebook/rolebook/internal/provisioner"
)

func TestPlaybookFailureCarriesExitCode(t *testing.T) {
	t.Parallel()

	pbErr := &provisioner.PlaybookError{
		ExitCode: 4,
		Command:  "ansible-playbook --become converge.yml",
	}

	err := playbookFailure(pbErr)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("playbookFailure() = %v, want ExitError in chain", err)
	}
	if exitErr.Code != 4 {
		t.Errorf("exit code = %d, want 4", exitErr.Code)
	}

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatal("playbookFailure() did not produce a ServiceError")
	}
	if svcErr.IssueID != issue.PlaybookFailedId {
		t.Errorf("issue ID = %d, want PlaybookFailedId", svcErr.IssueID)
	}
	if !strings.Contains(svcErr.StyledMessage, "ansible-playbook --become converge.yml") {
		t.Errorf("styled message missing command line: %q", svcErr.StyledMessage)
	}
	if !strings.Contains(svcErr.StyledMessage, "exit code 4") {
		t.Errorf("styled message missing exit code: %q", svcErr.StyledMessage)
	}
}

func TestPlaybookFailureSanityCheck(t *testing.T) {
	t.Parallel()

	err := playbookFailure(&provisioner.SanityCheckError{
		Driver: "delegated",
		Cause:  errors.New("instance unreachable"),
	})

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatal("playbookFailure() did not produce a ServiceError")
	}
	if svcErr.IssueID != issue.SanityCheckFailedId {
		t.Errorf("issue ID = %d, want SanityCheckFailedId", svcErr.IssueID)
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Error("sanity check failures must not carry a child exit code")
	}
}

func TestPlaybookFailureGeneric(t *testing.T) {
	t.Parallel()

	err := playbookFailure(errors.New("pipe broke"))

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatal("playbookFailure() did not produce a ServiceError")
	}
	if svcErr.IssueID != 0 {
		t.Errorf("issue ID = %d, want none", svcErr.IssueID)
	}
}

func TestConfigIssueID(t *testing.T) {
	t.Parallel()

	validationErr := &config.InvalidScenarioError{
		FieldErrors: []error{errors.New("bad field")},
	}
	if got := configIssueID(validationErr); got != issue.ConfigInvalidId {
		t.Errorf("configIssueID(validation) = %d, want ConfigInvalidId", got)
	}
	if got := configIssueID(errors.New("read failed")); got != issue.ConfigLoadFailedId {
		t.Errorf("configIssueID(load) = %d, want ConfigLoadFailedId", got)
	}
}

func TestExitErrorMessage(t *testing.T) {
	t.Parallel()

	if got := (&ExitError{Code: 3}).Error(); got != "exit status 3" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := &ExitError{Code: 3, Err: errors.New("inner")}
	if got := wrapped.Error(); got != "inner" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(wrapped, wrapped.Err) {
		t.Error("ExitError does not unwrap to its cause")
	}
}
