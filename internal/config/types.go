// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rolebook/rolebook/internal/runner"
)

const (
	// ActionCreate provisions the scenario instances.
	ActionCreate Action = "create"
	// ActionConverge applies the role under test to the instances.
	ActionConverge Action = "converge"
	// ActionDestroy tears the scenario instances down.
	ActionDestroy Action = "destroy"
	// ActionPrepare runs the preparation playbook after create.
	ActionPrepare Action = "prepare"
	// ActionVerify runs the verification playbook.
	ActionVerify Action = "verify"
	// ActionCleanup runs the cleanup playbook before destroy.
	ActionCleanup Action = "cleanup"
	// ActionSideEffect runs the side-effect playbook between converges.
	ActionSideEffect Action = "side_effect"
	// ActionSyntax runs a playbook syntax check.
	ActionSyntax Action = "syntax"
)

var (
	// ErrInvalidAction is the sentinel error wrapped by InvalidActionError.
	ErrInvalidAction = errors.New("invalid action")
	// ErrInvalidScenario is the sentinel error wrapped by InvalidScenarioError.
	ErrInvalidScenario = errors.New("invalid scenario")
)

type (
	// Action is the scenario lifecycle operation currently being executed.
	Action string

	// InvalidActionError is returned when an Action value is not recognized.
	// It wraps ErrInvalidAction for errors.Is() compatibility.
	InvalidActionError struct {
		Value Action
	}

	// InvalidScenarioError is returned when a Config fails validation.
	// It wraps ErrInvalidScenario and collects field-level errors.
	InvalidScenarioError struct {
		FieldErrors []error
	}

	// Playbooks names the playbook file for each lifecycle action.
	// An empty path means the action has no playbook and is skipped.
	Playbooks struct {
		Create     string `mapstructure:"create"`
		Converge   string `mapstructure:"converge"`
		Destroy    string `mapstructure:"destroy"`
		Prepare    string `mapstructure:"prepare"`
		Verify     string `mapstructure:"verify"`
		Cleanup    string `mapstructure:"cleanup"`
		SideEffect string `mapstructure:"side_effect"`
	}

	// Provisioner configures how playbook commands are built: the global
	// option map flattened into CLI flags, the environment layer, the
	// inventory directory, and provisioner-level raw ansible arguments.
	Provisioner struct {
		// Options holds ansible-playbook options keyed by long flag name
		// (underscores instead of dashes). Values may be string, bool,
		// int, or []string; flattening rules live in the provisioner
		// package. The map is open because ansible-playbook's flag
		// surface is open.
		Options map[string]any `mapstructure:"options"`
		// Env is the environment layer applied to provision-mode runs.
		Env map[string]string `mapstructure:"env"`
		// InventoryDirectory is passed as --inventory so the runner
		// merges every source found under it.
		InventoryDirectory string `mapstructure:"inventory_directory"`
		// AnsibleArgs are raw tokens appended before the playbook path.
		AnsibleArgs []string  `mapstructure:"ansible_args"`
		Playbooks   Playbooks `mapstructure:"playbooks"`
	}

	// Verifier configures verify-mode runs. Its environment is the
	// provisioner-independent base layer plus scenario-file overrides.
	Verifier struct {
		Env          map[string]string `mapstructure:"env"`
		EnvOverrides map[string]string `mapstructure:"env_overrides"`
	}

	// Driver identifies the scenario driver whose sanity checks gate
	// playbook execution. Instance management itself is out of scope.
	Driver struct {
		Name string `mapstructure:"name"`
	}

	// Config is the scenario context handed to the provisioner. It is
	// constructed explicitly and passed down; there is no package-level
	// singleton.
	Config struct {
		// Action is the lifecycle operation being executed. Set by the
		// CLI, not by the scenario file.
		Action Action `mapstructure:"-"`
		// Debug prints command lines and environment overlays.
		Debug bool `mapstructure:"debug"`
		// ScenarioPath is the directory containing the scenario file;
		// it becomes the working directory for playbook runs.
		ScenarioPath string `mapstructure:"-"`
		// AnsibleArgs are scenario-level raw tokens, appended after the
		// provisioner-level ones.
		AnsibleArgs []string    `mapstructure:"ansible_args"`
		Provisioner Provisioner `mapstructure:"provisioner"`
		Verifier    Verifier    `mapstructure:"verifier"`
		Driver      Driver      `mapstructure:"driver"`
	}
)

// Error implements the error interface.
func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action %q (must be one of: create, converge, destroy, prepare, verify, cleanup, side_effect, syntax)", e.Value)
}

// Unwrap returns ErrInvalidAction so callers can use errors.Is.
func (e *InvalidActionError) Unwrap() error { return ErrInvalidAction }

// Error implements the error interface.
func (e *InvalidScenarioError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid scenario: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidScenario plus the field errors so callers can
// match either the sentinel or a specific field failure with errors.Is.
func (e *InvalidScenarioError) Unwrap() []error {
	return append([]error{ErrInvalidScenario}, e.FieldErrors...)
}

// IsValid returns whether the Action is a recognized lifecycle operation,
// and a list of validation errors if it is not.
func (a Action) IsValid() (bool, []error) {
	switch a {
	case ActionCreate, ActionConverge, ActionDestroy, ActionPrepare,
		ActionVerify, ActionCleanup, ActionSideEffect, ActionSyntax:
		return true, nil
	}
	return false, []error{&InvalidActionError{Value: a}}
}

// IsLifecycle reports whether the action is one of the instance lifecycle
// operations (create/destroy) that never receive user-supplied raw
// ansible arguments.
func (a Action) IsLifecycle() bool {
	return a == ActionCreate || a == ActionDestroy
}

// PlaybookFor returns the playbook path configured for the given action.
// An empty string means the action has nothing to run.
func (p Playbooks) PlaybookFor(action Action) string {
	switch action {
	case ActionCreate:
		return p.Create
	case ActionConverge, ActionSyntax:
		return p.Converge
	case ActionDestroy:
		return p.Destroy
	case ActionPrepare:
		return p.Prepare
	case ActionVerify:
		return p.Verify
	case ActionCleanup:
		return p.Cleanup
	case ActionSideEffect:
		return p.SideEffect
	}
	return ""
}

// ProvisionerEnv returns the environment layer for provision-mode runs.
func (c *Config) ProvisionerEnv() map[string]string {
	return runner.MergeEnv(c.Provisioner.Env)
}

// VerifierEnv returns the merged environment for verify-mode runs:
// the verifier base layer with scenario-file overrides applied on top.
func (c *Config) VerifierEnv() map[string]string {
	return runner.MergeEnv(c.Verifier.Env, c.Verifier.EnvOverrides)
}

// Validate checks the Config at construction time so option-presence bugs
// surface before any command is baked.
func (c *Config) Validate() error {
	var fieldErrs []error

	if valid, errs := c.Action.IsValid(); !valid {
		fieldErrs = append(fieldErrs, errs...)
	}
	if whitespaceOnly(c.Provisioner.InventoryDirectory) {
		fieldErrs = append(fieldErrs, fmt.Errorf("provisioner.inventory_directory must not be whitespace-only"))
	}
	for name, path := range map[string]string{
		"create":      c.Provisioner.Playbooks.Create,
		"converge":    c.Provisioner.Playbooks.Converge,
		"destroy":     c.Provisioner.Playbooks.Destroy,
		"prepare":     c.Provisioner.Playbooks.Prepare,
		"verify":      c.Provisioner.Playbooks.Verify,
		"cleanup":     c.Provisioner.Playbooks.Cleanup,
		"side_effect": c.Provisioner.Playbooks.SideEffect,
	} {
		if whitespaceOnly(path) {
			fieldErrs = append(fieldErrs, fmt.Errorf("provisioner.playbooks.%s must not be whitespace-only", name))
		}
	}

	if len(fieldErrs) > 0 {
		return &InvalidScenarioError{FieldErrors: fieldErrs}
	}
	return nil
}

// whitespaceOnly reports whether s is non-empty but trims to nothing.
// The empty string is a valid "not configured" value throughout the config.
func whitespaceOnly(s string) bool {
	return s != "" && strings.TrimSpace(s) == ""
}
