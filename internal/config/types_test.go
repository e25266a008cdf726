// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestActionIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		action    Action
		wantValid bool
	}{
		{name: "create", action: ActionCreate, wantValid: true},
		{name: "converge", action: ActionConverge, wantValid: true},
		{name: "destroy", action: ActionDestroy, wantValid: true},
		{name: "prepare", action: ActionPrepare, wantValid: true},
		{name: "verify", action: ActionVerify, wantValid: true},
		{name: "cleanup", action: ActionCleanup, wantValid: true},
		{name: "side_effect", action: ActionSideEffect, wantValid: true},
		{name: "syntax", action: ActionSyntax, wantValid: true},
		{name: "empty is invalid", action: Action(""), wantValid: false},
		{name: "unknown is invalid", action: Action("provision"), wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			isValid, errs := tt.action.IsValid()
			if isValid != tt.wantValid {
				t.Errorf("Action(%q).IsValid() = %v, want %v", tt.action, isValid, tt.wantValid)
			}
			if !tt.wantValid && !errors.Is(errs[0], ErrInvalidAction) {
				t.Errorf("error does not wrap ErrInvalidAction: %v", errs[0])
			}
		})
	}
}

func TestActionIsLifecycle(t *testing.T) {
	t.Parallel()

	if !ActionCreate.IsLifecycle() || !ActionDestroy.IsLifecycle() {
		t.Error("create/destroy must be lifecycle actions")
	}
	if ActionConverge.IsLifecycle() || ActionVerify.IsLifecycle() {
		t.Error("converge/verify must not be lifecycle actions")
	}
}

func TestPlaybookFor(t *testing.T) {
	t.Parallel()

	p := Playbooks{
		Create:     "c.yml",
		Converge:   "conv.yml",
		Destroy:    "d.yml",
		Prepare:    "prep.yml",
		Verify:     "v.yml",
		Cleanup:    "clean.yml",
		SideEffect: "side.yml",
	}

	tests := []struct {
		action Action
		want   string
	}{
		{ActionCreate, "c.yml"},
		{ActionConverge, "conv.yml"},
		{ActionSyntax, "conv.yml"}, // syntax checks run against the converge playbook
		{ActionDestroy, "d.yml"},
		{ActionPrepare, "prep.yml"},
		{ActionVerify, "v.yml"},
		{ActionCleanup, "clean.yml"},
		{ActionSideEffect, "side.yml"},
		{Action("bogus"), ""},
	}

	for _, tt := range tests {
		if got := p.PlaybookFor(tt.action); got != tt.want {
			t.Errorf("PlaybookFor(%q) = %q, want %q", tt.action, got, tt.want)
		}
	}
}

func TestVerifierEnvMergesOverrides(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Verifier: Verifier{
			Env:          map[string]string{"A": "base", "B": "base"},
			EnvOverrides: map[string]string{"B": "override", "C": "extra"},
		},
	}

	env := cfg.VerifierEnv()
	if env["A"] != "base" || env["B"] != "override" || env["C"] != "extra" {
		t.Errorf("VerifierEnv() = %v", env)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults with action are valid",
			mutate: func(c *Config) { c.Action = ActionConverge },
		},
		{
			name:    "missing action",
			mutate:  func(c *Config) {},
			wantErr: true,
		},
		{
			name: "whitespace inventory directory",
			mutate: func(c *Config) {
				c.Action = ActionConverge
				c.Provisioner.InventoryDirectory = "   "
			},
			wantErr: true,
		},
		{
			name: "whitespace playbook path",
			mutate: func(c *Config) {
				c.Action = ActionConverge
				c.Provisioner.Playbooks.Verify = "\t"
			},
			wantErr: true,
		},
		{
			name: "empty playbook path is allowed (skip semantics)",
			mutate: func(c *Config) {
				c.Action = ActionCleanup
				c.Provisioner.Playbooks.Cleanup = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidScenario) {
				t.Errorf("error does not wrap ErrInvalidScenario: %v", err)
			}
		})
	}
}
