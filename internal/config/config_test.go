// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rolebook/rolebook/internal/issue"
)

func writeScenario(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ScenarioFileName)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsWithoutScenarioFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load(LoadOptions{
		ScenarioFilePath: "", // no rolebook.cue in the test working dir
		Action:           ActionConverge,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Provisioner.InventoryDirectory != "inventory" {
		t.Errorf("inventory_directory = %q, want default", cfg.Provisioner.InventoryDirectory)
	}
	if cfg.Provisioner.Playbooks.Converge != "converge.yml" {
		t.Errorf("converge playbook = %q, want default", cfg.Provisioner.Playbooks.Converge)
	}
	if cfg.Driver.Name != "default" {
		t.Errorf("driver = %q, want default", cfg.Driver.Name)
	}
	if cfg.Action != ActionConverge {
		t.Errorf("action = %q", cfg.Action)
	}
}

func TestLoadScenarioFile(t *testing.T) {
	t.Parallel()

	path := writeScenario(t, `
debug: true
ansible_args: ["--limit", "instance"]

provisioner: {
	options: {
		become: true
		skip_tags: "notest"
	}
	env: {ANSIBLE_FORCE_COLOR: "1"}
	inventory_directory: "inv"
	ansible_args: ["--diff"]
	playbooks: {
		converge: "playbooks/converge.yml"
	}
}

verifier: {
	env: {A: "1"}
	env_overrides: {A: "2"}
}

driver: {name: "delegated"}
`)

	cfg, err := Load(LoadOptions{ScenarioFilePath: path, Action: ActionVerify})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.Debug {
		t.Error("debug = false, want true")
	}
	if cfg.Provisioner.InventoryDirectory != "inv" {
		t.Errorf("inventory_directory = %q", cfg.Provisioner.InventoryDirectory)
	}
	if cfg.Provisioner.Playbooks.Converge != "playbooks/converge.yml" {
		t.Errorf("converge playbook = %q", cfg.Provisioner.Playbooks.Converge)
	}
	// Defaults survive under scenario values.
	if cfg.Provisioner.Playbooks.Destroy != "destroy.yml" {
		t.Errorf("destroy playbook = %q, want default", cfg.Provisioner.Playbooks.Destroy)
	}
	if got := cfg.Provisioner.Options["become"]; got != true {
		t.Errorf("options[become] = %v (%T)", got, got)
	}
	if cfg.VerifierEnv()["A"] != "2" {
		t.Errorf("verifier env override not applied: %v", cfg.VerifierEnv())
	}
	if cfg.ScenarioPath != filepath.Dir(path) {
		t.Errorf("scenario path = %q, want %q", cfg.ScenarioPath, filepath.Dir(path))
	}
	if cfg.Driver.Name != "delegated" {
		t.Errorf("driver = %q", cfg.Driver.Name)
	}
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	t.Parallel()

	path := writeScenario(t, `
provisioner: {
	inventory_directory: 42
}
`)

	_, err := Load(LoadOptions{ScenarioFilePath: path, Action: ActionConverge})
	if err == nil {
		t.Fatal("Load() error = nil, want schema violation")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Errorf("error is not actionable: %v", err)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := Load(LoadOptions{
		ScenarioFilePath: filepath.Join(t.TempDir(), "nope.cue"),
		Action:           ActionConverge,
	})
	if err == nil {
		t.Fatal("Load() error = nil, want not-found error")
	}
}

func TestLoadRejectsInvalidAction(t *testing.T) {
	t.Parallel()

	_, err := Load(LoadOptions{Action: Action("bogus")})
	if err == nil {
		t.Fatal("Load() error = nil, want validation error")
	}
	if !errors.Is(err, ErrInvalidAction) {
		t.Errorf("error does not wrap ErrInvalidAction: %v", err)
	}
}

func TestLoadPreservesEnvKeyCase(t *testing.T) {
	t.Parallel()

	path := writeScenario(t, `
provisioner: {
	options: {"SKIP_TAGS": "notest"}
	env: {ANSIBLE_FORCE_COLOR: "1"}
}

verifier: {
	env: {ANSIBLE_STDOUT_CALLBACK: "yaml"}
	env_overrides: {ANSIBLE_VERBOSITY: "2"}
}
`)

	cfg, err := Load(LoadOptions{ScenarioFilePath: path, Action: ActionConverge})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.ProvisionerEnv()["ANSIBLE_FORCE_COLOR"]; got != "1" {
		t.Errorf("provisioner env lost key case: %v", cfg.ProvisionerEnv())
	}
	env := cfg.VerifierEnv()
	if env["ANSIBLE_STDOUT_CALLBACK"] != "yaml" || env["ANSIBLE_VERBOSITY"] != "2" {
		t.Errorf("verifier env lost key case: %v", env)
	}
	if _, ok := cfg.Provisioner.Env["ansible_force_color"]; ok {
		t.Errorf("env key was lowercased: %v", cfg.Provisioner.Env)
	}
	if got := cfg.Provisioner.Options["SKIP_TAGS"]; got != "notest" {
		t.Errorf("option key lost case: %v", cfg.Provisioner.Options)
	}
}

func TestLoadDebugFlagOverridesScenario(t *testing.T) {
	t.Parallel()

	path := writeScenario(t, `debug: false`)

	cfg, err := Load(LoadOptions{ScenarioFilePath: path, Action: ActionConverge, Debug: true})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Debug {
		t.Error("debug flag did not override scenario value")
	}
}
