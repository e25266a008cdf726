// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rolebook/rolebook/internal/issue"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "rolebook"
	// ScenarioFileName is the scenario file rolebook looks for.
	ScenarioFileName = "rolebook.cue"
)

//go:embed scenario_schema.cue
var scenarioSchema string

// LoadOptions configures scenario loading.
type LoadOptions struct {
	// ScenarioFilePath is an explicit scenario file. When empty, the
	// loader looks for ScenarioFileName in the current directory.
	ScenarioFilePath string
	// Action is the lifecycle operation the CLI is executing.
	Action Action
	// Debug forces debug output regardless of the scenario file.
	Debug bool
}

// DefaultConfig returns the scenario defaults applied under any values
// the scenario file provides.
func DefaultConfig() *Config {
	return &Config{
		Provisioner: Provisioner{
			InventoryDirectory: "inventory",
			Playbooks: Playbooks{
				Create:   "create.yml",
				Converge: "converge.yml",
				Destroy:  "destroy.yml",
				Verify:   "verify.yml",
			},
		},
		Driver: Driver{Name: "default"},
	}
}

// Load reads, validates, and decodes a scenario configuration.
// A missing scenario file is not an error when no explicit path was given:
// defaults apply and the scenario path is the current directory.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("debug", false)
	v.SetDefault("provisioner.inventory_directory", defaults.Provisioner.InventoryDirectory)
	v.SetDefault("provisioner.playbooks.create", defaults.Provisioner.Playbooks.Create)
	v.SetDefault("provisioner.playbooks.converge", defaults.Provisioner.Playbooks.Converge)
	v.SetDefault("provisioner.playbooks.destroy", defaults.Provisioner.Playbooks.Destroy)
	v.SetDefault("provisioner.playbooks.verify", defaults.Provisioner.Playbooks.Verify)
	v.SetDefault("driver.name", defaults.Driver.Name)

	resolvedPath := opts.ScenarioFilePath
	if resolvedPath == "" {
		if fileExists(ScenarioFileName) {
			resolvedPath = ScenarioFileName
		}
	} else if !fileExists(resolvedPath) {
		return nil, issue.NewErrorContext().
			WithOperation("load scenario").
			WithResource(resolvedPath).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Run 'rolebook' from the scenario directory to use the default rolebook.cue").
			Wrap(fmt.Errorf("scenario file not found: %s", resolvedPath)).
			BuildError()
	}

	scenarioPath := "."
	var scenarioMap map[string]any
	if resolvedPath != "" {
		data, err := os.ReadFile(resolvedPath)
		if err != nil {
			return nil, issue.WrapWithOperation(err, "read scenario file")
		}
		scenarioMap, err = decodeScenario(data, resolvedPath)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load scenario").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the values match the scenario schema").
				Wrap(err).
				BuildError()
		}
		if err := v.MergeConfigMap(scenarioMap); err != nil {
			return nil, fmt.Errorf("failed to merge scenario values: %w", err)
		}
		scenarioPath = filepath.Dir(resolvedPath)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}

	// viper lowercases every key it merges, including nested map values.
	// Env var names and option keys are case-sensitive, so the open maps
	// are re-read from the CUE-decoded scenario with their case intact.
	restoreCaseSensitiveMaps(&cfg, scenarioMap)

	cfg.Action = opts.Action
	cfg.ScenarioPath = scenarioPath
	if opts.Debug {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate scenario").
			WithResource(resolvedPath).
			WithSuggestion("Review the field errors above against the scenario schema").
			Wrap(err).
			BuildError()
	}

	return &cfg, nil
}

// restoreCaseSensitiveMaps replaces the open option and environment maps
// on cfg with the values from the CUE-decoded scenario. The structural
// fields keep viper's defaults layering; only the maps whose keys must
// keep their case are taken from the scenario directly.
func restoreCaseSensitiveMaps(cfg *Config, scenario map[string]any) {
	if prov, ok := nestedMap(scenario, "provisioner"); ok {
		if opts, ok := nestedMap(prov, "options"); ok {
			cfg.Provisioner.Options = opts
		}
		if env, ok := nestedStringMap(prov, "env"); ok {
			cfg.Provisioner.Env = env
		}
	}
	if verifier, ok := nestedMap(scenario, "verifier"); ok {
		if env, ok := nestedStringMap(verifier, "env"); ok {
			cfg.Verifier.Env = env
		}
		if env, ok := nestedStringMap(verifier, "env_overrides"); ok {
			cfg.Verifier.EnvOverrides = env
		}
	}
}

func nestedMap(m map[string]any, key string) (map[string]any, bool) {
	sub, ok := m[key].(map[string]any)
	return sub, ok
}

func nestedStringMap(m map[string]any, key string) (map[string]string, bool) {
	sub, ok := m[key].(map[string]any)
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(sub))
	for k, v := range sub {
		s, ok := v.(string)
		if !ok {
			// The schema constrains env values to strings; anything else
			// means the map is not an env layer.
			return nil, false
		}
		out[k] = s
	}
	return out, true
}

// fileExists reports whether path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
