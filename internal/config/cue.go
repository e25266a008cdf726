// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// maxScenarioFileSize bounds scenario files so a stray large file cannot
// stall the CUE evaluator.
const maxScenarioFileSize = 1 << 20 // 1 MiB

// decodeScenario compiles a scenario file, unifies it with the embedded
// #Scenario schema, and decodes the result into a plain map for viper.
func decodeScenario(data []byte, path string) (map[string]any, error) {
	if len(data) > maxScenarioFileSize {
		return nil, fmt.Errorf("scenario file %s exceeds %d bytes", path, maxScenarioFileSize)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(scenarioSchema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile scenario schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return nil, formatCUEError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Scenario"))
	unified := schema.Unify(userValue)
	// Concrete(false): scenario fields are optional.
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return nil, formatCUEError(err, path)
	}

	var scenarioMap map[string]any
	if err := unified.Decode(&scenarioMap); err != nil {
		return nil, formatCUEError(err, path)
	}

	return scenarioMap, nil
}

// formatCUEError flattens a CUE error list into one error of the form
// "<file>: <field path>: <message>" per line.
func formatCUEError(err error, path string) error {
	if err == nil {
		return nil
	}

	cueErrs := cueerrors.Errors(err)
	if len(cueErrs) == 0 {
		return fmt.Errorf("%s: %w", path, err)
	}

	lines := make([]string, 0, len(cueErrs))
	for _, e := range cueErrs {
		fieldPath := strings.Join(cueerrors.Path(e), ".")
		msg := e.Error()
		// CUE sometimes repeats the path inside the message.
		if fieldPath != "" && strings.HasPrefix(msg, fieldPath) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, fieldPath), ":"))
		}
		if fieldPath != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", fieldPath, msg))
		} else {
			lines = append(lines, msg)
		}
	}

	return fmt.Errorf("%s: %s", path, strings.Join(lines, "\n"))
}
