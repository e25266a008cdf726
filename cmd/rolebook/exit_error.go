// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/rolebook/rolebook/internal/runner"
)

// ExitError signals a specific process exit code without forcing os.Exit
// in RunE handlers. Execute is the only place that terminates the process.
type ExitError struct {
	Code runner.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %s", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}
