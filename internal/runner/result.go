// SPDX-License-Identifier: MPL-2.0

package runner

type (
	// Result holds the outcome of a completed child process: the original
	// argument vector (kept for error reporting), the exit code, and the
	// captured standard output and standard error.
	Result struct {
		// Cmd is the argument vector that was executed.
		Cmd []string
		// ExitCode is the process exit status.
		ExitCode ExitCode
		// Stdout is the captured standard output.
		Stdout string
		// Stderr is the captured standard error.
		Stderr string
	}
)

// Success reports whether the process exited with code 0.
func (r *Result) Success() bool { return r.ExitCode.IsSuccess() }
