// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrEmptyCommand is returned when an Invocation has no argument vector.
var ErrEmptyCommand = errors.New("empty command")

type (
	// Invocation describes a single child process to run: the argument
	// vector, the environment overlay, the working directory, and whether
	// to emit debug output before spawning.
	Invocation struct {
		// Cmd is the argument vector; Cmd[0] is the executable.
		Cmd []string
		// Env is overlaid on top of the host environment. Keys present
		// here override inherited host variables.
		Env map[string]string
		// Dir is the working directory. Empty means the current directory.
		Dir string
		// Debug prints the command line and the environment overlay
		// before spawning the process.
		Debug bool
	}

	// Runner runs child processes. The interface exists so the provisioner
	// layer can be tested without spawning real processes.
	Runner interface {
		Run(ctx context.Context, inv Invocation) (*Result, error)
	}

	// ExecRunner is the os/exec backed Runner. It blocks until the child
	// exits and captures stdout and stderr. A non-zero exit is not an
	// error at this layer: it is reported through Result.ExitCode. Run
	// only returns an error when the process could not be spawned at all.
	ExecRunner struct {
		// Logger receives debug output. When nil, log.Default() is used.
		Logger *log.Logger
	}
)

// NewExecRunner creates an ExecRunner using the default logger.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the invocation and waits for completion.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) (*Result, error) {
	if len(inv.Cmd) == 0 {
		return nil, ErrEmptyCommand
	}

	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}

	if inv.Debug {
		logger.Debug("running command", "cmd", strings.Join(inv.Cmd, " "), "cwd", inv.Dir)
		for _, kv := range EnvToSlice(inv.Env) {
			logger.Debug("environment overlay", "var", kv)
		}
	}

	cmd := exec.CommandContext(ctx, inv.Cmd[0], inv.Cmd[1:]...)
	if inv.Dir != "" {
		cmd.Dir = inv.Dir
	}
	// Host environment first, overlay after: later entries win on collision.
	cmd.Env = append(os.Environ(), EnvToSlice(inv.Env)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{
		Cmd:    inv.Cmd,
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = ExitCode(exitErr.ExitCode())
			return result, nil
		}
		return nil, fmt.Errorf("failed to run %q: %w", inv.Cmd[0], err)
	}

	return result, nil
}
