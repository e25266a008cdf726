// SPDX-License-Identifier: MPL-2.0

package provisioner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rolebook/rolebook/internal/config"
	"github.com/rolebook/rolebook/internal/runner"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/syntax"
)

// playbookRunnerCommand is the executable every baked command starts with.
const playbookRunnerCommand = "ansible-playbook"

// ErrAlreadyBaked is returned when an environment override arrives after
// the command has been baked: the environment is fixed at bake time.
var ErrAlreadyBaked = errors.New("command already baked")

type (
	// Playbook builds and executes one ansible-playbook invocation.
	// The zero value is not usable; construct with NewPlaybook. A
	// Playbook is not safe for concurrent use.
	Playbook struct {
		// Runner executes the baked command. Defaults to an ExecRunner.
		Runner runner.Runner
		// Driver supplies the pre-flight sanity checks. Defaults to the
		// delegated driver.
		Driver Driver
		// Logger receives skip warnings. Defaults to log.Default().
		Logger *log.Logger

		playbook string
		cfg      *config.Config
		cli      map[string]any
		env      map[string]string
		baked    []string
	}

	// PlaybookError reports a playbook run that ended with a non-zero
	// exit code. The CLI boundary translates it into the process exit
	// code; nothing below that boundary terminates the process.
	PlaybookError struct {
		// ExitCode is the child's exit status.
		ExitCode runner.ExitCode
		// Command is the shell-quoted command line that was executed.
		Command string
		// Warnings are the runtime warnings recorded during the run.
		Warnings []string
	}
)

// Error implements the error interface.
func (e *PlaybookError) Error() string {
	return fmt.Sprintf("ansible-playbook returned exit code %s, command was: %s", e.ExitCode, e.Command)
}

// NewPlaybook sets up an ansible-playbook invocation for the given
// playbook path. When verify is true the verifier environment layers are
// selected; otherwise the provisioner environment applies. An empty
// playbook path is allowed and makes Execute a logged no-op.
func NewPlaybook(playbookPath string, cfg *config.Config, verify bool) *Playbook {
	var env map[string]string
	if verify {
		env = cfg.VerifierEnv()
	} else {
		env = cfg.ProvisionerEnv()
	}

	return &Playbook{
		playbook: playbookPath,
		cfg:      cfg,
		cli:      make(map[string]any),
		env:      env,
	}
}

// Bake constructs the argument vector once. Subsequent calls are no-ops.
//
// The inventory directory is passed as a directory so the runner merges
// every inventory source found under it. The become option is stripped
// for any playbook other than converge, so privilege escalation never
// leaks into auxiliary runs. User-supplied raw ansible arguments are
// withheld from the create and destroy actions: those playbooks are not
// always user-provided, and custom arguments can break instance
// lifecycle management. Users who need different behavior there supply
// custom create/destroy playbooks instead.
func (p *Playbook) Bake() {
	if p.baked != nil || p.playbook == "" {
		return
	}

	p.AddCLIArg("inventory", p.cfg.Provisioner.InventoryDirectory)
	options := mergeOptions(p.cfg.Provisioner.Options, p.cli)
	verbosity, options := popVerbosity(options)

	if p.playbook != p.cfg.Provisioner.Playbooks.Converge {
		if truthy(options["become"]) {
			delete(options, "become")
		}
	}

	var extraArgs []string
	if !p.cfg.Action.IsLifecycle() {
		extraArgs = append(extraArgs, p.cfg.Provisioner.AnsibleArgs...)
		extraArgs = append(extraArgs, p.cfg.AnsibleArgs...)
	}

	cmd := []string{playbookRunnerCommand}
	cmd = append(cmd, flattenOptions(options)...)
	cmd = append(cmd, verbosity...)
	cmd = append(cmd, extraArgs...)
	cmd = append(cmd, p.playbook) // must always go last
	p.baked = cmd
}

// BakedCommand returns a copy of the baked argument vector, or nil when
// Bake has not run (or there is no playbook to run).
func (p *Playbook) BakedCommand() []string {
	if p.baked == nil {
		return nil
	}
	out := make([]string, len(p.baked))
	copy(out, p.baked)
	return out
}

// Execute runs the baked command and returns its captured stdout.
//
// Without a playbook path this is a logged no-op, not an error: some
// actions legitimately have nothing to run. A non-zero exit yields a
// *PlaybookError carrying the exit code, the shell-quoted command line,
// and any warnings recorded during the run.
func (p *Playbook) Execute(ctx context.Context) (string, error) {
	if p.baked == nil {
		p.Bake()
	}

	if p.playbook == "" {
		p.logger().Warn("skipping, action has no playbook", "action", p.cfg.Action)
		return "", nil
	}

	warns := runner.NewWarningRecorder()
	if err := p.driver().SanityChecks(warns); err != nil {
		return "", &SanityCheckError{Driver: p.driver().Name(), Cause: err}
	}

	result, err := p.runner().Run(ctx, runner.Invocation{
		Cmd:   p.baked,
		Env:   p.env,
		Dir:   p.cfg.ScenarioPath,
		Debug: p.cfg.Debug,
	})
	if err != nil {
		return "", fmt.Errorf("failed to start %s: %w", playbookRunnerCommand, err)
	}

	if !result.Success() {
		if stderr := strings.TrimSpace(result.Stderr); stderr != "" {
			warns.Record(stderr)
		}
		return "", &PlaybookError{
			ExitCode: result.ExitCode,
			Command:  ShellJoin(result.Cmd),
			Warnings: warns.Warnings(),
		}
	}

	return result.Stdout, nil
}

// AddCLIArg stores a local option override. Falsy values (empty string,
// false, zero, nil, empty slice) are ignored; truthy values override the
// same-named scenario option at bake time.
func (p *Playbook) AddCLIArg(name string, value any) {
	if truthy(value) {
		p.cli[name] = value
	}
}

// AddEnvArg sets an environment variable for the run, even to an empty
// value. It fails once the command has been baked: the environment is
// part of the invocation from that point on.
func (p *Playbook) AddEnvArg(name, value string) error {
	if p.baked != nil {
		return ErrAlreadyBaked
	}
	p.env[name] = value
	return nil
}

// ShellJoin renders an argument vector as a single shell-safe string,
// quoting any token a POSIX shell would reinterpret.
func ShellJoin(cmd []string) string {
	quoted := make([]string, 0, len(cmd))
	for _, token := range cmd {
		q, err := syntax.Quote(token, syntax.LangBash)
		if err != nil {
			// Token contains bytes no shell string can represent.
			q = fmt.Sprintf("%q", token)
		}
		quoted = append(quoted, q)
	}
	return strings.Join(quoted, " ")
}

func (p *Playbook) runner() runner.Runner {
	if p.Runner != nil {
		return p.Runner
	}
	return runner.NewExecRunner()
}

func (p *Playbook) driver() Driver {
	if p.Driver != nil {
		return p.Driver
	}
	return &DelegatedDriver{}
}

func (p *Playbook) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.Default()
}
