// SPDX-License-Identifier: MPL-2.0

package execx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Invocation describes one external command run.
type Invocation struct {
	// Path is the executable to run (absolute path or a name resolvable
	// via PATH).
	Path string
	// Args are the arguments passed to the executable.
	Args []string
	// Dir is the working directory; empty means the caller's cwd.
	Dir string
	// ExtraEnv are KEY=VALUE pairs appended to the inherited environment.
	ExtraEnv []string
	// Stdin, when non-nil, is piped to the process (used by the get-pip
	// fallback, which feeds a downloaded script into the interpreter).
	Stdin io.Reader
}

// Runner executes external commands. The zero value inherits the parent's
// stdio for Run; tests can redirect Stdout/Stderr.
type Runner struct {
	// Stdout receives the process stdout for Run (default os.Stdout).
	Stdout io.Writer
	// Stderr receives the process stderr for Run (default os.Stderr).
	Stderr io.Writer
}

// NewRunner creates a Runner wired to the parent process stdio.
func NewRunner() *Runner {
	return &Runner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes the invocation with inherited (or configured) stdio.
func (r *Runner) Run(ctx context.Context, inv Invocation) *Result {
	cmd := r.build(ctx, inv)
	cmd.Stdout = r.stdout()
	cmd.Stderr = r.stderr()
	return wait(cmd)
}

// RunQuiet executes the invocation discarding all output. Used for
// best-effort stages where output would only be noise.
func (r *Runner) RunQuiet(ctx context.Context, inv Invocation) *Result {
	cmd := r.build(ctx, inv)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return wait(cmd)
}

// RunCapture executes the invocation capturing stdout and stderr.
func (r *Runner) RunCapture(ctx context.Context, inv Invocation) *Result {
	cmd := r.build(ctx, inv)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	res := wait(cmd)
	res.Output = stdout.String()
	res.ErrOutput = stderr.String()
	return res
}

func (r *Runner) build(ctx context.Context, inv Invocation) *exec.Cmd {
	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	if inv.Dir != "" {
		cmd.Dir = inv.Dir
	}
	if len(inv.ExtraEnv) > 0 {
		cmd.Env = append(os.Environ(), inv.ExtraEnv...)
	}
	if inv.Stdin != nil {
		cmd.Stdin = inv.Stdin
	}
	return cmd
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *Runner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}

// wait runs the prepared command and maps the outcome to a Result. A
// non-zero exit is a normal outcome here, not an error; only failures to
// start or complete the process at all populate Result.Error. A status
// outside the valid range (signal termination reports -1) counts as such
// a failure.
func wait(cmd *exec.Cmd) *Result {
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code := ExitCode(exitErr.ExitCode())
			if ok, _ := code.IsValid(); !ok {
				return NewErrorResult(1, fmt.Errorf("%s terminated abnormally: %w", cmd.Path, err))
			}
			return NewExitCodeResult(code)
		}
		return NewErrorResult(1, fmt.Errorf("failed to execute %s: %w", cmd.Path, err))
	}
	return NewSuccessResult()
}
