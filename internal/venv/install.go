// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"context"
	"fmt"

	"venvboot-cli/internal/execx"
	"venvboot-cli/internal/issue"
)

// Installer installs packages into an environment via its pip.
type Installer struct {
	runner *execx.Runner

	// Verbose un-suppresses pip output.
	Verbose bool
}

// NewInstaller creates an Installer.
func NewInstaller(runner *execx.Runner) *Installer {
	return &Installer{runner: runner}
}

// Install runs one pip invocation for all requirement specifiers. A
// non-zero pip exit is strict: it aborts the bootstrap with pip's exit
// code, carried in the returned Result.
func (i *Installer) Install(ctx context.Context, env *Env, specs []string) (*execx.Result, error) {
	if len(specs) == 0 {
		return execx.NewSuccessResult(), nil
	}

	args := []string{"install"}
	if !i.Verbose {
		args = append(args, "--quiet")
	}
	args = append(args, specs...)

	inv := execx.Invocation{Path: env.PipPath(), Args: args}
	var res *execx.Result
	if i.Verbose {
		res = i.runner.Run(ctx, inv)
	} else {
		res = i.runner.RunQuiet(ctx, inv)
	}

	if !res.Ok() {
		err := res.Error
		if err == nil {
			err = fmt.Errorf("pip install exited with %s", res.ExitCode)
		}
		return res, issue.NewErrorContext().
			WithOperation("install dependencies").
			WithResource(env.PipPath()).
			WithSuggestion("Run with --verbose to see pip output").
			WithSuggestion("Check network connectivity and package names").
			Wrap(err).
			BuildError()
	}
	return res, nil
}

// HasTomllib probes whether the environment's interpreter bundles the
// stdlib TOML parser (Python >= 3.11).
func (i *Installer) HasTomllib(ctx context.Context, env *Env) bool {
	res := i.runner.RunQuiet(ctx, execx.Invocation{
		Path: env.PythonPath(),
		Args: []string{"-c", "import tomllib"},
	})
	return res.Ok()
}

// EnsureTomlBackport installs the backport package when the interpreter
// lacks tomllib. The probe-then-install sequence keeps the environment
// identical across interpreter versions. Strict like Install; a failing
// install's Result carries pip's exit code.
func (i *Installer) EnsureTomlBackport(ctx context.Context, env *Env, backport string) (*execx.Result, bool, error) {
	if backport == "" || i.HasTomllib(ctx, env) {
		return execx.NewSuccessResult(), false, nil
	}
	res, err := i.Install(ctx, env, []string{backport})
	if err != nil {
		return res, false, err
	}
	return res, true, nil
}
