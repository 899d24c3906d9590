// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"context"
	"fmt"
	"os"

	"venvboot-cli/internal/execx"
	"venvboot-cli/internal/issue"
)

// ProvisionOutcome describes what Ensure had to do.
type ProvisionOutcome int

const (
	// OutcomeValid means the environment already existed and was usable.
	OutcomeValid ProvisionOutcome = iota
	// OutcomeCreated means the environment was created fresh.
	OutcomeCreated
	// OutcomeRecreated means a corrupt environment was deleted and rebuilt.
	OutcomeRecreated
)

// String returns a short human-readable label for logging.
func (o ProvisionOutcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeRecreated:
		return "recreated"
	default:
		return "valid"
	}
}

// Provisioner creates and repairs isolated environments.
type Provisioner struct {
	runner *execx.Runner
}

// NewProvisioner creates a Provisioner.
func NewProvisioner(runner *execx.Runner) *Provisioner {
	return &Provisioner{runner: runner}
}

// Ensure makes the environment usable with the given base interpreter.
// Three outcomes: absent directory is created fresh; a directory missing
// its interpreter binary is treated as corrupt, deleted recursively and
// recreated; a valid environment is left untouched.
func (p *Provisioner) Ensure(ctx context.Context, interpreterPath string, env *Env) (ProvisionOutcome, error) {
	switch {
	case !env.Exists():
		if err := p.create(ctx, interpreterPath, env); err != nil {
			return OutcomeValid, err
		}
		return OutcomeCreated, nil

	case !env.HasPython():
		if err := os.RemoveAll(env.Dir); err != nil {
			return OutcomeValid, issue.NewErrorContext().
				WithOperation("remove corrupt virtual environment").
				WithResource(env.Dir).
				WithSuggestion("Check directory permissions").
				WithSuggestion("Remove the directory manually and re-run").
				Wrap(err).
				BuildError()
		}
		if err := p.create(ctx, interpreterPath, env); err != nil {
			return OutcomeValid, err
		}
		return OutcomeRecreated, nil

	default:
		return OutcomeValid, nil
	}
}

func (p *Provisioner) create(ctx context.Context, interpreterPath string, env *Env) error {
	res := p.runner.RunQuiet(ctx, execx.Invocation{
		Path: interpreterPath,
		Args: []string{"-m", "venv", env.Dir},
	})
	if !res.Ok() {
		err := res.Error
		if err == nil {
			err = fmt.Errorf("%s -m venv exited with %s", interpreterPath, res.ExitCode)
		}
		return issue.NewErrorContext().
			WithOperation("create virtual environment").
			WithResource(env.Dir).
			WithSuggestion("Check that the venv module is available (python3-venv on Debian/Ubuntu)").
			WithSuggestion("Check free disk space and directory permissions").
			Wrap(err).
			BuildError()
	}
	return nil
}
