// SPDX-License-Identifier: MPL-2.0

package execx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Snippet is a POSIX shell snippet executed by the embedded interpreter.
type Snippet struct {
	// Source is the shell source text.
	Source string
	// Name identifies the snippet in parse errors (e.g. "hooks.post_setup[0]").
	Name string
	// Dir is the working directory for the snippet.
	Dir string
	// Env is the full environment for the snippet as KEY=VALUE pairs.
	// Empty means the inherited environment.
	Env []string
	// Stdout and Stderr receive the snippet's output.
	Stdout io.Writer
	Stderr io.Writer
}

// RunSnippet executes a shell snippet with the embedded interpreter and
// reports the outcome as a Result, mapping shell exit statuses the same way
// Runner maps process exit codes.
func RunSnippet(ctx context.Context, sn Snippet) *Result {
	parser := syntax.NewParser()
	prog, err := parser.Parse(strings.NewReader(sn.Source), sn.Name)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to parse snippet %s: %w", sn.Name, err))
	}

	opts := []interp.RunnerOption{
		interp.StdIO(nil, sn.Stdout, sn.Stderr),
	}
	if sn.Dir != "" {
		opts = append(opts, interp.Dir(sn.Dir))
	}
	if len(sn.Env) > 0 {
		opts = append(opts, interp.Env(expand.ListEnviron(sn.Env...)))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to create shell interpreter: %w", err))
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return NewExitCodeResult(ExitCode(exitStatus))
		}
		return NewErrorResult(1, fmt.Errorf("snippet execution failed: %w", err))
	}

	return NewSuccessResult()
}
