// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"venvboot-cli/internal/execx"
)

// PipOutcome describes how the installer utility came to be (or didn't).
type PipOutcome int

const (
	// PipPresent means pip already existed in the environment.
	PipPresent PipOutcome = iota
	// PipViaEnsurepip means the stdlib ensurepip bootstrap provided it.
	PipViaEnsurepip
	// PipViaGetPip means the fetched get-pip script provided it.
	PipViaGetPip
	// PipMissing means both bootstrap attempts were made and pip is still
	// absent. This is not an error: the install stage will fail naturally.
	PipMissing
)

// String returns a short human-readable label for logging.
func (o PipOutcome) String() string {
	switch o {
	case PipPresent:
		return "present"
	case PipViaEnsurepip:
		return "bootstrapped via ensurepip"
	case PipViaGetPip:
		return "bootstrapped via get-pip"
	default:
		return "missing"
	}
}

// getPipTimeout bounds the bootstrap-script fetch. The original delegated
// timeouts to curl; an HTTP client without one can hang forever.
const getPipTimeout = 60 * time.Second

// PipBootstrapper ensures the installer utility exists inside an
// environment. Both bootstrap paths are best-effort: failures are
// swallowed and only reflected in the returned outcome.
type PipBootstrapper struct {
	runner *execx.Runner
	client *http.Client

	// GetPipURL is the last-resort bootstrap script location.
	GetPipURL string
}

// NewPipBootstrapper creates a PipBootstrapper fetching from getPipURL.
func NewPipBootstrapper(runner *execx.Runner, getPipURL string) *PipBootstrapper {
	return &PipBootstrapper{
		runner:    runner,
		client:    &http.Client{Timeout: getPipTimeout},
		GetPipURL: getPipURL,
	}
}

// Ensure makes pip available in env if it can. It never returns an error:
// per the bootstrap contract the second attempt's success is not verified
// and downstream installation reveals any real failure.
func (b *PipBootstrapper) Ensure(ctx context.Context, env *Env) PipOutcome {
	if env.HasPip() {
		return PipPresent
	}

	// First attempt: the in-box bootstrap, quietly.
	b.runner.RunQuiet(ctx, execx.Invocation{
		Path: env.PythonPath(),
		Args: []string{"-m", "ensurepip", "--upgrade"},
	})
	if env.HasPip() {
		return PipViaEnsurepip
	}

	// Fallback: fetch get-pip.py and pipe it into the venv interpreter.
	script, err := b.fetchScript(ctx)
	if err != nil {
		return PipMissing
	}
	b.runner.RunQuiet(ctx, execx.Invocation{
		Path:  env.PythonPath(),
		Args:  []string{"-"},
		Stdin: bytes.NewReader(script),
	})

	if env.HasPip() {
		return PipViaGetPip
	}
	return PipMissing
}

func (b *PipBootstrapper) fetchScript(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.GetPipURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s fetching %s", resp.Status, b.GetPipURL)
	}
	return io.ReadAll(resp.Body)
}
