// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"venvboot-cli/internal/execx"
)

// ErrNoInterpreter is returned when no candidate qualifies. It is the only
// fatal condition of the bootstrap's first stage.
var ErrNoInterpreter = errors.New("no suitable Python interpreter found")

type (
	// Interpreter is a discovered, version-qualified interpreter.
	Interpreter struct {
		// Command is the candidate name that matched (e.g. "python3.12").
		Command string
		// Path is the resolved absolute path.
		Path string
		// Version is the reported interpreter version.
		Version Version
	}

	// CandidateReport is the per-candidate outcome of an Examine pass,
	// used by `venvboot doctor`.
	CandidateReport struct {
		Command string
		Path    string
		Version Version
		// Err explains why the candidate was rejected; nil means it
		// qualifies.
		Err error
	}

	// Discoverer walks candidates in order and accepts the first
	// qualifying interpreter.
	Discoverer struct {
		// Candidates is the ordered command-name list.
		Candidates []string
		// MinMajor/MinMinor form the version threshold.
		MinMajor int
		MinMinor int

		runner   *execx.Runner
		lookPath func(string) (string, error)
	}
)

// NewDiscoverer creates a Discoverer over the given ordered candidates.
func NewDiscoverer(candidates []string, minMajor, minMinor int) *Discoverer {
	return &Discoverer{
		Candidates: candidates,
		MinMajor:   minMajor,
		MinMinor:   minMinor,
		runner:     execx.NewRunner(),
		lookPath:   exec.LookPath,
	}
}

// Discover returns the first qualifying interpreter, or ErrNoInterpreter
// when every candidate is absent, unqueryable or below the threshold.
func (d *Discoverer) Discover(ctx context.Context) (*Interpreter, error) {
	for _, report := range d.Examine(ctx) {
		if report.Err == nil {
			return &Interpreter{
				Command: report.Command,
				Path:    report.Path,
				Version: report.Version,
			}, nil
		}
	}
	return nil, fmt.Errorf("%w (need >= %d.%d)", ErrNoInterpreter, d.MinMajor, d.MinMinor)
}

// Examine inspects every candidate and reports each verdict in candidate
// order. Discovery is Examine with first-match semantics.
func (d *Discoverer) Examine(ctx context.Context) []CandidateReport {
	reports := make([]CandidateReport, 0, len(d.Candidates))
	for _, cand := range d.Candidates {
		reports = append(reports, d.examineCandidate(ctx, cand))
	}
	return reports
}

func (d *Discoverer) examineCandidate(ctx context.Context, cand string) CandidateReport {
	report := CandidateReport{Command: cand}

	path, err := d.lookPath(cand)
	if err != nil {
		report.Err = fmt.Errorf("not found on PATH")
		return report
	}
	report.Path = path

	version, err := d.queryVersion(ctx, path)
	if err != nil {
		report.Err = err
		return report
	}
	report.Version = version

	if !version.Satisfies(d.MinMajor, d.MinMinor) {
		report.Err = fmt.Errorf("version %s is below minimum %d.%d", version, d.MinMajor, d.MinMinor)
	}
	return report
}

// queryVersion runs `<path> --version` and parses the result. Old
// interpreters printed the version on stderr, so both streams are checked.
func (d *Discoverer) queryVersion(ctx context.Context, path string) (Version, error) {
	res := d.runner.RunCapture(ctx, execx.Invocation{
		Path: path,
		Args: []string{"--version"},
	})
	if !res.Ok() {
		if res.Error != nil {
			return Version{}, fmt.Errorf("version query failed: %w", res.Error)
		}
		return Version{}, fmt.Errorf("version query exited with %s", res.ExitCode)
	}

	out := res.Output
	if strings.TrimSpace(out) == "" {
		out = res.ErrOutput
	}
	return ParseVersionOutput(out)
}
