// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"context"
	"errors"
	"testing"

	"venvboot-cli/internal/testutil"
)

// fakeCandidates builds a Discoverer whose candidates resolve to stub
// interpreters in a temp directory. Entries with an empty version are left
// absent from the directory so LookPath fails for them.
func fakeCandidates(t *testing.T, minMajor, minMinor int, versions map[string]string, order []string) *Discoverer {
	t.Helper()
	dir := t.TempDir()

	paths := make(map[string]string, len(versions))
	for name, version := range versions {
		if version == "" {
			continue
		}
		paths[name] = testutil.FakePython(t, dir, name, testutil.FakePythonOptions{Version: version})
	}

	d := NewDiscoverer(order, minMajor, minMinor)
	d.lookPath = func(name string) (string, error) {
		if p, ok := paths[name]; ok {
			return p, nil
		}
		return "", errors.New("not found")
	}
	return d
}

func TestDiscoverAcceptsFirstQualifyingCandidate(t *testing.T) {
	testutil.RequirePOSIX(t)

	d := fakeCandidates(t, 3, 10,
		map[string]string{
			"python3.12": "3.12.1",
			"python3.11": "3.11.9",
			"python3":    "3.11.9",
		},
		[]string{"python3.13", "python3.12", "python3.11", "python3"},
	)

	interp, err := d.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}
	if interp.Command != "python3.12" {
		t.Errorf("Command = %q, want python3.12 (first qualifying in order)", interp.Command)
	}
	if interp.Version.String() != "3.12.1" {
		t.Errorf("Version = %s, want 3.12.1", interp.Version)
	}
}

func TestDiscoverSkipsBelowMinimum(t *testing.T) {
	testutil.RequirePOSIX(t)

	d := fakeCandidates(t, 3, 10,
		map[string]string{
			"python3.9": "3.9.18",
			"python3":   "3.10.0",
		},
		[]string{"python3.9", "python3"},
	)

	interp, err := d.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}
	if interp.Command != "python3" {
		t.Errorf("Command = %q, want python3", interp.Command)
	}
}

func TestDiscoverFailsWhenNothingQualifies(t *testing.T) {
	testutil.RequirePOSIX(t)

	d := fakeCandidates(t, 3, 10,
		map[string]string{
			"python3": "3.9.2",
			"python":  "2.7.18",
		},
		[]string{"python3.12", "python3", "python"},
	)

	_, err := d.Discover(context.Background())
	if !errors.Is(err, ErrNoInterpreter) {
		t.Fatalf("Discover() error = %v, want ErrNoInterpreter", err)
	}
}

func TestDiscoverAcceptsGreaterMajor(t *testing.T) {
	testutil.RequirePOSIX(t)

	d := fakeCandidates(t, 3, 10,
		map[string]string{"python": "4.0.0"},
		[]string{"python"},
	)

	interp, err := d.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}
	if interp.Version.Major != 4 {
		t.Errorf("Version = %s, want major 4", interp.Version)
	}
}

func TestExamineReportsEveryCandidate(t *testing.T) {
	testutil.RequirePOSIX(t)

	d := fakeCandidates(t, 3, 10,
		map[string]string{
			"python3": "3.9.1",
			"python":  "3.12.0",
		},
		[]string{"python3.12", "python3", "python"},
	)

	reports := d.Examine(context.Background())
	if len(reports) != 3 {
		t.Fatalf("Examine() returned %d reports, want 3", len(reports))
	}
	if reports[0].Err == nil {
		t.Error("missing candidate should be rejected")
	}
	if reports[1].Err == nil {
		t.Error("below-minimum candidate should be rejected")
	}
	if reports[2].Err != nil {
		t.Errorf("qualifying candidate rejected: %v", reports[2].Err)
	}
}
