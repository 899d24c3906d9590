// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"venvboot-cli/internal/execx"
	"venvboot-cli/internal/issue"
	"venvboot-cli/internal/testutil"
)

func quietRunner() *execx.Runner {
	return &execx.Runner{Stdout: nil, Stderr: nil}
}

func TestEnsureCreatesAbsentEnvironment(t *testing.T) {
	testutil.RequirePOSIX(t)

	dir := t.TempDir()
	python := testutil.FakePython(t, dir, "python3", testutil.FakePythonOptions{Version: "3.12.1"})
	env := New(filepath.Join(dir, ".venv"))

	outcome, err := NewProvisioner(quietRunner()).Ensure(context.Background(), python, env)
	if err != nil {
		t.Fatalf("Ensure() failed: %v", err)
	}
	if outcome != OutcomeCreated {
		t.Errorf("outcome = %s, want created", outcome)
	}
	if !env.HasPython() {
		t.Error("created environment should contain its interpreter binary")
	}
}

func TestEnsureRecreatesCorruptEnvironment(t *testing.T) {
	testutil.RequirePOSIX(t)

	dir := t.TempDir()
	python := testutil.FakePython(t, dir, "python3", testutil.FakePythonOptions{Version: "3.12.1"})

	// Environment directory exists but has no interpreter binary, plus a
	// leftover file that must not survive the rebuild.
	venvDir := filepath.Join(dir, ".venv")
	leftover := filepath.Join(venvDir, "lib", "stale.txt")
	testutil.MustWriteFile(t, leftover, "stale", 0o644)

	env := New(venvDir)
	outcome, err := NewProvisioner(quietRunner()).Ensure(context.Background(), python, env)
	if err != nil {
		t.Fatalf("Ensure() failed: %v", err)
	}
	if outcome != OutcomeRecreated {
		t.Errorf("outcome = %s, want recreated", outcome)
	}
	if !env.HasPython() {
		t.Error("recreated environment should contain its interpreter binary")
	}
	if _, statErr := os.Stat(leftover); !os.IsNotExist(statErr) {
		t.Error("corrupt environment contents should be wiped before recreation")
	}
}

func TestEnsureLeavesValidEnvironmentUntouched(t *testing.T) {
	testutil.RequirePOSIX(t)

	dir := t.TempDir()
	python := testutil.FakePython(t, dir, "python3", testutil.FakePythonOptions{Version: "3.12.1"})

	venvDir := filepath.Join(dir, ".venv")
	env := New(venvDir)
	p := NewProvisioner(quietRunner())
	if _, err := p.Ensure(context.Background(), python, env); err != nil {
		t.Fatalf("first Ensure() failed: %v", err)
	}

	// Marker file inside a valid environment must survive a second run.
	marker := filepath.Join(venvDir, "marker")
	testutil.MustWriteFile(t, marker, "keep", 0o644)

	outcome, err := p.Ensure(context.Background(), python, env)
	if err != nil {
		t.Fatalf("second Ensure() failed: %v", err)
	}
	if outcome != OutcomeValid {
		t.Errorf("outcome = %s, want valid", outcome)
	}
	if got := testutil.MustReadFile(t, marker); got != "keep" {
		t.Errorf("marker content = %q, valid environment must not be rebuilt", got)
	}
}

func TestEnsureReportsCreationFailure(t *testing.T) {
	testutil.RequirePOSIX(t)

	dir := t.TempDir()
	// Interpreter that fails venv creation.
	python := filepath.Join(dir, "python3")
	testutil.MustWriteScript(t, python, `case "$1" in -m) exit 1;; esac; exit 0`)

	env := New(filepath.Join(dir, ".venv"))
	_, err := NewProvisioner(quietRunner()).Ensure(context.Background(), python, env)
	if err == nil {
		t.Fatal("expected error when venv creation fails")
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Errorf("expected ActionableError, got %T", err)
	}
}

func TestEnvLayout(t *testing.T) {
	env := New("/project/.venv")
	if env.BinDir() == "" || env.PythonPath() == "" || env.PipPath() == "" {
		t.Fatal("env paths should be non-empty")
	}
	if filepath.Dir(env.PythonPath()) != env.BinDir() {
		t.Error("interpreter should live in the bin directory")
	}
}
