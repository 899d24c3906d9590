// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"path/filepath"
	"testing"
)

// FakePythonOptions tunes the behavior of the stub interpreter.
type FakePythonOptions struct {
	// Version is the version printed for --version (e.g. "3.12.1").
	Version string
	// HasTomllib controls whether `-c "import tomllib"` succeeds.
	HasTomllib bool
	// PytestExit is the exit code of `-m pytest`.
	PytestExit int
	// EnsurepipFails makes `-m ensurepip` exit non-zero without creating pip.
	EnsurepipFails bool
}

// FakePython writes a stub python executable named name into dir and
// returns its path. The stub understands the exact invocations the
// bootstrapper issues: --version, -m venv, -m ensurepip, -m pytest and
// -c "import tomllib". `-m venv` replicates the stub (and a stub pip) into
// the target's bin directory so provisioned environments look real.
func FakePython(t testing.TB, dir, name string, opts FakePythonOptions) string {
	t.Helper()
	RequirePOSIX(t)

	tomllibExit := 1
	if opts.HasTomllib {
		tomllibExit = 0
	}
	ensurepipBody := `printf '#!/bin/sh\nexit 0\n' > "$(dirname "$0")/pip"; chmod 755 "$(dirname "$0")/pip"; exit 0`
	if opts.EnsurepipFails {
		ensurepipBody = `exit 1`
	}

	body := fmt.Sprintf(`case "$1" in
--version|-V)
  echo "Python %s"
  exit 0
  ;;
-m)
  case "$2" in
  venv)
    mkdir -p "$3/bin" || exit 1
    cp "$0" "$3/bin/python" || exit 1
    exit 0
    ;;
  ensurepip)
    %s
    ;;
  pytest)
    exit %d
    ;;
  esac
  ;;
-c)
  case "$2" in
  *tomllib*) exit %d ;;
  esac
  exit 0
  ;;
-)
  cat >/dev/null
  exit 0
  ;;
esac
exit 0
`, opts.Version, ensurepipBody, opts.PytestExit, tomllibExit)

	path := filepath.Join(dir, name)
	MustWriteScript(t, path, body)
	return path
}

// FakePip writes a stub pip executable into dir that appends each
// invocation's arguments to logPath (one line per call) and exits with
// exitCode. Tests read logPath to assert on install invocations.
func FakePip(t testing.TB, dir, logPath string, exitCode int) string {
	t.Helper()
	RequirePOSIX(t)

	body := fmt.Sprintf(`echo "$@" >> %q
exit %d
`, logPath, exitCode)

	path := filepath.Join(dir, "pip")
	MustWriteScript(t, path, body)
	return path
}
