// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"os"
	"path/filepath"
	"runtime"
)

// Env locates an isolated environment on disk. The zero value is not
// usable; construct with New.
type Env struct {
	// Dir is the environment root (e.g. "<project>/.venv").
	Dir string
}

// New creates an Env rooted at dir.
func New(dir string) *Env {
	return &Env{Dir: dir}
}

// BinDir returns the directory holding the environment's executables
// ("bin" on POSIX, "Scripts" on Windows).
func (e *Env) BinDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(e.Dir, "Scripts")
	}
	return filepath.Join(e.Dir, "bin")
}

// PythonPath returns the environment's interpreter path.
func (e *Env) PythonPath() string {
	return filepath.Join(e.BinDir(), exeName("python"))
}

// PipPath returns the environment's installer path.
func (e *Env) PipPath() string {
	return filepath.Join(e.BinDir(), exeName("pip"))
}

// Exists reports whether the environment directory exists.
func (e *Env) Exists() bool {
	info, err := os.Stat(e.Dir)
	return err == nil && info.IsDir()
}

// HasPython reports whether the environment contains its interpreter
// binary. An environment without one is considered corrupt.
func (e *Env) HasPython() bool {
	return fileExists(e.PythonPath())
}

// HasPip reports whether the environment contains the installer utility.
func (e *Env) HasPip() bool {
	return fileExists(e.PipPath())
}

func exeName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
