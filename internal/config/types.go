// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Config is venvboot's own configuration. Every field has a default
	// reproducing the original bootstrap behavior, so an absent config file
	// is fully supported.
	Config struct {
		// Interpreters is the ordered candidate list for interpreter
		// discovery. The first candidate on PATH whose version qualifies
		// wins.
		Interpreters []string `mapstructure:"interpreters"`

		// MinPython is the minimum interpreter version as "major.minor".
		MinPython string `mapstructure:"min_python"`

		// VenvDir is the isolated environment directory, relative to the
		// project root.
		VenvDir string `mapstructure:"venv_dir"`

		// Packages are the pip requirement specifiers installed in one
		// invocation (unpinned unless a specifier says otherwise).
		Packages []string `mapstructure:"packages"`

		// TomlBackport is the package installed when the interpreter lacks
		// the stdlib tomllib module (Python < 3.11). Empty disables the
		// conditional install.
		TomlBackport string `mapstructure:"toml_backport"`

		// ConfigFile is the project configuration file seeded on first run.
		ConfigFile string `mapstructure:"config_file"`

		// ConfigTemplate is the checked-in template copied verbatim to
		// ConfigFile when the latter is absent.
		ConfigTemplate string `mapstructure:"config_template"`

		// TestsDir is the directory handed to pytest.
		TestsDir string `mapstructure:"tests_dir"`

		// Launcher is a project executable granted 0755 best-effort after
		// setup. Empty disables the stage.
		Launcher string `mapstructure:"launcher"`

		// GetPipURL is the last-resort pip bootstrap script location.
		GetPipURL string `mapstructure:"get_pip_url"`

		// Hooks configures user snippets run between setup and tests.
		Hooks HooksConfig `mapstructure:"hooks"`

		// UI configures output behavior.
		UI UIConfig `mapstructure:"ui"`
	}

	// HooksConfig holds user-provided shell snippets.
	HooksConfig struct {
		// PostSetup snippets run through the embedded POSIX interpreter
		// after dependency installation, with the venv bin on PATH.
		// A failing snippet aborts the run with its exit code.
		PostSetup []string `mapstructure:"post_setup"`
	}

	// UIConfig holds output settings.
	UIConfig struct {
		// Verbose enables diagnostic logging and un-suppresses installer
		// output.
		Verbose bool `mapstructure:"verbose"`
	}

	// InvalidConfigError reports semantic constraints the CUE schema cannot
	// express. It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		Field  string
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

// Unwrap returns ErrInvalidConfig for programmatic detection.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the built-in defaults, matching the original
// bootstrap script's fixed values.
func DefaultConfig() *Config {
	return &Config{
		Interpreters: []string{
			"python3.13", "python3.12", "python3.11", "python3.10",
			"python3", "python",
		},
		MinPython:      "3.10",
		VenvDir:        ".venv",
		Packages:       []string{"textual>=0.89", "psutil", "requests", "pytest"},
		TomlBackport:   "tomli",
		ConfigFile:     "defaults.toml",
		ConfigTemplate: "defaults.toml.example",
		TestsDir:       "tests",
		Launcher:       "tvpn",
		GetPipURL:      "https://bootstrap.pypa.io/get-pip.py",
	}
}

// Validate checks constraints the CUE schema cannot express.
func (c *Config) Validate() error {
	if len(c.Interpreters) == 0 {
		return &InvalidConfigError{Field: "interpreters", Reason: "candidate list must not be empty"}
	}
	if _, _, err := ParseMinVersion(c.MinPython); err != nil {
		return &InvalidConfigError{Field: "min_python", Reason: err.Error()}
	}
	if strings.TrimSpace(c.VenvDir) == "" {
		return &InvalidConfigError{Field: "venv_dir", Reason: "must not be empty"}
	}
	if strings.TrimSpace(c.TestsDir) == "" {
		return &InvalidConfigError{Field: "tests_dir", Reason: "must not be empty"}
	}
	return nil
}

// ParseMinVersion parses a "major.minor" version threshold.
func ParseMinVersion(s string) (major, minor int, err error) {
	majStr, minStr, ok := strings.Cut(s, ".")
	if !ok {
		return 0, 0, fmt.Errorf("version %q must have the form major.minor", s)
	}
	major, err = strconv.Atoi(majStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid major version in %q", s)
	}
	minor, err = strconv.Atoi(minStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minor version in %q", s)
	}
	if major < 0 || minor < 0 {
		return 0, 0, fmt.Errorf("version %q must be non-negative", s)
	}
	return major, minor, nil
}
