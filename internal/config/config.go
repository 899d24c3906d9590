// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"venvboot-cli/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "venvboot"
	// ConfigFileName is the name of the config file (with extension).
	ConfigFileName = "venvboot.toml"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the venvboot configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. Callers that want caching can wrap this function.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	// Set defaults
	defaults := DefaultConfig()
	v.SetDefault("interpreters", defaults.Interpreters)
	v.SetDefault("min_python", defaults.MinPython)
	v.SetDefault("venv_dir", defaults.VenvDir)
	v.SetDefault("packages", defaults.Packages)
	v.SetDefault("toml_backport", defaults.TomlBackport)
	v.SetDefault("config_file", defaults.ConfigFile)
	v.SetDefault("config_template", defaults.ConfigTemplate)
	v.SetDefault("tests_dir", defaults.TestsDir)
	v.SetDefault("launcher", defaults.Launcher)
	v.SetDefault("get_pip_url", defaults.GetPipURL)
	v.SetDefault("hooks.post_setup", defaults.Hooks.PostSetup)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	resolvedPath := ""

	switch {
	// An explicit --config path is used exclusively.
	case opts.ConfigFilePath != "":
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Run 'venvboot config init' to create a default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := loadTOMLIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", wrapLoadError(err, opts.ConfigFilePath)
		}
		resolvedPath = opts.ConfigFilePath

	default:
		// Prefer a per-project file next to the venv being managed.
		projectPath := filepath.Join(opts.ProjectDir, ConfigFileName)
		if opts.ProjectDir != "" && fileExists(projectPath) {
			if err := loadTOMLIntoViper(v, projectPath); err != nil {
				return nil, "", wrapLoadError(err, projectPath)
			}
			resolvedPath = projectPath
			break
		}

		// Fall back to the platform config directory.
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}
		userPath := filepath.Join(cfgDir, ConfigFileName)
		if fileExists(userPath) {
			if err := loadTOMLIntoViper(v, userPath); err != nil {
				return nil, "", wrapLoadError(err, userPath)
			}
			resolvedPath = userPath
		}
		// If no config file found, use defaults (no error).
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate constraints that CUE cannot express (non-empty candidate
	// list, parseable version threshold).
	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Compare against 'venvboot config show' output").
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// wrapLoadError decorates a config read/validation failure with suggestions.
func wrapLoadError(err error, path string) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid TOML syntax").
		WithSuggestion("Verify the configuration values match the expected schema").
		WithSuggestion("See 'venvboot config --help' for configuration options").
		Wrap(err).
		BuildError()
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadTOMLIntoViper parses a TOML file, validates it against the #Config
// CUE schema, and merges its contents into Viper.
//
// The decode-to-map detour (instead of viper.ReadInConfig) keeps schema
// validation in front of Viper: config mistakes fail with a CUE constraint
// message naming the offending field rather than surfacing later as a zero
// value in some stage.
func loadTOMLIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var configMap map[string]any
	if err := toml.Unmarshal(data, &configMap); err != nil {
		return fmt.Errorf("failed to decode TOML: %w", err)
	}

	cuectx := cuecontext.New()

	// Compile the schema
	schemaValue := cuectx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	// Unify the decoded file with the #Config definition to validate it
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	userValue := cuectx.Encode(configMap)
	if userValue.Err() != nil {
		return fmt.Errorf("failed to encode config for validation: %w", userValue.Err())
	}
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return fmt.Errorf("config does not match schema: %w", err)
	}

	// Merge into Viper (preserves defaults for unset fields)
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists reports whether path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
