// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for venvboot.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"venvboot-cli/internal/config"
	"venvboot-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// projectDir is the project root the bootstrap operates on
	projectDir string

	// rootCmd represents the base command when called without any subcommands.
	// A bare invocation runs the full bootstrap, matching the original
	// script's flagless contract.
	rootCmd = &cobra.Command{
		Use:   "venvboot",
		Short: "Bootstrap a Python project's development environment",
		Long: TitleStyle.Render("venvboot") + SubtitleStyle.Render(" - Python environment bootstrapper") + `

venvboot provisions a project's Python development environment in one
sequential pass: it discovers a qualifying interpreter, ensures an
isolated .venv (self-healing corrupt ones), bootstraps pip, installs the
dependency set, seeds defaults.toml from its template, and runs the
pytest suite, exiting with the test runner's status.

` + SubtitleStyle.Render("Examples:") + `
  venvboot                  Bootstrap the current directory and run tests
  venvboot up -C ~/src/tv   Bootstrap another project root
  venvboot doctor           Explain which interpreters qualify
  venvboot config show      Show the effective configuration`,
		RunE: runBootstrap,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <project>/venvboot.toml)")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "C", ".", "project root directory")

	// Add subcommands
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(guideCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration for the current flags.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.NewProvider().Load(ctx, config.LoadOptions{
		ConfigFilePath: cfgFile,
		ProjectDir:     projectDir,
	})
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.UI.Verbose = true
	}
	return cfg, nil
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
