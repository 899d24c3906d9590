// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"venvboot-cli/internal/bootstrap"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// upCmd is the explicit form of the bare invocation.
var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Provision the environment and run the test suite",
	Long: `Provision the project's Python environment and run its tests.

Stages run strictly in order, each gating the next: interpreter
discovery, virtual environment provisioning, pip bootstrap, dependency
installation, config seeding, launcher permission, post-setup hooks,
test execution. The process exits 0 when the tests pass, 1 when no
qualifying interpreter exists, and otherwise with the failing stage's
exit code.`,
	Args: cobra.NoArgs,
	RunE: runBootstrap,
}

// runBootstrap backs both `venvboot` and `venvboot up`.
func runBootstrap(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}

	logger := log.New(os.Stderr)
	if cfg.UI.Verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	pipeline := bootstrap.New(cfg, projectDir)
	pipeline.Reporter = newStageReporter(cmd.OutOrStdout())
	pipeline.Logger = logger

	code, err := pipeline.Run(cmd.Context())
	if code != 0 || err != nil {
		if err != nil {
			fmt.Fprintln(os.Stderr, formatErrorForDisplay(err, cfg.UI.Verbose))
		}
		// The detail has been rendered; hand back only the exit code.
		return &ExitError{Code: code}
	}
	return nil
}
