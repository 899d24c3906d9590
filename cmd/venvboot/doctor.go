// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"venvboot-cli/internal/config"
	"venvboot-cli/internal/pyenv"

	"github.com/spf13/cobra"
)

// doctorCmd explains interpreter discovery without touching the project.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Explain which interpreter candidates qualify",
	Long: `Inspect every configured interpreter candidate in order and report
its path, version and verdict. Exits 1 when none qualifies, mirroring
the bootstrap's fatal discovery stage.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}

		minMajor, minMinor, err := config.ParseMinVersion(cfg.MinPython)
		if err != nil {
			return err
		}

		reports := pyenv.NewDiscoverer(cfg.Interpreters, minMajor, minMinor).Examine(cmd.Context())

		out := cmd.OutOrStdout()
		qualified := false
		for _, report := range reports {
			switch {
			case report.Err == nil && !qualified:
				qualified = true
				fmt.Fprintln(out, SuccessStyle.Render("+"), fmt.Sprintf("%-12s %s (%s) selected", report.Command, report.Version, report.Path))
			case report.Err == nil:
				fmt.Fprintln(out, SubtitleStyle.Render("·"), fmt.Sprintf("%-12s %s (%s) qualifies, not first", report.Command, report.Version, report.Path))
			default:
				fmt.Fprintln(out, ErrorStyle.Render("✗"), fmt.Sprintf("%-12s %v", report.Command, report.Err))
			}
		}

		if !qualified {
			fmt.Fprintln(out, WarningStyle.Render(fmt.Sprintf("no interpreter satisfies the %s minimum", cfg.MinPython)))
			return &ExitError{Code: 1}
		}
		return nil
	},
}
