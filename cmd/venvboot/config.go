// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"venvboot-cli/internal/config"

	"github.com/spf13/cobra"
)

// configCmd is the `venvboot config` command tree.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage venvboot configuration",
	Long: `Manage venvboot configuration.

Configuration is resolved in order:
  1. --config flag
  2. <project>/venvboot.toml
  3. ~/.config/venvboot/venvboot.toml (or platform equivalent)
  4. built-in defaults`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			rendered, err := config.GenerateTOML(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show which configuration file is in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.ResolvePath(cmd.Context(), config.LoadOptions{
				ConfigFilePath: cfgFile,
				ProjectDir:     projectDir,
			})
			if err != nil {
				return err
			}
			if path == "" {
				fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render("(built-in defaults, no config file)"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default venvboot.toml into the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := filepath.Join(projectDir, config.ConfigFileName)
			if _, err := os.Stat(path); err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), WarningStyle.Render("config already exists: ")+path)
				return nil
			}
			rendered, err := config.GenerateTOML(config.DefaultConfig())
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("+"), "created "+path)
			return nil
		},
	})
}
