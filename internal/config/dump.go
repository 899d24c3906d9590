// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// GenerateTOML renders a Config as a TOML document using the same keys the
// loader reads. Used by 'venvboot config init' and 'venvboot config show'.
func GenerateTOML(cfg *Config) (string, error) {
	doc := map[string]any{
		"interpreters":    cfg.Interpreters,
		"min_python":      cfg.MinPython,
		"venv_dir":        cfg.VenvDir,
		"packages":        cfg.Packages,
		"toml_backport":   cfg.TomlBackport,
		"config_file":     cfg.ConfigFile,
		"config_template": cfg.ConfigTemplate,
		"tests_dir":       cfg.TestsDir,
		"launcher":        cfg.Launcher,
		"get_pip_url":     cfg.GetPipURL,
		"hooks": map[string]any{
			"post_setup": append([]string{}, cfg.Hooks.PostSetup...),
		},
		"ui": map[string]any{
			"verbose": cfg.UI.Verbose,
		},
	}

	out, err := toml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to render config as TOML: %w", err)
	}
	return string(out), nil
}
