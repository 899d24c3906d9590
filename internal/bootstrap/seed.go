// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"os"

	"venvboot-cli/internal/issue"
)

// SeedOutcome describes what config seeding did.
type SeedOutcome int

const (
	// SeedExists means the config file was already present; it is never
	// overwritten, regardless of template content.
	SeedExists SeedOutcome = iota
	// SeedCreated means the template was copied verbatim to the config path.
	SeedCreated
	// SeedNoTemplate means neither config nor template exists; nothing to do.
	SeedNoTemplate
)

// String returns a short human-readable label for logging.
func (o SeedOutcome) String() string {
	switch o {
	case SeedCreated:
		return "seeded from template"
	case SeedNoTemplate:
		return "no template"
	default:
		return "already present"
	}
}

// SeedConfig copies templatePath to configPath verbatim when configPath is
// absent and the template exists. No merging, no transformation; once the
// real config exists this is permanently a no-op.
func SeedConfig(configPath, templatePath string) (SeedOutcome, error) {
	if fileExists(configPath) {
		return SeedExists, nil
	}
	if !fileExists(templatePath) {
		return SeedNoTemplate, nil
	}

	data, err := os.ReadFile(templatePath)
	if err != nil {
		return SeedNoTemplate, issue.NewErrorContext().
			WithOperation("read config template").
			WithResource(templatePath).
			Wrap(err).
			BuildError()
	}

	info, err := os.Stat(templatePath)
	if err != nil {
		return SeedNoTemplate, issue.NewErrorContext().
			WithOperation("stat config template").
			WithResource(templatePath).
			Wrap(err).
			BuildError()
	}

	if err := os.WriteFile(configPath, data, info.Mode().Perm()); err != nil {
		return SeedNoTemplate, issue.NewErrorContext().
			WithOperation("seed config file").
			WithResource(configPath).
			WithSuggestion("Check directory permissions").
			Wrap(err).
			BuildError()
	}
	return SeedCreated, nil
}

// MarkExecutable grants 0755 to path, best-effort: a missing file or a
// chmod failure is swallowed and reported only through the return value.
func MarkExecutable(path string) bool {
	if !fileExists(path) {
		return false
	}
	return os.Chmod(path, 0o755) == nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
