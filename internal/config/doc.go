// SPDX-License-Identifier: MPL-2.0

// Package config handles venvboot's own configuration using Viper with TOML
// as the file format.
//
// Configuration is resolved in order: an explicit --config path, a
// `venvboot.toml` in the project root, the platform config directory
// (~/.config/venvboot/venvboot.toml or XDG/APPDATA equivalent), and finally
// built-in defaults that reproduce the original bootstrap behavior verbatim
// (candidate interpreters, .venv layout, package set, defaults.toml seeding,
// tests directory).
//
// Files are decoded with go-toml and validated against an embedded CUE
// schema (config_schema.cue) before being merged into Viper, so invalid
// configurations fail early with precise messages.
package config
