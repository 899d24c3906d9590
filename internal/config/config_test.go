// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"venvboot-cli/internal/issue"
	"venvboot-cli/internal/testutil"
)

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Interpreters) == 0 {
		t.Fatal("expected default interpreter candidates")
	}
	if cfg.Interpreters[0] != "python3.13" {
		t.Errorf("first candidate = %q, want python3.13", cfg.Interpreters[0])
	}
	if cfg.MinPython != "3.10" {
		t.Errorf("MinPython = %q, want 3.10", cfg.MinPython)
	}
	if cfg.VenvDir != ".venv" {
		t.Errorf("VenvDir = %q, want .venv", cfg.VenvDir)
	}
	if cfg.ConfigFile != "defaults.toml" || cfg.ConfigTemplate != "defaults.toml.example" {
		t.Errorf("seeding paths = %q / %q", cfg.ConfigFile, cfg.ConfigTemplate)
	}
	if cfg.TomlBackport != "tomli" {
		t.Errorf("TomlBackport = %q, want tomli", cfg.TomlBackport)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadUsesDefaultsWhenNoFileExists(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	t.Cleanup(Reset)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ProjectDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() with no config file should use defaults, got %v", err)
	}
	if cfg.VenvDir != ".venv" {
		t.Errorf("VenvDir = %q, want default .venv", cfg.VenvDir)
	}
}

func TestLoadProjectFileOverridesDefaults(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	t.Cleanup(Reset)

	projectDir := t.TempDir()
	writeConfigFile(t, projectDir, `
venv_dir = "env"
packages = ["pytest"]

[ui]
verbose = true
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ProjectDir: projectDir})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.VenvDir != "env" {
		t.Errorf("VenvDir = %q, want env", cfg.VenvDir)
	}
	if len(cfg.Packages) != 1 || cfg.Packages[0] != "pytest" {
		t.Errorf("Packages = %v, want [pytest]", cfg.Packages)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose should be true from project file")
	}
	// Unset fields keep defaults
	if cfg.MinPython != "3.10" {
		t.Errorf("MinPython = %q, want default 3.10", cfg.MinPython)
	}
}

func TestLoadConfigDirFallback(t *testing.T) {
	cfgDir := t.TempDir()
	SetConfigDirOverride(cfgDir)
	t.Cleanup(Reset)

	writeConfigFile(t, cfgDir, `tests_dir = "spec"`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ProjectDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.TestsDir != "spec" {
		t.Errorf("TestsDir = %q, want spec", cfg.TestsDir)
	}
}

func TestLoadProjectFileWinsOverConfigDir(t *testing.T) {
	cfgDir := t.TempDir()
	SetConfigDirOverride(cfgDir)
	t.Cleanup(Reset)
	writeConfigFile(t, cfgDir, `tests_dir = "from-config-dir"`)

	projectDir := t.TempDir()
	writeConfigFile(t, projectDir, `tests_dir = "from-project"`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ProjectDir: projectDir})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.TestsDir != "from-project" {
		t.Errorf("TestsDir = %q, want from-project", cfg.TestsDir)
	}
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	_, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "nope.toml"),
	})
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Errorf("expected ActionableError, got %T", err)
	}
}

func TestLoadRejectsInvalidTOML(t *testing.T) {
	projectDir := t.TempDir()
	writeConfigFile(t, projectDir, `venv_dir = [broken`)

	_, err := NewProvider().Load(context.Background(), LoadOptions{ProjectDir: projectDir})
	if err == nil {
		t.Fatal("expected error for malformed TOML")
	}
}

func TestLoadRejectsSchemaViolation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"wrong type", `venv_dir = 42`},
		{"bad version format", `min_python = "three.ten"`},
		{"non-https bootstrap url", `get_pip_url = "http://bootstrap.pypa.io/get-pip.py"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projectDir := t.TempDir()
			writeConfigFile(t, projectDir, tt.content)

			_, err := NewProvider().Load(context.Background(), LoadOptions{ProjectDir: projectDir})
			if err == nil {
				t.Fatal("expected schema validation error")
			}
		})
	}
}

func TestLoadRejectsEmptyInterpreterList(t *testing.T) {
	projectDir := t.TempDir()
	writeConfigFile(t, projectDir, `interpreters = []`)

	_, err := NewProvider().Load(context.Background(), LoadOptions{ProjectDir: projectDir})
	if err == nil {
		t.Fatal("expected validation error for empty candidate list")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
	}
}

func TestLoadCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewProvider().Load(ctx, LoadOptions{}); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestParseMinVersion(t *testing.T) {
	tests := []struct {
		in      string
		major   int
		minor   int
		wantErr bool
	}{
		{"3.10", 3, 10, false},
		{"4.0", 4, 0, false},
		{"3", 0, 0, true},
		{"3.x", 0, 0, true},
		{"-1.2", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		major, minor, err := ParseMinVersion(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMinVersion(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && (major != tt.major || minor != tt.minor) {
			t.Errorf("ParseMinVersion(%q) = %d.%d, want %d.%d", tt.in, major, minor, tt.major, tt.minor)
		}
	}
}

func TestGenerateTOMLRoundTrips(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Hooks.PostSetup = []string{"echo done"}

	rendered, err := GenerateTOML(cfg)
	if err != nil {
		t.Fatalf("GenerateTOML() failed: %v", err)
	}
	if !strings.Contains(rendered, `venv_dir = '.venv'`) && !strings.Contains(rendered, `venv_dir = ".venv"`) {
		t.Errorf("rendered TOML missing venv_dir:\n%s", rendered)
	}

	// The generated document must load back cleanly through the validator.
	projectDir := t.TempDir()
	path := filepath.Join(projectDir, ConfigFileName)
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		t.Fatalf("failed to write rendered config: %v", err)
	}
	SetConfigDirOverride(t.TempDir())
	t.Cleanup(Reset)

	loaded, err := NewProvider().Load(context.Background(), LoadOptions{ProjectDir: projectDir})
	if err != nil {
		t.Fatalf("generated config should load back, got %v", err)
	}
	if len(loaded.Hooks.PostSetup) != 1 || loaded.Hooks.PostSetup[0] != "echo done" {
		t.Errorf("Hooks.PostSetup = %v", loaded.Hooks.PostSetup)
	}
}

func TestResolvePath(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	t.Cleanup(Reset)

	projectDir := t.TempDir()
	want := writeConfigFile(t, projectDir, `launcher = ""`)

	got, err := ResolvePath(context.Background(), LoadOptions{ProjectDir: projectDir})
	if err != nil {
		t.Fatalf("ResolvePath() failed: %v", err)
	}
	if got != want {
		t.Errorf("ResolvePath() = %q, want %q", got, want)
	}

	testutil.MustRemoveAll(t, want)
	got, err = ResolvePath(context.Background(), LoadOptions{ProjectDir: projectDir})
	if err != nil {
		t.Fatalf("ResolvePath() without file failed: %v", err)
	}
	if got != "" {
		t.Errorf("ResolvePath() = %q, want empty for defaults", got)
	}
}
