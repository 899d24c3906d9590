// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"venvboot-cli/internal/config"
	"venvboot-cli/internal/execx"
	"venvboot-cli/internal/issue"
	"venvboot-cli/internal/pyenv"
	"venvboot-cli/internal/venv"

	"github.com/charmbracelet/log"
)

// Pipeline runs the bootstrap stages in order against one project.
type Pipeline struct {
	// Config holds the effective tool configuration.
	Config *config.Config
	// ProjectDir is the project root all relative paths resolve against.
	ProjectDir string
	// Runner executes the external invocations.
	Runner *execx.Runner
	// Reporter receives one line per stage.
	Reporter Reporter
	// Logger receives diagnostics (debug level unless verbose).
	Logger *log.Logger
}

// New creates a Pipeline with production defaults for unset wiring.
func New(cfg *config.Config, projectDir string) *Pipeline {
	return &Pipeline{
		Config:     cfg,
		ProjectDir: projectDir,
		Runner:     execx.NewRunner(),
		Reporter:   NopReporter{},
		Logger:     log.New(os.Stderr),
	}
}

// Run executes the whole pipeline and returns the process exit code:
// 0 on full success, 1 when no interpreter qualifies, otherwise the failing
// stage's exit code (pip install, a hook, or pytest).
func (p *Pipeline) Run(ctx context.Context) (execx.ExitCode, error) {
	cfg := p.Config

	minMajor, minMinor, err := config.ParseMinVersion(cfg.MinPython)
	if err != nil {
		return 1, issue.WrapWithOperation(err, "parse min_python threshold")
	}

	// Stage 1: interpreter discovery. The only stage that is fatal on its
	// own; nothing below runs without an interpreter.
	interp, err := pyenv.NewDiscoverer(cfg.Interpreters, minMajor, minMinor).Discover(ctx)
	if err != nil {
		p.Reporter.Failuref("Python >= %s not found (tried %s)", cfg.MinPython, strings.Join(cfg.Interpreters, ", "))
		return 1, err
	}
	p.Reporter.Successf("Python %s (%s)", interp.Version, interp.Command)
	p.Logger.Debug("interpreter discovered", "command", interp.Command, "path", interp.Path, "version", interp.Version.String())

	// Stage 2: environment provisioning, self-healing on corruption.
	env := venv.New(filepath.Join(p.ProjectDir, cfg.VenvDir))
	outcome, err := venv.NewProvisioner(p.Runner).Ensure(ctx, interp.Path, env)
	if err != nil {
		p.Reporter.Failuref("virtual environment %s", cfg.VenvDir)
		return 1, err
	}
	p.Reporter.Successf("virtual environment %s (%s)", cfg.VenvDir, outcome)

	// Stage 3: pip bootstrap, best-effort. A missing pip here surfaces as
	// the install stage's natural failure, never as this stage's.
	pipOutcome := venv.NewPipBootstrapper(p.Runner, cfg.GetPipURL).Ensure(ctx, env)
	p.Logger.Debug("pip bootstrap", "outcome", pipOutcome.String())
	if pipOutcome == venv.PipMissing {
		p.Reporter.Infof("pip unavailable after bootstrap attempts, continuing")
	} else {
		p.Reporter.Successf("pip (%s)", pipOutcome)
	}

	// Stage 4: dependency installation, strict.
	installer := venv.NewInstaller(p.Runner)
	installer.Verbose = cfg.UI.Verbose
	res, err := installer.Install(ctx, env, cfg.Packages)
	if err != nil {
		p.Reporter.Failuref("dependency installation")
		return failureCode(res), err
	}
	bres, backport, err := installer.EnsureTomlBackport(ctx, env, cfg.TomlBackport)
	if err != nil {
		p.Reporter.Failuref("TOML backport installation")
		return failureCode(bres), err
	}
	if backport {
		p.Logger.Debug("tomllib unavailable, installed backport", "package", cfg.TomlBackport)
	}
	p.Reporter.Successf("dependencies (%d packages)", len(cfg.Packages))

	// Stage 5: config seeding, idempotent.
	seedOutcome, err := SeedConfig(
		filepath.Join(p.ProjectDir, cfg.ConfigFile),
		filepath.Join(p.ProjectDir, cfg.ConfigTemplate),
	)
	if err != nil {
		p.Reporter.Failuref("config seeding %s", cfg.ConfigFile)
		return 1, err
	}
	p.Reporter.Successf("config %s (%s)", cfg.ConfigFile, seedOutcome)

	// Stage 6: launcher permission, best-effort.
	if cfg.Launcher != "" {
		if MarkExecutable(filepath.Join(p.ProjectDir, cfg.Launcher)) {
			p.Logger.Debug("launcher marked executable", "path", cfg.Launcher)
		} else {
			p.Logger.Debug("launcher permission skipped", "path", cfg.Launcher)
		}
	}

	// Stage 7: post-setup hooks, strict.
	if code, err := p.runHooks(ctx, env); err != nil {
		return code, err
	}

	// Stage 8: test execution. The runner's exit status is the process's
	// own final result.
	res = p.Runner.Run(ctx, execx.Invocation{
		Path: env.PythonPath(),
		Args: []string{"-m", "pytest", cfg.TestsDir, "-x", "-q"},
		Dir:  p.ProjectDir,
	})
	if !res.Ok() {
		p.Reporter.Failuref("tests (%s)", cfg.TestsDir)
		if res.Error != nil {
			return failureCode(res), issue.WrapWithOperation(res.Error, "run tests")
		}
		return res.ExitCode, fmt.Errorf("tests failed with exit code %s", res.ExitCode)
	}
	p.Reporter.Successf("tests (%s)", cfg.TestsDir)
	return 0, nil
}

// runHooks executes each configured post-setup snippet with the venv bin
// directory leading PATH.
func (p *Pipeline) runHooks(ctx context.Context, env *venv.Env) (execx.ExitCode, error) {
	for i, src := range p.Config.Hooks.PostSetup {
		name := fmt.Sprintf("hooks.post_setup[%d]", i)
		res := execx.RunSnippet(ctx, execx.Snippet{
			Source: src,
			Name:   name,
			Dir:    p.ProjectDir,
			Env:    hookEnv(env),
			Stdout: p.Runner.Stdout,
			Stderr: p.Runner.Stderr,
		})
		if !res.Ok() {
			p.Reporter.Failuref("hook %s", name)
			if res.Error != nil {
				return failureCode(res), issue.WrapWithOperation(res.Error, "run post-setup hook")
			}
			return res.ExitCode, fmt.Errorf("post-setup hook %s failed with exit code %s", name, res.ExitCode)
		}
		p.Logger.Debug("hook completed", "name", name)
	}
	if n := len(p.Config.Hooks.PostSetup); n > 0 {
		p.Reporter.Successf("hooks (%d)", n)
	}
	return 0, nil
}

// hookEnv builds the hook environment: inherited variables with the venv
// bin directory prepended to PATH and VIRTUAL_ENV set, matching what an
// activated environment exposes.
func hookEnv(env *venv.Env) []string {
	base := os.Environ()
	out := make([]string, 0, len(base)+2)
	out = append(out, "VIRTUAL_ENV="+env.Dir)
	for _, kv := range base {
		if strings.HasPrefix(kv, "PATH=") {
			out = append(out, "PATH="+env.BinDir()+string(os.PathListSeparator)+strings.TrimPrefix(kv, "PATH="))
			continue
		}
		if strings.HasPrefix(kv, "VIRTUAL_ENV=") {
			continue
		}
		out = append(out, kv)
	}
	return out
}

// failureCode maps a failed Result to a non-zero exit code, defaulting to 1
// for infrastructure errors that carry no process status.
func failureCode(res *execx.Result) execx.ExitCode {
	if res != nil && res.ExitCode != 0 {
		return res.ExitCode
	}
	return 1
}
