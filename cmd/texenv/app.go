// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/texenv/texenv/internal/config"
	"github.com/texenv/texenv/pkg/texenv"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer — all Cobra command handlers receive an App reference and reach
	// configuration and toolchain discovery through it.
	App struct {
		Config ConfigProvider
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp. Tests can supply mock implementations
	// to isolate specific service behavior.
	Dependencies struct {
		Config ConfigProvider
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options. The second
	// return value is the path of the loaded config file, or "" when only
	// defaults applied. This abstraction enables testing with custom config
	// sources or mock implementations.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, string, error)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

// loadConfigLenient loads configuration via the provider. On failure with the
// default path it warns and falls back to defaults, keeping read-only commands
// operational on fresh installs. An explicit --config path must load or the
// error propagates: a file the user named must work.
func (a *App) loadConfigLenient(ctx context.Context, configPath string) (*config.Config, error) {
	cfg, _, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: configPath})
	if err == nil {
		return cfg, nil
	}

	if configPath != "" {
		return nil, err
	}

	fmt.Fprintln(a.stderr, WarningStyle.Render("warning: ")+formatErrorForDisplay(err, verbose))
	return config.DefaultConfig(), nil
}

// locateToolchain discovers the toolchain described by cfg. A non-empty
// prefix (the --prefix flag) overrides the configured prefix; an empty
// configured prefix leaves discovery to the TEXENV_PREFIX variable and the
// executable-derived default.
func locateToolchain(cfg *config.Config, prefix string) *texenv.Toolchain {
	var opts []texenv.Option

	if prefix == "" {
		prefix = cfg.Prefix.String()
	}
	if prefix != "" {
		opts = append(opts, texenv.WithPrefix(prefix))
	}
	if cfg.BundleDir != "" {
		opts = append(opts, texenv.WithBundleDir(cfg.BundleDir.String()))
	}
	if cfg.PrimaryTool != "" {
		opts = append(opts, texenv.WithPrimaryTool(cfg.PrimaryTool.String()))
	}
	if cfg.BibTool != "" {
		opts = append(opts, texenv.WithBibTool(cfg.BibTool.String()))
	}

	return texenv.Locate(opts...)
}

// configSearchPath converts the configured [search_path] section into a
// texenv.SearchPath.
func configSearchPath(cfg *config.Config) texenv.SearchPath {
	sp := texenv.SearchPath{TexmfHome: cfg.SearchPath.TexmfHome.String()}
	for _, entry := range cfg.SearchPath.TexInputs {
		sp.TexInputs = append(sp.TexInputs, entry.String())
	}
	return sp
}
