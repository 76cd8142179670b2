// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/texenv/texenv/internal/config"
	"github.com/texenv/texenv/internal/issue"
	"github.com/texenv/texenv/pkg/project"
	"github.com/texenv/texenv/pkg/texenv"
)

// compileParams bundles the dependencies and merged inputs for the compile
// command. All merge logic runs before runCompile, so the core is a single
// RunPrimary call.
type compileParams struct {
	tc     *texenv.Toolchain
	file   string            // document path, already resolved
	args   []string          // merged engine arguments, interaction flag included
	search texenv.SearchPath // merged style search path
	dir    string            // --dir: child working directory
	pty    bool              // --pty: attach a pseudo-terminal on unix
}

// newCompileCommand creates the `texenv compile` command, which drives the
// primary engine over one document.
func newCompileCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [file.tex] [--] [extra args...]",
		Short: "Compile a document with the primary engine",
		Long: `Compile a document with the primary engine.

The first argument not starting with '-' names the document; with no
such argument the project manifest's main document compiles. Engine
arguments merge in precedence order: configured compile.extra_args
first, then the project manifest's extra-args, then arguments given
here, then the document path. An -interaction flag is prepended from
the configured mode unless one is already present.

The style search path merges the bundle's own packages (when
search_path.use_bundle_defaults is on) with configured and
project-manifest entries; project entries are searched first. The
merged path applies to this invocation only and never modifies the
parent environment.`,
		Example: `  # Compile one document
  texenv compile main.tex

  # Extra engine flags after the document pass through verbatim
  texenv compile main.tex -halt-on-error

  # Compile the project manifest's main document
  texenv compile

  # Step through errors interactively
  texenv compile --pty main.tex`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			dirFlag, _ := cmd.Flags().GetString("dir")
			ptyFlag, _ := cmd.Flags().GetBool("pty")

			cfg, err := app.loadConfigLenient(cmd.Context(), cfgFile)
			if err != nil {
				return err
			}

			p, err := buildCompileParams(cfg, prefixFlag, args, dirFlag, ptyFlag)
			if err != nil {
				return exitWithRendered(cmd.ErrOrStderr(), err)
			}

			if err := runCompile(cmd.Context(), p); err != nil {
				return exitWithRendered(cmd.ErrOrStderr(), err)
			}
			return nil
		},
	}

	// Stop flag parsing at the first positional so engine flags reach the
	// child unparsed.
	cmd.Flags().SetInterspersed(false)

	cmd.Flags().String("dir", "", "Working directory for the engine")
	cmd.Flags().Bool("pty", false, "Attach the engine to a pseudo-terminal (unix only)")

	return cmd
}

// buildCompileParams resolves the document, merges engine arguments and the
// search path from configuration, the project manifest, and the command
// line.
func buildCompileParams(cfg *config.Config, prefix string, args []string, dir string, pty bool) (compileParams, error) {
	file, cliArgs := splitCompileArgs(args)

	cfgArgs, err := cfg.Compile.ExtraArgsList()
	if err != nil {
		return compileParams{}, err
	}

	start := dir
	if start == "" {
		start = "."
	}
	proj, projDir, err := project.Find(start)
	if err != nil {
		styled := ErrorStyle.Render("error: ") + err.Error() + "\n"
		return compileParams{}, newServiceError(err, issue.ProjectFileInvalidId, styled)
	}

	var projArgs []string
	var projSearch texenv.SearchPath
	if proj != nil {
		projArgs = proj.ExtraArgs
		projSearch = proj.SearchPath(projDir)
		if file == "" {
			file = proj.MainPath(projDir)
		}
	}

	if file == "" {
		return compileParams{}, issue.NewErrorContext().
			WithOperation("compile document").
			WithSuggestion("Pass the document path: texenv compile main.tex").
			WithSuggestion(`Or declare it once in texenv.toml: main = "main.tex"`).
			BuildError()
	}

	p := compileParams{
		file: file,
		args: buildCompileArgs(cfgArgs, projArgs, cliArgs, cfg.Compile.Interaction),
		dir:  dir,
		pty:  pty,
	}

	p.tc = locateToolchain(cfg, prefix)

	p.search = texenv.SearchPath{}
	if cfg.SearchPath.UseBundleDefaults {
		p.search = p.tc.DefaultSearchPath()
	}
	p.search = p.search.Merge(configSearchPath(cfg)).Merge(projSearch)

	return p, nil
}

// buildCompileArgs merges engine arguments in precedence order: configured,
// project manifest, command line. The configured interaction mode is
// prepended unless any source already sets one.
func buildCompileArgs(cfgArgs, projArgs, cliArgs []string, interaction config.InteractionMode) []string {
	merged := make([]string, 0, len(cfgArgs)+len(projArgs)+len(cliArgs)+1)
	merged = append(merged, cfgArgs...)
	merged = append(merged, projArgs...)
	merged = append(merged, cliArgs...)

	if interaction != "" && !hasInteractionFlag(merged) {
		merged = append([]string{"-interaction=" + interaction.String()}, merged...)
	}
	return merged
}

// hasInteractionFlag reports whether args already carry an -interaction
// flag. TeX engines accept both the single and double dash spellings.
func hasInteractionFlag(args []string) bool {
	for _, arg := range args {
		if strings.HasPrefix(arg, "-interaction") || strings.HasPrefix(arg, "--interaction") {
			return true
		}
	}
	return false
}

// splitCompileArgs separates the document path from pass-through engine
// flags: the first argument not starting with '-' names the document.
func splitCompileArgs(args []string) (file string, extras []string) {
	for _, arg := range args {
		if file == "" && !strings.HasPrefix(arg, "-") {
			file = arg
			continue
		}
		extras = append(extras, arg)
	}
	return file, extras
}

// runCompile invokes the primary engine on the resolved document.
func runCompile(ctx context.Context, p compileParams) error {
	var opts []texenv.RunOption
	if !p.search.IsZero() {
		opts = append(opts, texenv.WithSearchPath(p.search))
	}
	if p.dir != "" {
		opts = append(opts, texenv.WithDir(p.dir))
	}
	if p.pty {
		opts = append(opts, texenv.WithPTY())
	}

	result, err := p.tc.RunPrimary(ctx, p.file, p.args, opts...)
	if err != nil {
		if errors.Is(err, texenv.ErrToolNotFound) {
			styled := ErrorStyle.Render("error: ") + err.Error() + "\n"
			return newServiceError(err, issue.ToolchainNotFoundId, styled)
		}
		return fmt.Errorf("failed to start the primary engine: %w", err)
	}

	if !result.Success() {
		// Wrap the child exit code so the issue card renders and the code
		// still propagates through exitWithRendered.
		exitErr := &ExitError{Code: result.ExitCode}
		styled := ErrorStyle.Render("error: ") +
			fmt.Sprintf("%s exited with status %s compiling %s", p.tc.PrimaryName(), result.ExitCode, p.file) + "\n"
		return newServiceError(exitErr, issue.CompileFailedId, styled)
	}
	return nil
}
