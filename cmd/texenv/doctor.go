// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/texenv/texenv/internal/issue"
	"github.com/texenv/texenv/pkg/platform"
	"github.com/texenv/texenv/pkg/texenv"
)

// Status tags for doctor report lines. Fixed width keeps the report columns
// aligned.
const (
	statusOK   = "[ OK ]"
	statusMiss = "[MISS]"
	statusWarn = "[WARN]"
)

// doctorParams bundles the dependencies for the doctor command.
// explicitPrefix records whether the user named a prefix anywhere (flag,
// configuration, or environment); it steers the failure diagnosis.
type doctorParams struct {
	stdout         io.Writer
	tc             *texenv.Toolchain
	explicitPrefix bool
}

// newDoctorCommand creates the `texenv doctor` command, which reports on the
// health of the discovered installation.
func newDoctorCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Report on the health of the LaTeX installation",
		Long: `Report on the health of the LaTeX installation.

The report covers the resolved prefix, the executable and data
directories, the tool registry, and both well-known tools. It ends
with a strict verification: the primary engine is spawned with a
version query, proving the installation can actually run, not just
that files are on disk.

The command exits non-zero when verification fails.`,
		Example: `  # Check the default installation
  texenv doctor

  # Check a specific prefix
  texenv --prefix /opt/texenv doctor`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			cfg, err := app.loadConfigLenient(cmd.Context(), cfgFile)
			if err != nil {
				return err
			}

			p := doctorParams{
				stdout: cmd.OutOrStdout(),
				tc:     locateToolchain(cfg, prefixFlag),
				explicitPrefix: prefixFlag != "" || cfg.Prefix.String() != "" ||
					os.Getenv(texenv.PrefixEnvVar) != "",
			}

			if err := runDoctor(cmd.Context(), p); err != nil {
				return exitWithRendered(cmd.ErrOrStderr(), err)
			}
			return nil
		},
	}
}

// runDoctor prints the installation report and returns an error when the
// strict verification fails. Individual missing pieces are reported as
// lines; only verification decides the exit code.
func runDoctor(ctx context.Context, p doctorParams) error {
	fmt.Fprintln(p.stdout, TitleStyle.Render("texenv doctor"))
	fmt.Fprintln(p.stdout)
	fmt.Fprintf(p.stdout, "%s: %s\n", ToolStyle.Render("Prefix"), p.tc.Prefix())
	fmt.Fprintf(p.stdout, "%s: %s\n", ToolStyle.Render("Platform"),
		platform.Triple(platform.Current(), platform.CurrentArch()))
	fmt.Fprintln(p.stdout)

	if err := platform.Validate(); err != nil {
		printStatus(p.stdout, statusWarn, fmt.Sprintf("host platform: %v", err))
	} else {
		printStatus(p.stdout, statusOK, "host platform supported")
	}

	if bin := p.tc.BinDir(); bin != "" {
		printStatus(p.stdout, statusOK, "bin dir: "+bin)
	} else {
		printStatus(p.stdout, statusMiss, "bin dir: no candidate directory exists")
	}

	if root := p.tc.DataRoot(); root != "" {
		printStatus(p.stdout, statusOK, "data root: "+root)
	} else {
		printStatus(p.stdout, statusMiss, "data root: no candidate directory exists")
	}

	if n := p.tc.Len(); n > 0 {
		printStatus(p.stdout, statusOK, fmt.Sprintf("registry: %d tool(s)", n))
	} else {
		printStatus(p.stdout, statusMiss, "registry: no tools discovered")
	}

	reportPrimary(p.stdout, p.tc)
	reportBib(p.stdout, p.tc)

	fmt.Fprintln(p.stdout)
	if err := p.tc.Verify(ctx); err != nil {
		printStatus(p.stdout, statusMiss, "verification: "+err.Error())
		return newServiceError(err, verificationIssueID(p.tc, p.explicitPrefix), "")
	}

	printStatus(p.stdout, statusOK,
		fmt.Sprintf("verification: %s answered the version probe", p.tc.PrimaryName()))
	return nil
}

// reportPrimary prints the primary engine resolution line. A registry hit is
// healthy; a system-path fallback works but deserves a warning since the
// fallback engine is not the bundled one.
func reportPrimary(w io.Writer, tc *texenv.Toolchain) {
	name := tc.PrimaryName()
	if tc.Has(name) {
		path, _ := tc.Get(name)
		printStatus(w, statusOK, fmt.Sprintf("primary tool %s: %s", name, path))
		return
	}
	if path, err := tc.Primary(); err == nil {
		printStatus(w, statusWarn, fmt.Sprintf("primary tool %s: not in the toolchain, system fallback %s", name, path))
		return
	}
	printStatus(w, statusMiss, fmt.Sprintf("primary tool %s: not found", name))
}

// reportBib prints the bibliography tool resolution line. No system-path
// fallback applies to the bib tool.
func reportBib(w io.Writer, tc *texenv.Toolchain) {
	name := tc.BibToolName()
	if path, err := tc.BibTeX(); err == nil {
		printStatus(w, statusOK, fmt.Sprintf("bib tool %s: %s", name, path))
		return
	}
	printStatus(w, statusMiss, fmt.Sprintf("bib tool %s: not found", name))
}

// verificationIssueID picks the issue catalog entry matching the reason
// verification failed, re-checking the same conditions Verify does. When
// nothing was found and the user never named a prefix, the real problem
// is the prefix resolution, not the installation under it.
func verificationIssueID(tc *texenv.Toolchain, explicitPrefix bool) issue.Id {
	if !explicitPrefix && tc.BinDir() == "" && tc.DataRoot() == "" {
		return issue.PrefixNotFoundId
	}
	if tc.DataRoot() == "" {
		return issue.DataRootMissingId
	}
	if _, err := tc.Primary(); err != nil {
		return issue.ToolchainNotFoundId
	}
	return issue.VersionProbeFailedId
}

// printStatus writes one styled report line with a fixed-width status tag.
func printStatus(w io.Writer, status, msg string) {
	var styled string
	switch status {
	case statusOK:
		styled = SuccessStyle.Render(status)
	case statusWarn:
		styled = WarningStyle.Render(status)
	default:
		styled = ErrorStyle.Render(status)
	}
	fmt.Fprintf(w, "%s %s\n", styled, msg)
}
