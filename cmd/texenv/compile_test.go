// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/texenv/texenv/internal/config"
	"github.com/texenv/texenv/internal/issue"
	"github.com/texenv/texenv/internal/testutil"
	"github.com/texenv/texenv/pkg/platform"
	"github.com/texenv/texenv/pkg/project"
	"github.com/texenv/texenv/pkg/texenv"
	"github.com/texenv/texenv/pkg/types"
)

// fixtureConfig returns a default configuration pinned to a fresh toolchain
// tree so prefix detection never consults the host environment.
func fixtureConfig(t *testing.T, tools ...string) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Prefix = config.PrefixPath(testutil.MustToolchainTree(t, "texenv", tools...))
	return cfg
}

// writeManifest places a texenv.toml with the given content into dir.
func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	testutil.MustWriteFile(t, filepath.Join(dir, project.FileName), []byte(content), 0o644)
}

func TestSplitCompileArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantFile   string
		wantExtras []string
	}{
		{
			name: "empty",
		},
		{
			name:     "file only",
			args:     []string{"main.tex"},
			wantFile: "main.tex",
		},
		{
			name:       "file then flags",
			args:       []string{"main.tex", "-halt-on-error"},
			wantFile:   "main.tex",
			wantExtras: []string{"-halt-on-error"},
		},
		{
			name:       "flags then file",
			args:       []string{"-halt-on-error", "main.tex"},
			wantFile:   "main.tex",
			wantExtras: []string{"-halt-on-error"},
		},
		{
			name:       "flags only",
			args:       []string{"-halt-on-error", "-shell-escape"},
			wantExtras: []string{"-halt-on-error", "-shell-escape"},
		},
		{
			name:       "second path stays an extra",
			args:       []string{"a.tex", "b.tex"},
			wantFile:   "a.tex",
			wantExtras: []string{"b.tex"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			file, extras := splitCompileArgs(tt.args)
			if file != tt.wantFile {
				t.Errorf("file = %q, want %q", file, tt.wantFile)
			}
			if !slices.Equal(extras, tt.wantExtras) {
				t.Errorf("extras = %v, want %v", extras, tt.wantExtras)
			}
		})
	}
}

func TestHasInteractionFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{name: "empty", args: nil, want: false},
		{name: "unrelated flag", args: []string{"-halt-on-error"}, want: false},
		{name: "single dash with value", args: []string{"-interaction=batchmode"}, want: true},
		{name: "double dash with value", args: []string{"--interaction=batchmode"}, want: true},
		{name: "separated value", args: []string{"-interaction", "batchmode"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := hasInteractionFlag(tt.args); got != tt.want {
				t.Errorf("hasInteractionFlag(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestBuildCompileArgs(t *testing.T) {
	t.Parallel()

	t.Run("configured before project before command line", func(t *testing.T) {
		t.Parallel()

		got := buildCompileArgs(
			[]string{"-shell-escape"},
			[]string{"-synctex=1"},
			[]string{"-halt-on-error"},
			config.InteractionNonStopMode,
		)
		want := []string{"-interaction=nonstopmode", "-shell-escape", "-synctex=1", "-halt-on-error"}
		if !slices.Equal(got, want) {
			t.Errorf("args = %v, want %v", got, want)
		}
	})

	t.Run("command line interaction is not duplicated", func(t *testing.T) {
		t.Parallel()

		got := buildCompileArgs(nil, nil, []string{"-interaction=batchmode"}, config.InteractionNonStopMode)
		want := []string{"-interaction=batchmode"}
		if !slices.Equal(got, want) {
			t.Errorf("args = %v, want %v", got, want)
		}
	})

	t.Run("configured interaction is not duplicated", func(t *testing.T) {
		t.Parallel()

		got := buildCompileArgs([]string{"-interaction=scrollmode"}, nil, nil, config.InteractionNonStopMode)
		want := []string{"-interaction=scrollmode"}
		if !slices.Equal(got, want) {
			t.Errorf("args = %v, want %v", got, want)
		}
	})

	t.Run("blank mode adds nothing", func(t *testing.T) {
		t.Parallel()

		if got := buildCompileArgs(nil, nil, nil, ""); len(got) != 0 {
			t.Errorf("args = %v, want empty", got)
		}
	})
}

func TestBuildCompileParams_DocumentFromArgs(t *testing.T) {
	t.Parallel()

	cfg := fixtureConfig(t, "pdflatex")
	dir := t.TempDir()

	p, err := buildCompileParams(cfg, "", []string{"doc.tex", "-halt-on-error"}, dir, true)
	if err != nil {
		t.Fatalf("buildCompileParams() error: %v", err)
	}

	if p.file != "doc.tex" {
		t.Errorf("file = %q, want %q", p.file, "doc.tex")
	}
	want := []string{"-interaction=nonstopmode", "-halt-on-error"}
	if !slices.Equal(p.args, want) {
		t.Errorf("args = %v, want %v", p.args, want)
	}
	if p.dir != dir {
		t.Errorf("dir = %q, want %q", p.dir, dir)
	}
	if !p.pty {
		t.Error("pty flag did not survive the merge")
	}
	if !p.tc.Has("pdflatex") {
		t.Error("toolchain did not resolve the configured prefix")
	}
}

func TestBuildCompileParams_MainFromManifest(t *testing.T) {
	t.Parallel()

	cfg := fixtureConfig(t, "pdflatex")
	projDir := t.TempDir()
	writeManifest(t, projDir, `main = "thesis.tex"`)

	p, err := buildCompileParams(cfg, "", nil, projDir, false)
	if err != nil {
		t.Fatalf("buildCompileParams() error: %v", err)
	}

	if want := filepath.Join(projDir, "thesis.tex"); p.file != want {
		t.Errorf("file = %q, want %q", p.file, want)
	}
}

func TestBuildCompileParams_CommandLineDocumentBeatsManifest(t *testing.T) {
	t.Parallel()

	cfg := fixtureConfig(t, "pdflatex")
	projDir := t.TempDir()
	writeManifest(t, projDir, `main = "thesis.tex"`)

	p, err := buildCompileParams(cfg, "", []string{"other.tex"}, projDir, false)
	if err != nil {
		t.Fatalf("buildCompileParams() error: %v", err)
	}

	if p.file != "other.tex" {
		t.Errorf("file = %q, want %q", p.file, "other.tex")
	}
}

func TestBuildCompileParams_ArgumentPrecedence(t *testing.T) {
	t.Parallel()

	cfg := fixtureConfig(t, "pdflatex")
	cfg.Compile.ExtraArgs = "-shell-escape"
	projDir := t.TempDir()
	writeManifest(t, projDir, `
main = "thesis.tex"
extra-args = ["-synctex=1"]
`)

	p, err := buildCompileParams(cfg, "", []string{"doc.tex", "-halt-on-error"}, projDir, false)
	if err != nil {
		t.Fatalf("buildCompileParams() error: %v", err)
	}

	want := []string{"-interaction=nonstopmode", "-shell-escape", "-synctex=1", "-halt-on-error"}
	if !slices.Equal(p.args, want) {
		t.Errorf("args = %v, want %v", p.args, want)
	}
}

func TestBuildCompileParams_FlagPrefixBeatsConfig(t *testing.T) {
	t.Parallel()

	cfg := fixtureConfig(t, "pdflatex")
	flagPrefix := testutil.MustToolchainTree(t, "texenv", "lualatex")

	p, err := buildCompileParams(cfg, flagPrefix, []string{"doc.tex"}, t.TempDir(), false)
	if err != nil {
		t.Fatalf("buildCompileParams() error: %v", err)
	}

	if !p.tc.Has("lualatex") {
		t.Error("toolchain ignored the prefix flag")
	}
	if p.tc.Has("pdflatex") {
		t.Error("toolchain resolved the configured prefix instead of the flag")
	}
}

func TestBuildCompileParams_SearchPathPrecedence(t *testing.T) {
	t.Parallel()

	prefix := testutil.MustToolchainTree(t, "texenv", "pdflatex")
	dataRoot := texenv.Locate(texenv.WithPrefix(prefix)).DataRoot()
	bundledPkg := filepath.Join(dataRoot, "texmf-dist", "tex", "latex", "bundledpkg")
	testutil.MustMkdirAll(t, bundledPkg, 0o755)

	cfg := config.DefaultConfig()
	cfg.Prefix = config.PrefixPath(prefix)
	cfg.SearchPath.TexInputs = []config.TexInputEntry{"/opt/styles"}

	projDir := t.TempDir()
	writeManifest(t, projDir, `
main = "thesis.tex"

[search-path]
texmf-home = "texmf"
tex-inputs = ["styles"]
`)

	p, err := buildCompileParams(cfg, "", nil, projDir, false)
	if err != nil {
		t.Fatalf("buildCompileParams() error: %v", err)
	}

	if want := filepath.Join(projDir, "texmf"); p.search.TexmfHome != want {
		t.Errorf("TexmfHome = %q, want the project tree %q", p.search.TexmfHome, want)
	}
	want := []string{filepath.Join(projDir, "styles"), "/opt/styles", bundledPkg}
	if !slices.Equal(p.search.TexInputs, want) {
		t.Errorf("TexInputs = %v, want %v", p.search.TexInputs, want)
	}
}

func TestBuildCompileParams_BundleDefaultsOff(t *testing.T) {
	t.Parallel()

	prefix := testutil.MustToolchainTree(t, "texenv", "pdflatex")
	dataRoot := texenv.Locate(texenv.WithPrefix(prefix)).DataRoot()
	testutil.MustMkdirAll(t, filepath.Join(dataRoot, "texmf-dist", "tex", "latex", "bundledpkg"), 0o755)

	cfg := config.DefaultConfig()
	cfg.Prefix = config.PrefixPath(prefix)
	cfg.SearchPath.UseBundleDefaults = false

	p, err := buildCompileParams(cfg, "", []string{"doc.tex"}, t.TempDir(), false)
	if err != nil {
		t.Fatalf("buildCompileParams() error: %v", err)
	}

	if !p.search.IsZero() {
		t.Errorf("search = %+v, want zero with bundle defaults off", p.search)
	}
}

func TestBuildCompileParams_InvalidManifestCarriesIssue(t *testing.T) {
	t.Parallel()

	cfg := fixtureConfig(t, "pdflatex")
	projDir := t.TempDir()
	writeManifest(t, projDir, `main = `)

	_, err := buildCompileParams(cfg, "", nil, projDir, false)
	if err == nil {
		t.Fatal("expected an error for a broken manifest")
	}

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("error = %T, want *ServiceError", err)
	}
	if svcErr.IssueID != issue.ProjectFileInvalidId {
		t.Errorf("IssueID = %v, want %v", svcErr.IssueID, issue.ProjectFileInvalidId)
	}
}

func TestBuildCompileParams_NoDocumentAnywhere(t *testing.T) {
	t.Parallel()

	cfg := fixtureConfig(t, "pdflatex")

	_, err := buildCompileParams(cfg, "", nil, t.TempDir(), false)
	if err == nil {
		t.Fatal("expected an error when no document is named anywhere")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %T, want *issue.ActionableError", err)
	}
	if !strings.Contains(err.Error(), "compile document") {
		t.Errorf("error %q does not name the failed operation", err)
	}
}

func TestRunCompile_Success(t *testing.T) {
	if platform.Current() == platform.Windows {
		t.Skip("fixture scripts require a POSIX shell")
	}
	t.Parallel()

	tc := scriptToolchain(t, "pdflatex", "#!/bin/sh\nexit 0\n")

	err := runCompile(context.Background(), compileParams{tc: tc, file: "doc.tex"})
	if err != nil {
		t.Fatalf("runCompile() error: %v", err)
	}
}

func TestRunCompile_ChildExitCodeWrapped(t *testing.T) {
	if platform.Current() == platform.Windows {
		t.Skip("fixture scripts require a POSIX shell")
	}
	t.Parallel()

	tc := scriptToolchain(t, "pdflatex", "#!/bin/sh\nexit 2\n")

	err := runCompile(context.Background(), compileParams{tc: tc, file: "doc.tex"})
	if err == nil {
		t.Fatal("expected an error for a failing engine")
	}

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("error = %T, want *ServiceError", err)
	}
	if svcErr.IssueID != issue.CompileFailedId {
		t.Errorf("IssueID = %v, want %v", svcErr.IssueID, issue.CompileFailedId)
	}
	if !strings.Contains(svcErr.StyledMessage, "doc.tex") {
		t.Errorf("styled message %q does not name the document", svcErr.StyledMessage)
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error chain lost the child exit code: %v", err)
	}
	if exitErr.Code != types.ExitCode(2) {
		t.Errorf("Code = %d, want 2", exitErr.Code)
	}
}

func TestRunCompile_DocumentArgumentLast(t *testing.T) {
	if platform.Current() == platform.Windows {
		t.Skip("fixture scripts require a POSIX shell")
	}
	t.Parallel()

	outFile := filepath.Join(t.TempDir(), "argv.txt")
	tc := scriptToolchain(t, "pdflatex", "#!/bin/sh\nprintf '%s\\n' \"$@\" > '"+outFile+"'\n")

	p := compileParams{
		tc:   tc,
		file: "doc.tex",
		args: []string{"-interaction=batchmode", "-synctex=1"},
	}
	if err := runCompile(context.Background(), p); err != nil {
		t.Fatalf("runCompile() error: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("failed to read recorded arguments: %v", err)
	}
	if want := "-interaction=batchmode\n-synctex=1\ndoc.tex\n"; string(data) != want {
		t.Errorf("engine argv = %q, want %q", data, want)
	}
}

func TestRunCompile_SearchPathReachesChild(t *testing.T) {
	if platform.Current() == platform.Windows {
		t.Skip("fixture scripts require a POSIX shell")
	}
	t.Parallel()

	outFile := filepath.Join(t.TempDir(), "texinputs.txt")
	tc := scriptToolchain(t, "pdflatex", "#!/bin/sh\nprintf '%s' \"$TEXINPUTS\" > '"+outFile+"'\n")

	p := compileParams{
		tc:     tc,
		file:   "doc.tex",
		search: texenv.SearchPath{TexInputs: []string{"/opt/styles"}},
	}
	if err := runCompile(context.Background(), p); err != nil {
		t.Fatalf("runCompile() error: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("failed to read recorded environment: %v", err)
	}
	sep := string(filepath.ListSeparator)
	if !strings.HasPrefix(string(data), "/opt/styles"+sep) {
		t.Errorf("TEXINPUTS = %q, want prefix %q", data, "/opt/styles"+sep)
	}
}

func TestRunCompile_MissingEngineCarriesIssue(t *testing.T) {
	t.Parallel()

	tc := texenv.Locate(
		texenv.WithPrefix(t.TempDir()),
		texenv.WithLookPath(func(string) (string, error) { return "", exec.ErrNotFound }),
	)

	err := runCompile(context.Background(), compileParams{tc: tc, file: "doc.tex"})
	if err == nil {
		t.Fatal("expected an error without a primary engine")
	}

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("error = %T, want *ServiceError", err)
	}
	if svcErr.IssueID != issue.ToolchainNotFoundId {
		t.Errorf("IssueID = %v, want %v", svcErr.IssueID, issue.ToolchainNotFoundId)
	}
	if !errors.Is(err, texenv.ErrToolNotFound) {
		t.Errorf("error chain lost the sentinel: %v", err)
	}
}
