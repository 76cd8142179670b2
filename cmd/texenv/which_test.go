// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/texenv/texenv/internal/issue"
	"github.com/texenv/texenv/internal/testutil"
	"github.com/texenv/texenv/pkg/texenv"
)

// fixtureToolchain builds a host-shaped toolchain tree holding the given
// tools and locates it.
func fixtureToolchain(t *testing.T, tools ...string) *texenv.Toolchain {
	t.Helper()

	prefix := testutil.MustToolchainTree(t, "texenv", tools...)
	return texenv.Locate(texenv.WithPrefix(prefix))
}

func TestRunWhich_PrintsRegisteredPath(t *testing.T) {
	t.Parallel()

	tc := fixtureToolchain(t, "pdflatex", "bibtex")
	var out bytes.Buffer

	err := runWhich(whichParams{stdout: &out, tc: tc, name: "bibtex"})
	if err != nil {
		t.Fatalf("runWhich() error: %v", err)
	}

	want, getErr := tc.Get("bibtex")
	if getErr != nil {
		t.Fatalf("Get(bibtex) error: %v", getErr)
	}
	if got := strings.TrimSpace(out.String()); got != want {
		t.Errorf("printed %q, want %q", got, want)
	}
}

func TestRunWhich_LookupIgnoresCase(t *testing.T) {
	t.Parallel()

	tc := fixtureToolchain(t, "pdflatex")
	var out bytes.Buffer

	if err := runWhich(whichParams{stdout: &out, tc: tc, name: "pdfLaTeX"}); err != nil {
		t.Fatalf("runWhich() error: %v", err)
	}
	if !strings.Contains(out.String(), "pdflatex") {
		t.Errorf("printed %q, want the pdflatex path", out.String())
	}
}

func TestRunWhich_MissingToolCarriesIssue(t *testing.T) {
	t.Parallel()

	tc := fixtureToolchain(t, "pdflatex")
	var out bytes.Buffer

	err := runWhich(whichParams{stdout: &out, tc: tc, name: "xelatex"})
	if err == nil {
		t.Fatal("expected error for missing tool")
	}

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *ServiceError, got %T", err)
	}
	if svcErr.IssueID != issue.ToolNotFoundId {
		t.Errorf("IssueID = %d, want ToolNotFoundId", svcErr.IssueID)
	}
	if !errors.Is(err, texenv.ErrToolNotFound) {
		t.Errorf("error %v should wrap ErrToolNotFound", err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should print on a miss, got %q", out.String())
	}
}

func TestRunWhich_Primary(t *testing.T) {
	t.Parallel()

	tc := fixtureToolchain(t, "pdflatex")
	var out bytes.Buffer

	if err := runWhich(whichParams{stdout: &out, tc: tc, primary: true}); err != nil {
		t.Fatalf("runWhich() error: %v", err)
	}
	if !strings.Contains(out.String(), "pdflatex") {
		t.Errorf("printed %q, want the primary engine path", out.String())
	}
}

func TestRunWhich_PrimaryFallsBackToSystemPath(t *testing.T) {
	t.Parallel()

	fallback := filepath.Join("/usr", "local", "bin", "pdflatex")
	tc := texenv.Locate(
		texenv.WithPrefix(t.TempDir()),
		texenv.WithLookPath(func(string) (string, error) { return fallback, nil }),
	)
	var out bytes.Buffer

	if err := runWhich(whichParams{stdout: &out, tc: tc, primary: true}); err != nil {
		t.Fatalf("runWhich() error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != fallback {
		t.Errorf("printed %q, want the system fallback %q", got, fallback)
	}
}

func TestRunWhich_BibHasNoFallback(t *testing.T) {
	t.Parallel()

	tc := texenv.Locate(
		texenv.WithPrefix(t.TempDir()),
		texenv.WithLookPath(func(string) (string, error) { return "/usr/bin/bibtex", nil }),
	)
	var out bytes.Buffer

	err := runWhich(whichParams{stdout: &out, tc: tc, bib: true})
	if !errors.Is(err, texenv.ErrToolNotFound) {
		t.Errorf("bib resolution must not fall back to the system path, got: %v", err)
	}
}
