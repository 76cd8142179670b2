// SPDX-License-Identifier: MPL-2.0

package project_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/texenv/texenv/pkg/project"
)

// writeManifest places a texenv.toml with the given content into dir.
func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	path := filepath.Join(dir, project.FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
}

func TestLoadAbsentFileIsNotAnError(t *testing.T) {
	t.Parallel()

	f, err := project.Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if f != nil {
		t.Errorf("Load() = %+v, want nil for a directory without a manifest", f)
	}
}

func TestLoadDecodesAllFields(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, `
main = "thesis.tex"
extra-args = ["-shell-escape", "-synctex=1"]

[search-path]
texmf-home = "./texmf"
tex-inputs = ["./styles", "/opt/sty"]
`)

	f, err := project.Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if f.Main != "thesis.tex" {
		t.Errorf("Main = %q, want %q", f.Main, "thesis.tex")
	}
	if want := []string{"-shell-escape", "-synctex=1"}; !slices.Equal(f.ExtraArgs, want) {
		t.Errorf("ExtraArgs = %v, want %v", f.ExtraArgs, want)
	}
	if f.Search.TexmfHome != "./texmf" {
		t.Errorf("Search.TexmfHome = %q, want %q", f.Search.TexmfHome, "./texmf")
	}
	if want := []string{"./styles", "/opt/sty"}; !slices.Equal(f.Search.TexInputs, want) {
		t.Errorf("Search.TexInputs = %v, want %v", f.Search.TexInputs, want)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, `mian = "thesis.tex"`)

	if _, err := project.Load(dir); err == nil {
		t.Error("Load() = nil error for a manifest with an unknown key")
	}
}

func TestLoadMalformedManifest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, `main = [unclosed`)

	_, err := project.Load(dir)
	if err == nil {
		t.Fatal("Load() = nil error for malformed TOML")
	}

	var derr *toml.DecodeError
	if !errors.As(err, &derr) {
		t.Errorf("Load() error %v does not expose the underlying DecodeError", err)
	}
}

func TestFindWalksParents(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeManifest(t, root, `main = "book.tex"`)

	nested := filepath.Join(root, "chapters", "three")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	f, dir, err := project.Find(nested)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if f == nil {
		t.Fatal("Find() found no manifest")
	}
	if f.Main != "book.tex" {
		t.Errorf("Main = %q, want %q", f.Main, "book.tex")
	}
	if dir != root {
		t.Errorf("Find() dir = %q, want %q", dir, root)
	}
}

func TestFindReturnsNearestManifest(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeManifest(t, root, `main = "outer.tex"`)

	inner := filepath.Join(root, "paper")
	if err := os.MkdirAll(inner, 0o755); err != nil {
		t.Fatalf("failed to create inner dir: %v", err)
	}
	writeManifest(t, inner, `main = "inner.tex"`)

	f, dir, err := project.Find(inner)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if f.Main != "inner.tex" {
		t.Errorf("Main = %q, want the nearest manifest's %q", f.Main, "inner.tex")
	}
	if dir != inner {
		t.Errorf("Find() dir = %q, want %q", dir, inner)
	}
}

func TestFindNothing(t *testing.T) {
	t.Parallel()

	f, dir, err := project.Find(t.TempDir())
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if f != nil || dir != "" {
		t.Errorf("Find() = (%+v, %q), want (nil, \"\")", f, dir)
	}
}

func TestSearchPathResolvesProjectRelative(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	f := &project.File{
		Search: project.SearchSection{
			TexmfHome: "./texmf",
			TexInputs: []string{"styles", "/opt/sty"},
		},
	}

	sp := f.SearchPath(dir)
	if want := filepath.Join(dir, "texmf"); sp.TexmfHome != want {
		t.Errorf("TexmfHome = %q, want %q", sp.TexmfHome, want)
	}
	want := []string{filepath.Join(dir, "styles"), "/opt/sty"}
	if !slices.Equal(sp.TexInputs, want) {
		t.Errorf("TexInputs = %v, want %v", sp.TexInputs, want)
	}
}

func TestSearchPathEmptySection(t *testing.T) {
	t.Parallel()

	f := &project.File{Main: "thesis.tex"}
	if sp := f.SearchPath(t.TempDir()); !sp.IsZero() {
		t.Errorf("SearchPath() = %+v, want zero value", sp)
	}
}

func TestMainPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	f := &project.File{Main: "thesis.tex"}
	if got, want := f.MainPath(dir), filepath.Join(dir, "thesis.tex"); got != want {
		t.Errorf("MainPath() = %q, want %q", got, want)
	}

	abs := filepath.Join(dir, "deep", "doc.tex")
	f = &project.File{Main: abs}
	if got := f.MainPath(dir); got != abs {
		t.Errorf("MainPath() = %q, want absolute path kept: %q", got, abs)
	}

	f = &project.File{}
	if got := f.MainPath(dir); got != "" {
		t.Errorf("MainPath() = %q, want empty for a manifest without main", got)
	}
}
