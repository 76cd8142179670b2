// SPDX-License-Identifier: MPL-2.0

package texenv

import (
	"context"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/texenv/texenv/pkg/platform"
)

const (
	// PrefixEnvVar overrides the installation prefix when no explicit
	// prefix is passed to Locate.
	PrefixEnvVar = "TEXENV_PREFIX"

	// DefaultBundleDir is the bundle directory name probed under share/.
	DefaultBundleDir = "texenv"

	// DefaultPrimaryTool is the PDF-producing compiler.
	DefaultPrimaryTool = "pdflatex"

	// DefaultBibTool is the bibliography processor.
	DefaultBibTool = "bibtex"

	// versionFlag asks a TeX binary for its version banner. Every TeX Live
	// executable understands it, which makes it a cheap liveness probe.
	versionFlag = "--version"
)

type (
	// LookPathFunc resolves a bare executable name on the system search
	// path. It matches the signature of exec.LookPath and exists so tests
	// can inject a fake.
	LookPathFunc func(name string) (string, error)

	// Option configures Locate.
	Option func(*Toolchain)

	// Tool is one registry entry: a discovered executable and its
	// absolute path.
	Tool struct {
		Name string
		Path string
	}

	// Toolchain is an immutable snapshot of a LaTeX installation discovered
	// under a prefix. All fields are resolved by Locate; there is no
	// re-scan. Methods never mutate state, so a Toolchain is safe for
	// concurrent use.
	Toolchain struct {
		prefix   string
		hostOS   platform.OS
		hostArch platform.Arch
		bundle   string
		primary  string
		bibTool  string
		binDir   string // "" when no candidate directory exists
		dataRoot string // "" when no candidate directory exists
		registry map[string]string
		lookPath LookPathFunc
	}
)

// WithPrefix sets the installation prefix explicitly, bypassing the
// TEXENV_PREFIX variable and the executable-derived default.
func WithPrefix(prefix string) Option {
	return func(t *Toolchain) {
		t.prefix = prefix
	}
}

// WithBundleDir overrides the bundle directory name probed under share/.
func WithBundleDir(name string) Option {
	return func(t *Toolchain) {
		t.bundle = name
	}
}

// WithPrimaryTool overrides the primary tool name.
func WithPrimaryTool(name string) Option {
	return func(t *Toolchain) {
		t.primary = name
	}
}

// WithBibTool overrides the bibliography tool name.
func WithBibTool(name string) Option {
	return func(t *Toolchain) {
		t.bibTool = name
	}
}

// WithPlatform pins the OS and architecture instead of detecting the host.
// This exists so tests can probe a foreign layout (e.g. a windows-shaped
// tree on a linux builder).
func WithPlatform(hostOS platform.OS, hostArch platform.Arch) Option {
	return func(t *Toolchain) {
		t.hostOS = hostOS
		t.hostArch = hostArch
	}
}

// WithLookPath sets the system search path resolver used by the
// primary-tool fallback. This exists for tests.
func WithLookPath(fn LookPathFunc) Option {
	return func(t *Toolchain) {
		t.lookPath = fn
	}
}

// Locate discovers a LaTeX toolchain under the installation prefix.
//
// The prefix is taken from WithPrefix, then the TEXENV_PREFIX environment
// variable, then derived from the running executable (a tool installed at
// <prefix>/bin/<tool> has its prefix two levels up). Candidate directories
// are probed in order and the first that exists wins:
//
//	executables:  <root>/share/<bundle>/bin/<triple>, then <root>/bin
//	data root:    <root>/share/<bundle>
//
// where <root> is the prefix itself, or <prefix>/Library on windows. A
// candidate that does not exist is skipped; when none exists the resolved
// path stays empty and the registry stays empty. Locate never fails:
// absence is reported by Available, Require and Verify, not here.
func Locate(opts ...Option) *Toolchain {
	t := &Toolchain{
		hostOS:   platform.Current(),
		hostArch: platform.CurrentArch(),
		bundle:   DefaultBundleDir,
		primary:  DefaultPrimaryTool,
		bibTool:  DefaultBibTool,
		lookPath: exec.LookPath,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.prefix == "" {
		t.prefix = defaultPrefix()
	}
	if abs, err := filepath.Abs(t.prefix); err == nil {
		t.prefix = abs
	}

	t.binDir = firstExistingDir(t.binDirCandidates())
	t.dataRoot = firstExistingDir(t.dataRootCandidates())
	t.registry = buildRegistry(t.binDir)

	return t
}

// defaultPrefix resolves the prefix when none was given: the TEXENV_PREFIX
// variable, or the grandparent directory of the running executable.
func defaultPrefix() string {
	if prefix := os.Getenv(PrefixEnvVar); prefix != "" {
		return prefix
	}

	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(filepath.Dir(exe))
}

// layoutRoot returns the directory all layout conventions hang off:
// the prefix itself, or <prefix>/Library on windows.
func (t *Toolchain) layoutRoot() string {
	if t.hostOS == platform.Windows {
		return filepath.Join(t.prefix, "Library")
	}
	return t.prefix
}

// binDirCandidates returns the ordered executable directory candidates.
// The nested bundle layout is product-scoped and wins over the flat
// <prefix>/bin layout when both exist.
func (t *Toolchain) binDirCandidates() []string {
	root := t.layoutRoot()
	return []string{
		filepath.Join(root, "share", t.bundle, "bin", platform.Triple(t.hostOS, t.hostArch)),
		filepath.Join(root, "bin"),
	}
}

// dataRootCandidates returns the ordered data root candidates. Windows
// additionally probes outside Library/ because older flat-layout bundles
// placed the data tree directly under the prefix.
func (t *Toolchain) dataRootCandidates() []string {
	candidates := []string{filepath.Join(t.layoutRoot(), "share", t.bundle)}
	if t.hostOS == platform.Windows {
		candidates = append(candidates, filepath.Join(t.prefix, "share", t.bundle))
	}
	return candidates
}

// firstExistingDir returns the first candidate that exists and is a
// directory, or "" when none does.
func firstExistingDir(candidates []string) string {
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}

// buildRegistry enumerates the files directly inside binDir into a
// lowercase-stem to absolute-path map. Subdirectories are skipped;
// symlinks count when they resolve to files (TeX Live bin directories
// link most engines to a shared binary).
func buildRegistry(binDir string) map[string]string {
	registry := make(map[string]string)
	if binDir == "" {
		return registry
	}

	entries, err := os.ReadDir(binDir)
	if err != nil {
		return registry
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(binDir, entry.Name())
		if entry.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr != nil || info.IsDir() {
				continue
			}
		}
		registry[stem(entry.Name())] = path
	}

	return registry
}

// stem lowercases a filename and strips its final extension, so
// "pdfLaTeX.exe" registers as "pdflatex". A name that consists only of an
// extension (a dotfile) is kept whole.
func stem(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" {
		base = name
	}
	return strings.ToLower(base)
}

// Prefix returns the installation prefix the toolchain was probed under.
func (t *Toolchain) Prefix() string { return t.prefix }

// BinDir returns the resolved executable directory, or "" when absent.
func (t *Toolchain) BinDir() string { return t.binDir }

// DataRoot returns the resolved data tree root, or "" when absent.
func (t *Toolchain) DataRoot() string { return t.dataRoot }

// PrimaryName returns the configured primary tool name.
func (t *Toolchain) PrimaryName() string { return t.primary }

// BibToolName returns the configured bibliography tool name.
func (t *Toolchain) BibToolName() string { return t.bibTool }

// Len returns the number of registered tools.
func (t *Toolchain) Len() int { return len(t.registry) }

// Has reports whether name is registered. The check is case-insensitive.
func (t *Toolchain) Has(name string) bool {
	_, ok := t.registry[strings.ToLower(name)]
	return ok
}

// Get returns the absolute path registered for name. The lookup is
// case-insensitive. A miss returns a ToolNotFoundError naming the
// requested tool.
func (t *Toolchain) Get(name string) (string, error) {
	path, ok := t.registry[strings.ToLower(name)]
	if !ok {
		return "", &ToolNotFoundError{Tool: name}
	}
	return path, nil
}

// Tools returns the registry as a name-sorted slice.
func (t *Toolchain) Tools() []Tool {
	tools := make([]Tool, 0, len(t.registry))
	for name, path := range t.registry {
		tools = append(tools, Tool{Name: name, Path: path})
	}
	sort.Slice(tools, func(i, j int) bool {
		return tools[i].Name < tools[j].Name
	})
	return tools
}

// Primary returns the absolute path of the primary tool. When the registry
// misses it, the system search path is consulted as a fallback; Get never
// falls back, only this accessor does.
func (t *Toolchain) Primary() (string, error) {
	if path, err := t.Get(t.primary); err == nil {
		return path, nil
	}
	if path, err := t.lookPath(t.primary); err == nil {
		return path, nil
	}
	return "", &ToolNotFoundError{Tool: t.primary}
}

// BibTeX returns the absolute path of the bibliography tool via Get.
func (t *Toolchain) BibTeX() (string, error) {
	return t.Get(t.bibTool)
}

// Available reports whether a toolchain was found: true when the registry
// holds at least one tool.
func (t *Toolchain) Available() bool {
	return len(t.registry) > 0
}

// Require returns nil when Available, and a NotAvailableError otherwise,
// for callers that must have the toolchain present.
func (t *Toolchain) Require() error {
	if !t.Available() {
		return &NotAvailableError{Prefix: t.prefix}
	}
	return nil
}

// Verify is the strict availability check: the data root must exist, the
// primary tool must resolve, and spawning it with a version query must
// succeed. Output is discarded. A nil return means the toolchain is fit
// for real work, not just present on disk.
func (t *Toolchain) Verify(ctx context.Context) error {
	if t.dataRoot == "" {
		return &NotAvailableError{Prefix: t.prefix, Reason: "data root not found"}
	}

	primary, err := t.Primary()
	if err != nil {
		return &NotAvailableError{Prefix: t.prefix, Reason: t.primary + " not found"}
	}

	cmd := execCommand(ctx, primary, versionFlag)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		return &NotAvailableError{Prefix: t.prefix, Reason: primary + " failed the version probe: " + err.Error()}
	}

	return nil
}
