// SPDX-License-Identifier: MPL-2.0

package texenv

import (
	"os"
	"path/filepath"
	"strings"
)

// SearchPath configures where a spawned tool looks for style files and
// private texmf trees. It is applied per spawn via WithSearchPath and
// never touches the parent process environment, so concurrent runs with
// different search paths cannot interfere.
type SearchPath struct {
	// TexmfHome becomes the child's TEXMFHOME. Empty leaves the
	// variable untouched.
	TexmfHome string

	// TexInputs entries are searched by the engine before its built-in
	// defaults. Entries are joined with the platform list separator.
	TexInputs []string
}

// IsZero reports whether the SearchPath changes nothing.
func (s SearchPath) IsZero() bool {
	return s.TexmfHome == "" && len(s.TexInputs) == 0
}

// Merge returns s overlaid with override: a non-empty override TexmfHome
// wins, and override TexInputs entries are searched before s's.
func (s SearchPath) Merge(override SearchPath) SearchPath {
	merged := SearchPath{TexmfHome: s.TexmfHome}
	if override.TexmfHome != "" {
		merged.TexmfHome = override.TexmfHome
	}
	if len(override.TexInputs) > 0 || len(s.TexInputs) > 0 {
		merged.TexInputs = append(append([]string{}, override.TexInputs...), s.TexInputs...)
	}
	return merged
}

// Environ returns base with TEXMFHOME and TEXINPUTS rewritten. TEXMFHOME
// is replaced outright. TEXINPUTS entries are prepended to any value
// already present in base, and the result always ends with a separator so
// the engine's built-in defaults stay reachable. A zero SearchPath
// returns base unchanged.
func (s SearchPath) Environ(base []string) []string {
	if s.IsZero() {
		return base
	}

	sep := string(filepath.ListSeparator)
	inputs := strings.Join(s.TexInputs, sep)

	env := make([]string, 0, len(base)+2)
	for _, kv := range base {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			env = append(env, kv)
			continue
		}
		switch {
		case s.TexmfHome != "" && name == "TEXMFHOME":
			continue
		case len(s.TexInputs) > 0 && name == "TEXINPUTS":
			// Keep the caller's own entries behind the configured ones.
			if value != "" {
				inputs = inputs + sep + value
			}
			continue
		}
		env = append(env, kv)
	}

	if s.TexmfHome != "" {
		env = append(env, "TEXMFHOME="+s.TexmfHome)
	}
	if len(s.TexInputs) > 0 {
		if !strings.HasSuffix(inputs, sep) {
			inputs += sep
		}
		env = append(env, "TEXINPUTS="+inputs)
	}

	return env
}

// DefaultSearchPath derives the search path that exposes the bundle's own
// style packages: TEXMFHOME at the bundled texmf-dist tree and one
// TEXINPUTS entry per package directory under texmf-dist/tex/latex.
// Returns the zero SearchPath when the data root was not resolved.
func (t *Toolchain) DefaultSearchPath() SearchPath {
	if t.dataRoot == "" {
		return SearchPath{}
	}

	var sp SearchPath

	texmf := filepath.Join(t.dataRoot, "texmf-dist")
	if info, err := os.Stat(texmf); err == nil && info.IsDir() {
		sp.TexmfHome = texmf
	}

	latexDir := filepath.Join(texmf, "tex", "latex")
	entries, err := os.ReadDir(latexDir)
	if err != nil {
		return sp
	}
	for _, entry := range entries {
		if entry.IsDir() {
			sp.TexInputs = append(sp.TexInputs, filepath.Join(latexDir, entry.Name()))
		}
	}

	return sp
}
