// SPDX-License-Identifier: MPL-2.0

// Package project loads per-project texenv.toml manifests. A manifest
// declares compile defaults for one document tree: the main document,
// extra engine flags, and a project-local style search path. Manifests
// are optional; every loader treats an absent file as "no defaults".
package project

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/texenv/texenv/pkg/texenv"
)

// FileName is the manifest filename probed in a project directory.
const FileName = "texenv.toml"

type (
	// File is a decoded texenv.toml manifest. Relative paths inside it are
	// interpreted against the directory the file was found in; resolution
	// happens in the accessors, not at decode time.
	File struct {
		// Main is the document compiled when the command line names none.
		Main string `toml:"main"`
		// ExtraArgs are engine flags applied after configured flags and
		// before command-line flags.
		ExtraArgs []string `toml:"extra-args"`
		// Search declares the project-local style search path.
		Search SearchSection `toml:"search-path"`
	}

	// SearchSection mirrors the [search-path] table.
	SearchSection struct {
		TexmfHome string   `toml:"texmf-home"`
		TexInputs []string `toml:"tex-inputs"`
	}
)

// Load reads the manifest from dir. An absent file returns (nil, nil);
// projects without a manifest are the common case. Unknown keys are
// rejected so a typo fails loudly instead of being silently ignored.
func Load(dir string) (*File, error) {
	path := filepath.Join(dir, FileName)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read project file %s: %w", path, err)
	}

	var f File
	if err := unmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse project file %s: %w", path, err)
	}

	return &f, nil
}

// Find walks from start up to the filesystem root and returns the first
// manifest together with the directory it was found in. No manifest
// anywhere returns (nil, "", nil).
func Find(start string) (*File, string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve project search start %q: %w", start, err)
	}

	for {
		f, err := Load(dir)
		if err != nil {
			return nil, "", err
		}
		if f != nil {
			return f, dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, "", nil
		}
		dir = parent
	}
}

// MainPath returns the main document resolved against the project
// directory, or "" when the manifest declares none.
func (f *File) MainPath(dir string) string {
	if f.Main == "" {
		return ""
	}
	return resolve(dir, f.Main)
}

// SearchPath converts the [search-path] table into a texenv.SearchPath,
// resolving relative entries against the project directory.
func (f *File) SearchPath(dir string) texenv.SearchPath {
	var sp texenv.SearchPath
	if f.Search.TexmfHome != "" {
		sp.TexmfHome = resolve(dir, f.Search.TexmfHome)
	}
	for _, entry := range f.Search.TexInputs {
		sp.TexInputs = append(sp.TexInputs, resolve(dir, entry))
	}
	return sp
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func unmarshalStrict(data []byte, f *File) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(f)
}
