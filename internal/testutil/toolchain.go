// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/texenv/texenv/pkg/platform"
)

// MustToolchainTree builds a flat-layout toolchain under a fresh temp
// directory and returns its prefix. Each tool name becomes an executable
// in the layout's bin/ directory (with the host's executable suffix) and
// share/<bundleDir> is created as the data root.
func MustToolchainTree(t testing.TB, bundleDir string, tools ...string) string {
	t.Helper()

	prefix := t.TempDir()

	// Windows installs nest the layout one level down.
	root := prefix
	if platform.Current() == platform.Windows {
		root = filepath.Join(prefix, "Library")
	}

	suffix := platform.ExeSuffix(platform.Current())
	for _, tool := range tools {
		MustWriteFile(t, filepath.Join(root, "bin", tool+suffix), []byte("#!/bin/sh\n"), 0o755)
	}
	MustMkdirAll(t, filepath.Join(root, "share", bundleDir), 0o755)

	return prefix
}
