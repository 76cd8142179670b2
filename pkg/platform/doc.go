// SPDX-License-Identifier: MPL-2.0

// Package platform normalizes host operating system and CPU architecture
// identifiers into the names used by relocatable LaTeX toolchain bundles.
//
// Bundle layouts are keyed by an architecture triple such as "x86_64-linux"
// or "universal-darwin"; this package is the single place those names are
// derived from runtime.GOOS and runtime.GOARCH.
package platform
