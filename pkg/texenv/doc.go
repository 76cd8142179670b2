// SPDX-License-Identifier: MPL-2.0

// Package texenv locates an installed, relocatable LaTeX toolchain and
// invokes its executables.
//
// A toolchain lives under an installation prefix (the root of a relocatable
// environment). Locate probes the conventional bundle layouts beneath the
// prefix, enumerates the executables it finds into a case-insensitive
// name-to-path registry, and returns a Toolchain whose lookups and run
// wrappers operate on that registry.
//
// Probing is lenient: a missing directory degrades to an empty registry and
// never fails Locate. Lookups are strict: Get returns an error naming the
// missing tool, and Require fails loudly when no toolchain was found. The
// package never parses TeX source and never inspects the output of the tools
// it launches; it is a discovery and invocation layer only.
package texenv
