// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	"runtime"
)

// Sentinel errors wrapped by the typed validation errors below, for
// programmatic detection with errors.Is.
var (
	ErrUnsupportedOS   = errors.New("unsupported operating system")
	ErrUnsupportedArch = errors.New("unsupported CPU architecture")
)

type (
	// OS is a normalized operating system identifier. Values match
	// runtime.GOOS so they can be compared against it directly.
	OS string

	// Arch is a normalized CPU architecture identifier. Values follow the
	// toolchain bundle convention (x86_64, aarch64) rather than Go's
	// GOARCH names.
	Arch string

	// UnsupportedOSError is returned when an OS has no bundle layout
	// convention.
	UnsupportedOSError struct {
		Value OS
	}

	// UnsupportedArchError is returned when an Arch has no bundle layout
	// convention.
	UnsupportedArchError struct {
		Value Arch
	}
)

// Operating systems with a defined bundle layout.
const (
	Linux   OS = "linux"
	MacOS   OS = "darwin"
	Windows OS = "windows"
)

// CPU architectures with a defined bundle layout.
const (
	AMD64 Arch = "x86_64"
	ARM64 Arch = "aarch64"
)

// Error implements the error interface.
func (e *UnsupportedOSError) Error() string {
	return fmt.Sprintf("unsupported operating system %q (expected linux, darwin or windows)", string(e.Value))
}

// Unwrap returns ErrUnsupportedOS so callers can use errors.Is.
func (e *UnsupportedOSError) Unwrap() error { return ErrUnsupportedOS }

// Error implements the error interface.
func (e *UnsupportedArchError) Error() string {
	return fmt.Sprintf("unsupported CPU architecture %q (expected x86_64 or aarch64)", string(e.Value))
}

// Unwrap returns ErrUnsupportedArch so callers can use errors.Is.
func (e *UnsupportedArchError) Unwrap() error { return ErrUnsupportedArch }

// Current returns the host operating system identifier.
func Current() OS { return OS(runtime.GOOS) }

// CurrentArch returns the host CPU architecture in bundle naming.
// GOARCH values without a bundle name pass through verbatim so that
// validation can report them.
func CurrentArch() Arch {
	switch runtime.GOARCH {
	case "amd64":
		return AMD64
	case "arm64":
		return ARM64
	default:
		return Arch(runtime.GOARCH)
	}
}

// Validate checks that the host platform has a bundle layout convention,
// reporting the operating system problem first when both are unknown.
func Validate() error {
	if err := Current().Validate(); err != nil {
		return err
	}
	return CurrentArch().Validate()
}

// Validate returns an error if the OS has no bundle layout convention.
func (o OS) Validate() error {
	switch o {
	case Linux, MacOS, Windows:
		return nil
	default:
		return &UnsupportedOSError{Value: o}
	}
}

// Validate returns an error if the Arch has no bundle layout convention.
func (a Arch) Validate() error {
	switch a {
	case AMD64, ARM64:
		return nil
	default:
		return &UnsupportedArchError{Value: a}
	}
}

// String returns the identifier as a plain string.
func (o OS) String() string { return string(o) }

// String returns the identifier as a plain string.
func (a Arch) String() string { return string(a) }

// Triple returns the per-platform bundle directory name. Bundles ship a
// single build on windows (x86_64) and fat binaries on macOS, so the triple
// ignores the arch on those systems.
func Triple(o OS, a Arch) string {
	switch o {
	case Windows:
		return "x86_64-windows"
	case MacOS:
		return "universal-darwin"
	default:
		return fmt.Sprintf("%s-%s", a, o)
	}
}

// ExeSuffix returns the executable filename suffix for the OS.
func ExeSuffix(o OS) string {
	if o == Windows {
		return ".exe"
	}
	return ""
}
