// SPDX-License-Identifier: MPL-2.0

package texenv

import (
	"errors"
	"fmt"
)

var (
	// ErrToolNotFound is the sentinel error wrapped by ToolNotFoundError.
	ErrToolNotFound = errors.New("tool not found")

	// ErrNotAvailable is the sentinel error wrapped by NotAvailableError.
	ErrNotAvailable = errors.New("no LaTeX toolchain available")
)

type (
	// ToolNotFoundError is returned when a name lookup misses the registry.
	// It names the requested tool so callers can report exactly what was
	// asked for.
	ToolNotFoundError struct {
		Tool string
	}

	// NotAvailableError is returned by Require and Verify when no usable
	// toolchain was found under the installation prefix.
	NotAvailableError struct {
		Prefix string
		Reason string
	}
)

// Error implements the error interface.
func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("tool %q not found in LaTeX toolchain", e.Tool)
}

// Unwrap returns ErrToolNotFound so callers can use errors.Is for programmatic detection.
func (e *ToolNotFoundError) Unwrap() error { return ErrToolNotFound }

// Error implements the error interface.
func (e *NotAvailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("no LaTeX toolchain available under %q: %s", e.Prefix, e.Reason)
	}
	return fmt.Sprintf("no LaTeX toolchain available under %q", e.Prefix)
}

// Unwrap returns ErrNotAvailable so callers can use errors.Is for programmatic detection.
func (e *NotAvailableError) Unwrap() error { return ErrNotAvailable }
