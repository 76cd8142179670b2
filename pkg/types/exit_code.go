// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidExitCode is matched with errors.Is to detect out-of-range
// exit codes without inspecting the concrete error type.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode is a process exit status. POSIX gives a status 8 bits, so
	// the representable range is 0 through 255 with 0 meaning success.
	// Values outside that range exist transiently, like the -1 Go reports
	// for a signal-killed process, and fail Validate.
	ExitCode int

	// InvalidExitCodeError reports an ExitCode outside 0-255.
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate reports whether the code fits a real process status.
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess reports whether the code means the process succeeded.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// Normalize clamps out-of-range codes to 1, the conventional general
// failure status, so the result is always safe to hand os.Exit.
func (c ExitCode) Normalize() ExitCode {
	if c.Validate() != nil {
		return 1
	}
	return c
}

// String renders the code in decimal.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
