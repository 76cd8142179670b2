// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/texenv/texenv/pkg/types"
)

// ExitError carries a process exit status up through RunE handlers so the
// top of the program decides when to call os.Exit. Commands that relay a
// child's status, like compile and run, return one of these instead of
// exiting mid-stack.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the status to hand os.Exit. Codes outside 0-255, like
// the -1 Go reports for a signal-killed child, normalize to 1.
func (e *ExitError) ExitCode() int {
	return int(e.Code.Normalize())
}
