// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"testing"

	"github.com/texenv/texenv/pkg/types"
)

func TestExitErrorMessage(t *testing.T) {
	t.Parallel()

	bare := &ExitError{Code: types.ExitCode(7)}
	if got := bare.Error(); got != "exit status 7" {
		t.Errorf("Error() = %q, want %q", got, "exit status 7")
	}

	cause := errors.New("engine crashed")
	wrapped := &ExitError{Code: 1, Err: cause}
	if got := wrapped.Error(); got != "engine crashed" {
		t.Errorf("Error() with cause = %q, want the cause message", got)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}
}

func TestExitErrorExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code types.ExitCode
		want int
	}{
		{"passes a child code through", 12, 12},
		{"zero stays zero", 0, 0},
		{"top of the range passes", 255, 255},
		{"signal kill normalizes to one", -1, 1},
		{"overflow normalizes to one", 300, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := &ExitError{Code: tt.code}
			if got := e.ExitCode(); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
