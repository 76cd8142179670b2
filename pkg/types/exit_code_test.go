// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestExitCodeValidate(t *testing.T) {
	t.Parallel()

	for _, code := range []ExitCode{0, 1, 126, 255} {
		if err := code.Validate(); err != nil {
			t.Errorf("ExitCode(%d).Validate() = %v, want nil", code, err)
		}
	}

	for _, code := range []ExitCode{-1, 256, 1000} {
		err := code.Validate()
		if err == nil {
			t.Errorf("ExitCode(%d).Validate() = nil, want error", code)
			continue
		}
		if !errors.Is(err, ErrInvalidExitCode) {
			t.Errorf("ExitCode(%d) error %v should match ErrInvalidExitCode", code, err)
		}
		var invalid *InvalidExitCodeError
		if !errors.As(err, &invalid) || invalid.Value != code {
			t.Errorf("ExitCode(%d) error should carry the offending value, got %v", code, err)
		}
	}
}

func TestExitCodeIsSuccess(t *testing.T) {
	t.Parallel()

	if !ExitCode(0).IsSuccess() {
		t.Error("ExitCode(0).IsSuccess() = false, want true")
	}
	for _, code := range []ExitCode{1, 2, 255} {
		if code.IsSuccess() {
			t.Errorf("ExitCode(%d).IsSuccess() = true, want false", code)
		}
	}
}

func TestExitCodeNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code ExitCode
		want ExitCode
	}{
		{0, 0},
		{42, 42},
		{255, 255},
		{-1, 1},
		{256, 1},
	}
	for _, tt := range tests {
		if got := tt.code.Normalize(); got != tt.want {
			t.Errorf("ExitCode(%d).Normalize() = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestExitCodeString(t *testing.T) {
	t.Parallel()

	if got := ExitCode(42).String(); got != "42" {
		t.Errorf("ExitCode(42).String() = %q, want %q", got, "42")
	}
	if got := ExitCode(0).String(); got != "0" {
		t.Errorf("ExitCode(0).String() = %q, want %q", got, "0")
	}
}
