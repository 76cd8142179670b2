// SPDX-License-Identifier: MPL-2.0

//go:build windows

package texenv

import (
	"io"
	"os/exec"
)

// runPTY falls back to plain pipes on windows, where no pseudo-terminal
// is allocated.
func runPTY(cmd *exec.Cmd, stdin io.Reader, stdout io.Writer) error {
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stdout
	return cmd.Run()
}
