// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package texenv

import (
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"golang.org/x/term"
)

// runPTY starts cmd attached to a freshly allocated pseudo-terminal and
// bridges it to the caller's streams, so the child sees a real TTY.
func runPTY(cmd *exec.Cmd, stdin io.Reader, stdout io.Writer) error {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = ptmx.Close() }() // PTY cleanup; error non-critical

	// Mirror the controlling terminal's size when stdin is one.
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, height, sizeErr := term.GetSize(int(f.Fd())); sizeErr == nil {
			_ = pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(height), Cols: uint16(width)})
		}
	}

	go func() {
		_, _ = io.Copy(ptmx, stdin) //nolint:errcheck // I/O copy; errors are non-recoverable
	}()
	// The read side returns once the child exits and the PTY closes.
	_, _ = io.Copy(stdout, ptmx) //nolint:errcheck // I/O copy; errors are non-recoverable

	return cmd.Wait()
}
