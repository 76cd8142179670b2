// SPDX-License-Identifier: MPL-2.0

package texenv

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/texenv/texenv/pkg/types"
)

// execCommand creates the exec.Cmd for tool invocations.
// This indirection allows injection of mock implementations for testing.
var execCommand = exec.CommandContext

type (
	// RunOption adjusts a single tool invocation.
	RunOption func(*runConfig)

	// Result is the outcome of a completed tool invocation. A non-zero
	// ExitCode is a normal result, not an error; an error is returned by
	// Run only when the spawn itself failed.
	Result struct {
		// ExitCode is the exit code of the tool.
		ExitCode types.ExitCode
		// Output contains captured stdout (only under WithCapture).
		Output string
		// ErrOutput contains captured stderr (only under WithCapture).
		ErrOutput string
	}

	runConfig struct {
		dir        string
		stdout     io.Writer
		stderr     io.Writer
		stdin      io.Reader
		capture    bool
		pty        bool
		searchPath SearchPath
		extraEnv   []string
	}
)

// Success returns true if the tool exited cleanly.
func (r *Result) Success() bool { return r.ExitCode.IsSuccess() }

// WithDir sets the child's working directory.
func WithDir(dir string) RunOption {
	return func(c *runConfig) {
		c.dir = dir
	}
}

// WithStdout routes the child's standard output. Default os.Stdout.
func WithStdout(w io.Writer) RunOption {
	return func(c *runConfig) {
		c.stdout = w
	}
}

// WithStderr routes the child's standard error. Default os.Stderr.
func WithStderr(w io.Writer) RunOption {
	return func(c *runConfig) {
		c.stderr = w
	}
}

// WithStdin routes the child's standard input. Default os.Stdin.
func WithStdin(r io.Reader) RunOption {
	return func(c *runConfig) {
		c.stdin = r
	}
}

// WithCapture routes both output streams into the Result instead of the
// configured writers.
func WithCapture() RunOption {
	return func(c *runConfig) {
		c.capture = true
	}
}

// WithSearchPath applies a style-file search path to this invocation only.
// The parent process environment is never modified.
func WithSearchPath(sp SearchPath) RunOption {
	return func(c *runConfig) {
		c.searchPath = sp
	}
}

// WithExtraEnv appends KEY=value pairs to the child's environment.
func WithExtraEnv(env []string) RunOption {
	return func(c *runConfig) {
		c.extraEnv = append(c.extraEnv, env...)
	}
}

// WithPTY attaches the child to a pseudo-terminal on unix systems, keeping
// the engine's interactive error prompts usable. On windows, and under
// WithCapture, the option is ignored.
func WithPTY() RunOption {
	return func(c *runConfig) {
		c.pty = true
	}
}

// Run resolves name via Get and invokes it with the given argument list,
// waiting for completion. The child inherits the parent's stdio unless
// options say otherwise. No retry and no timeout of its own; cancelling
// ctx kills the child.
func (t *Toolchain) Run(ctx context.Context, name string, args []string, opts ...RunOption) (*Result, error) {
	path, err := t.Get(name)
	if err != nil {
		return nil, err
	}
	return t.runTool(ctx, path, args, opts...)
}

// RunPrimary invokes the primary tool on texFile. The argument list is
// extraArgs followed by the file path, the order the engine expects
// option flags in. The primary tool resolves through Primary, so the
// system-path fallback applies.
func (t *Toolchain) RunPrimary(ctx context.Context, texFile string, extraArgs []string, opts ...RunOption) (*Result, error) {
	path, err := t.Primary()
	if err != nil {
		return nil, err
	}
	args := append(append([]string{}, extraArgs...), texFile)
	return t.runTool(ctx, path, args, opts...)
}

func (t *Toolchain) runTool(ctx context.Context, path string, args []string, opts ...RunOption) (*Result, error) {
	cfg := runConfig{
		stdout: os.Stdout,
		stderr: os.Stderr,
		stdin:  os.Stdin,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	cmd := execCommand(ctx, path, args...)
	if cfg.dir != "" {
		cmd.Dir = cfg.dir
	}

	if len(cfg.extraEnv) > 0 || !cfg.searchPath.IsZero() {
		// exec.Cmd.Env being nil means "inherit everything"; a mock
		// execCommand may have pre-seeded Env, so extend rather than
		// rebuild from scratch.
		base := cmd.Env
		if base == nil {
			base = os.Environ()
		}
		cmd.Env = cfg.searchPath.Environ(append(base, cfg.extraEnv...))
	}

	var stdout, stderr bytes.Buffer
	usePTY := cfg.pty && !cfg.capture
	switch {
	case cfg.capture:
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
		cmd.Stdin = cfg.stdin
	case usePTY:
		// Stream wiring happens inside runPTY.
	default:
		cmd.Stdout = cfg.stdout
		cmd.Stderr = cfg.stderr
		cmd.Stdin = cfg.stdin
	}

	var err error
	if usePTY {
		err = runPTY(cmd, cfg.stdin, cfg.stdout)
	} else {
		err = cmd.Run()
	}

	result := &Result{
		Output:    stdout.String(),
		ErrOutput: stderr.String(),
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = types.ExitCode(exitErr.ExitCode())
			return result, nil
		}
		// Spawn failures pass through untranslated.
		return nil, err
	}

	return result, nil
}
