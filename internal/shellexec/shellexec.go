// Package shellexec runs a composed remediation command as a single shell
// invocation, wiring the caller's stdio through so build output stays
// visible.
package shellexec

import (
	"context"
	"io"
	"os"
	"os/exec"
	"runtime"

	"resync/internal/errors"
)

// ShellExecutor implements advisor.Executor with one `sh -c` invocation in
// a fixed working directory.
type ShellExecutor struct {
	// Dir is the working directory for the command, normally the repo root.
	Dir string

	// Stdout and Stderr default to the process streams when nil.
	Stdout io.Writer
	Stderr io.Writer
}

// New creates an executor rooted at dir.
func New(dir string) *ShellExecutor {
	return &ShellExecutor{Dir: dir}
}

// Execute runs the command and returns its exit status unchanged. The whole
// command runs as one shell invocation; partial execution never happens at
// this layer. A non-zero status is returned alongside an ExecutionFailed
// error so callers can both propagate the status and report the cause.
func (e *ShellExecutor) Execute(ctx context.Context, command string) (int, error) {
	shell, flag := "sh", "-c"
	if runtime.GOOS == "windows" {
		shell, flag = "cmd", "/C"
	}

	cmd := exec.CommandContext(ctx, shell, flag, command)
	cmd.Dir = e.Dir
	cmd.Stdout = e.stdout()
	cmd.Stderr = e.stderr()
	cmd.Stdin = os.Stdin

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		status := exitErr.ExitCode()
		return status, errors.New(
			errors.ExecutionFailed,
			"Sync command exited non-zero",
			err,
			nil,
		).WithDetails(map[string]interface{}{"command": command, "exitStatus": status})
	}

	// The shell itself could not be started.
	return -1, errors.New(errors.ExecutionFailed, "Failed to invoke shell", err, nil)
}

func (e *ShellExecutor) stdout() io.Writer {
	if e.Stdout != nil {
		return e.Stdout
	}
	return os.Stdout
}

func (e *ShellExecutor) stderr() io.Writer {
	if e.Stderr != nil {
		return e.Stderr
	}
	return os.Stderr
}
