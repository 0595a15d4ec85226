package envprobe

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// Runner abstracts binary lookup and command execution for testability.
type Runner interface {
	// LookPath checks if a binary exists in PATH.
	LookPath(name string) (string, error)

	// Run executes a command and returns its output.
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

// SystemRunner implements Runner using os/exec.
type SystemRunner struct {
	// Timeout for each command execution.
	Timeout time.Duration
}

// NewSystemRunner creates a runner with the given timeout.
func NewSystemRunner(timeout time.Duration) *SystemRunner {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &SystemRunner{Timeout: timeout}
}

// LookPath checks if a binary exists in PATH.
func (r *SystemRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run executes a command and returns its output.
func (r *SystemRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return strings.TrimSpace(stdout.String()), strings.TrimSpace(stderr.String()), err
}

// ToolVersion reports the first line of `name --version`, or "" when the
// tool cannot be invoked. Diagnostics use it to show which toolchain build
// is actually on PATH.
func ToolVersion(ctx context.Context, runner Runner, name string) string {
	stdout, _, err := runner.Run(ctx, name, "--version")
	if err != nil || stdout == "" {
		return ""
	}
	if i := strings.IndexByte(stdout, '\n'); i >= 0 {
		stdout = stdout[:i]
	}
	return strings.TrimSpace(stdout)
}

// CachingRunner wraps a Runner and memoizes results. Probing and
// diagnostics may consult the same tool several times in one invocation;
// each lookup or command runs at most once.
type CachingRunner struct {
	inner Runner

	mu       sync.Mutex
	lookPath map[string]lookPathResult
	commands map[string]runResult
}

type lookPathResult struct {
	path string
	err  error
}

type runResult struct {
	stdout string
	stderr string
	err    error
}

// NewCachingRunner wraps the given runner with memoization.
func NewCachingRunner(inner Runner) *CachingRunner {
	return &CachingRunner{
		inner:    inner,
		lookPath: make(map[string]lookPathResult),
		commands: make(map[string]runResult),
	}
}

// LookPath implements Runner with memoized results.
func (c *CachingRunner) LookPath(name string) (string, error) {
	c.mu.Lock()
	if result, ok := c.lookPath[name]; ok {
		c.mu.Unlock()
		return result.path, result.err
	}
	c.mu.Unlock()

	path, err := c.inner.LookPath(name)

	c.mu.Lock()
	c.lookPath[name] = lookPathResult{path: path, err: err}
	c.mu.Unlock()

	return path, err
}

// Run implements Runner with memoized results keyed by the full command line.
func (c *CachingRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	key := name + " " + strings.Join(args, " ")

	c.mu.Lock()
	if result, ok := c.commands[key]; ok {
		c.mu.Unlock()
		return result.stdout, result.stderr, result.err
	}
	c.mu.Unlock()

	stdout, stderr, err := c.inner.Run(ctx, name, args...)

	c.mu.Lock()
	c.commands[key] = runResult{stdout: stdout, stderr: stderr, err: err}
	c.mu.Unlock()

	return stdout, stderr, err
}

// MockRunner implements Runner for testing.
type MockRunner struct {
	mu       sync.Mutex
	lookPath map[string]string
	commands map[string]runResult
}

// NewMockRunner creates a new mock runner.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		lookPath: make(map[string]string),
		commands: make(map[string]runResult),
	}
}

// SetLookPath configures the mock to return a path for the given name.
func (m *MockRunner) SetLookPath(name, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookPath[name] = path
}

// SetCommand configures the mock result for a command.
func (m *MockRunner) SetCommand(name string, stdout, stderr string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands[name] = runResult{stdout: stdout, stderr: stderr, err: err}
}

// LookPath implements Runner.
func (m *MockRunner) LookPath(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if path, ok := m.lookPath[name]; ok {
		return path, nil
	}
	return "", exec.ErrNotFound
}

// Run implements Runner.
func (m *MockRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if result, ok := m.commands[name]; ok {
		return result.stdout, result.stderr, result.err
	}

	key := name + " " + strings.Join(args, " ")
	if result, ok := m.commands[key]; ok {
		return result.stdout, result.stderr, result.err
	}

	return "", "", exec.ErrNotFound
}
