// Package lookup resolves a process's owner and executable path.
//
// These lookups may need elevated privileges, may be denied, and may hang,
// so they run behind a timeout and their failure is an ordinary outcome.
package lookup

import (
	"context"
	"errors"
	"os/exec"
)

var (
	// ErrUnexpectedOutput indicates lookup output that could not be parsed.
	ErrUnexpectedOutput = errors.New("lookup: unexpected output")
)

// Executor runs an external command and returns its stdout.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecExecutor runs commands with os/exec.
type ExecExecutor struct{}

func (ExecExecutor) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func (f ExecutorFunc) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return f(ctx, name, args...)
}
