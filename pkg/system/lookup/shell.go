package lookup

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ja7ad/taskman/pkg/model"
)

// DefaultTimeout bounds one external lookup.
const DefaultTimeout = 2 * time.Second

// Shell resolves through "readlink <root>/<pid>/exe" and "ls -l <root>/<pid>",
// optionally prefixed by an elevation command such as "sudo -n".
type Shell struct {
	exec    Executor
	elevate []string
	timeout time.Duration
	root    string
}

type ShellOption func(*Shell)

func WithExecutor(e Executor) ShellOption { return func(s *Shell) { s.exec = e } }

// WithElevate prefixes every command, e.g. []string{"sudo", "-n"}.
func WithElevate(argv ...string) ShellOption {
	return func(s *Shell) { s.elevate = slices.Clone(argv) }
}

func WithTimeout(d time.Duration) ShellOption { return func(s *Shell) { s.timeout = d } }

// WithProcRoot sets the procfs mount the looked-up paths live under.
func WithProcRoot(root string) ShellOption { return func(s *Shell) { s.root = root } }

func NewShell(opts ...ShellOption) *Shell {
	s := &Shell{exec: ExecExecutor{}, timeout: DefaultTimeout, root: "/proc"}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Shell) run(ctx context.Context, args ...string) ([]byte, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	argv := append(slices.Clone(s.elevate), args...)
	out, err := s.exec.Run(ctx, argv[0], argv[1:]...)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	return out, err
}

func (s *Shell) pidPath(pid uint32, elem ...string) string {
	return filepath.Join(append([]string{s.root, strconv.FormatUint(uint64(pid), 10)}, elem...)...)
}

// Executable resolves the <pid>/exe symlink.
func (s *Shell) Executable(ctx context.Context, pid uint32) (string, error) {
	out, err := s.run(ctx, "readlink", s.pidPath(pid, "exe"))
	if err != nil {
		return "", fmt.Errorf("readlink pid %d: %w", pid, err)
	}
	path := strings.TrimSpace(string(out))
	if path == "" {
		return "", ErrUnexpectedOutput
	}
	return path, nil
}

// Owner reads the owner column of the last entry of "ls -l <root>/<pid>".
// A failed listing is reported as model.OwnerRoot. A timeout or
// cancellation is an error, not a denial.
func (s *Shell) Owner(ctx context.Context, pid uint32) (string, error) {
	out, err := s.run(ctx, "ls", "-l", s.pidPath(pid))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", fmt.Errorf("ls pid %d: %w", pid, err)
		}
		return model.OwnerRoot, nil
	}
	return parseLsOwner(string(out))
}

func parseLsOwner(out string) (string, error) {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	last := lines[len(lines)-1]
	f := strings.Fields(last)
	if len(f) < 3 {
		return "", ErrUnexpectedOutput
	}
	return f[2], nil
}
