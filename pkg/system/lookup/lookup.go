package lookup

import (
	"context"
	"fmt"
)

// Modes accepted by New.
const (
	ModeShell  = "shell"
	ModeNative = "native"
	ModeNone   = "none"
)

// Resolver is satisfied by Shell and Native.
type Resolver interface {
	Owner(ctx context.Context, pid uint32) (string, error)
	Executable(ctx context.Context, pid uint32) (string, error)
}

// New returns the resolver for mode. ModeNone returns a nil Resolver.
func New(mode string, opts ...ShellOption) (Resolver, error) {
	switch mode {
	case ModeShell, "":
		return NewShell(opts...), nil
	case ModeNative:
		return Native{}, nil
	case ModeNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("lookup: unknown mode %q", mode)
	}
}
