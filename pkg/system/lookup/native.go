package lookup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/ja7ad/taskman/pkg/model"
)

// Native resolves in-process through gopsutil, without spawning commands.
// It sees only what the current user may read.
type Native struct{}

func (Native) Owner(ctx context.Context, pid uint32) (string, error) {
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return "", fmt.Errorf("open pid %d: %w", pid, err)
	}
	name, err := p.UsernameWithContext(ctx)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return model.OwnerRoot, nil
		}
		return "", fmt.Errorf("username pid %d: %w", pid, err)
	}
	return name, nil
}

func (Native) Executable(ctx context.Context, pid uint32) (string, error) {
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return "", fmt.Errorf("open pid %d: %w", pid, err)
	}
	exe, err := p.ExeWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("exe pid %d: %w", pid, err)
	}
	if exe == "" {
		return "", ErrUnexpectedOutput
	}
	return exe, nil
}
