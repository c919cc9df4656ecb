//go:build linux

package sampler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/taskman/pkg/model"
	"github.com/ja7ad/taskman/pkg/system/proc"
)

func quiet() Option { return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))) }

var errGone = errors.New("gone")

// fakeProcesses serves a fixed table that tests can swap between cycles.
type fakeProcesses struct {
	mu      sync.Mutex
	samples map[uint32]model.ProcessSample
	listErr error
	reads   int
	onRead  func(pid uint32)
}

func newFakeProcesses(ps ...model.ProcessSample) *fakeProcesses {
	f := &fakeProcesses{samples: map[uint32]model.ProcessSample{}}
	f.set(ps...)
	return f
}

func (f *fakeProcesses) set(ps ...model.ProcessSample) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.samples = map[uint32]model.ProcessSample{}
	for _, p := range ps {
		f.samples[p.PID] = p
	}
}

func (f *fakeProcesses) ListPIDs() ([]uint32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var pids []uint32
	for pid := range f.samples {
		pids = append(pids, pid)
	}
	slices.Sort(pids)
	return pids, nil
}

func (f *fakeProcesses) ReadProcess(_ context.Context, pid uint32) model.ProcessSample {
	f.mu.Lock()
	f.reads++
	p, ok := f.samples[pid]
	hook := f.onRead
	f.mu.Unlock()
	if hook != nil {
		hook(pid)
	}
	if !ok {
		return model.NewProcessSample(pid)
	}
	return p
}

func (f *fakeProcesses) ClockTicks() int64 { return 100 }

// cpuSeq returns readings in order, then repeats the last one.
type cpuSeq struct {
	mu    sync.Mutex
	items []cpuRead
}

type cpuRead struct {
	t   proc.CPUTimes
	err error
}

func (c *cpuSeq) ReadSystemCPU() (proc.CPUTimes, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.items[0]
	if len(c.items) > 1 {
		c.items = c.items[1:]
	}
	return r.t, r.err
}

type memFunc func() (proc.MemInfo, error)

func (f memFunc) ReadMemInfo() (proc.MemInfo, error) { return f() }

// procTree writes a minimal procfs into an in-memory fs.
type procTree struct {
	t   *testing.T
	mem afero.Fs
}

func newProcTree(t *testing.T) *procTree {
	p := &procTree{t: t, mem: afero.NewMemMapFs()}
	require.NoError(t, p.mem.MkdirAll("/proc", 0o755))
	return p
}

func (p *procTree) write(rel, content string) {
	p.t.Helper()
	path := filepath.Join("/proc", rel)
	require.NoError(p.t, p.mem.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(p.t, afero.WriteFile(p.mem, path, []byte(content), 0o644))
}

func (p *procTree) FS() proc.FS { return proc.NewFSWith(p.mem, "/proc") }

type staticResolver struct{}

func (staticResolver) Owner(context.Context, uint32) (string, error) { return "alice", nil }

func (staticResolver) Executable(_ context.Context, pid uint32) (string, error) {
	if pid == 1 {
		return "", errGone
	}
	return "/usr/bin/app", nil
}
