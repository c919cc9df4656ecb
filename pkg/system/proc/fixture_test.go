//go:build linux

package proc

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// procFixture is an in-memory procfs mount.
type procFixture struct {
	t    *testing.T
	mem  afero.Fs
	root string
}

func newProcFixture(t *testing.T) *procFixture {
	t.Helper()
	f := &procFixture{t: t, mem: afero.NewMemMapFs(), root: "/proc"}
	require.NoError(t, f.mem.MkdirAll(f.root, 0o755))
	return f
}

func (f *procFixture) FS() FS { return NewFSWith(f.mem, f.root) }

func (f *procFixture) write(rel, content string) {
	f.t.Helper()
	path := filepath.Join(f.root, rel)
	require.NoError(f.t, f.mem.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(f.t, afero.WriteFile(f.mem, path, []byte(content), 0o644))
}

func (f *procFixture) mkdir(rel string) {
	f.t.Helper()
	require.NoError(f.t, f.mem.MkdirAll(filepath.Join(f.root, rel), 0o755))
}

// statLine renders a <pid>/stat line with the given comm and CPU fields.
func statLine(pid, comm, utime, stime, start string) string {
	return pid + " (" + comm + ") S 1 " + pid + " " + pid + " 0 -1 4194560 100 0 0 0 " +
		utime + " " + stime + " 0 0 20 0 1 0 " + start + " 123456 789 18446744073709551615\n"
}

type fakeResolver struct {
	owner    string
	ownerErr error
	exe      string
	exeErr   error
}

func (r fakeResolver) Owner(context.Context, uint32) (string, error) {
	return r.owner, r.ownerErr
}

func (r fakeResolver) Executable(context.Context, uint32) (string, error) {
	return r.exe, r.exeErr
}

var errDenied = errors.New("permission denied")
