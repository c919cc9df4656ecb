//go:build linux

package proc

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"
	"github.com/tklauser/go-sysconf"
)

// DefaultRoot is the usual procfs mount point.
const DefaultRoot = "/proc"

// FS reads procfs files below root.
type FS struct {
	fs   afero.Fs
	root string
}

// NewFS returns an FS over the host filesystem.
func NewFS(root string) FS {
	return NewFSWith(afero.NewOsFs(), root)
}

// NewFSWith returns an FS over fs. Tests pass an afero.NewMemMapFs.
func NewFSWith(fs afero.Fs, root string) FS {
	if root == "" {
		root = DefaultRoot
	}
	return FS{fs: fs, root: root}
}

// Open opens a file under the mount point, e.g. Open("self", "mountinfo").
func (p FS) Open(elem ...string) (afero.File, error) { return p.fs.Open(p.path(elem...)) }

// Root returns the mount point this FS reads from.
func (p FS) Root() string { return p.root }

func (p FS) path(elem ...string) string {
	return filepath.Join(append([]string{p.root}, elem...)...)
}

func (p FS) pidPath(pid uint32, elem ...string) string {
	return p.path(append([]string{strconv.FormatUint(uint64(pid), 10)}, elem...)...)
}

func (p FS) readFile(path string) ([]byte, error) {
	return afero.ReadFile(p.fs, path)
}

// Exists reports whether <root>/<pid> is present.
func (p FS) Exists(pid uint32) bool {
	_, err := p.fs.Stat(p.pidPath(pid))
	return err == nil
}

// ClockTicks returns the number of clock ticks per second.
// The CLK_TCK env var overrides it (useful for testing); otherwise it comes
// from sysconf(_SC_CLK_TCK), falling back to 100.
func ClockTicks() int64 {
	if v, _ := strconv.ParseInt(os.Getenv("CLK_TCK"), 10, 64); v > 0 {
		return v
	}
	if v, err := sysconf.Sysconf(sysconf.SC_CLK_TCK); err == nil && v > 0 {
		return v
	}
	return 100
}
