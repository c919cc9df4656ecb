//go:build linux

package proc

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockTicks(t *testing.T) {
	t.Setenv("CLK_TCK", "")
	assert.Greater(t, ClockTicks(), int64(0))

	t.Setenv("CLK_TCK", "250")
	assert.Equal(t, int64(250), ClockTicks())

	t.Setenv("CLK_TCK", "garbage")
	assert.Greater(t, ClockTicks(), int64(0))
}

func TestNewFSWith_DefaultRoot(t *testing.T) {
	fx := newProcFixture(t)
	assert.Equal(t, DefaultRoot, NewFSWith(fx.mem, "").Root())
}

func TestExists(t *testing.T) {
	fx := newProcFixture(t)
	fx.mkdir("7")
	p := fx.FS()
	assert.True(t, p.Exists(7))
	assert.False(t, p.Exists(8))
}

func TestListPIDs_SkipsNonNumeric(t *testing.T) {
	fx := newProcFixture(t)
	for _, d := range []string{"42", "1", "self", "sys", "12abc", "-3", "300"} {
		fx.mkdir(d)
	}
	fx.write("meminfo", "MemTotal: 1 kB\n")
	fx.write("uptime", "1.0 1.0\n")

	pids, err := fx.FS().ListPIDs()
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 42, 300}, pids)
}

func TestListPIDs_MissingRoot(t *testing.T) {
	fx := newProcFixture(t)
	pids, err := NewFSWith(fx.mem, "/nope").ListPIDs()
	require.Error(t, err)
	assert.Empty(t, pids)
}

func TestListPIDs_HostSmoke(t *testing.T) {
	if _, err := os.Stat("/proc/self/stat"); err != nil {
		t.Skip("no procfs")
	}
	pids, err := NewFS(DefaultRoot).ListPIDs()
	require.NoError(t, err)
	assert.Contains(t, pids, uint32(os.Getpid()))
}
