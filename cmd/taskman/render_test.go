//go:build linux

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/taskman/pkg/model"
	"github.com/ja7ad/taskman/pkg/snapshot"
	"github.com/ja7ad/taskman/pkg/tree"
)

func sampleOf(pid, ppid uint32, name, owner string, cpu, mem float64) model.ProcessSample {
	p := model.NewProcessSample(pid)
	p.ParentPID, p.Name, p.Owner, p.CPUPercent, p.MemoryMB = ppid, name, owner, cpu, mem
	p.Missing = 0
	return p
}

func TestSortSamples(t *testing.T) {
	base := []model.ProcessSample{
		sampleOf(3, 1, "c", "alice", 5, 10),
		sampleOf(1, 0, "a", "root", 5, 300),
		sampleOf(2, 1, "b", "alice", 40, 1),
	}
	pids := func(ps []model.ProcessSample) []uint32 {
		var out []uint32
		for _, p := range ps {
			out = append(out, p.PID)
		}
		return out
	}

	for _, tc := range []struct {
		by   string
		want []uint32
	}{
		{sortPID, []uint32{1, 2, 3}},
		{sortCPU, []uint32{2, 1, 3}},
		{sortMem, []uint32{1, 3, 2}},
	} {
		t.Run(tc.by, func(t *testing.T) {
			ps := append([]model.ProcessSample(nil), base...)
			require.NoError(t, sortSamples(ps, tc.by))
			assert.Equal(t, tc.want, pids(ps))
		})
	}

	assert.Error(t, sortSamples(nil, "name"))
}

func TestFormatMemory(t *testing.T) {
	assert.Equal(t, "12.5M", formatMemory(12.5))
	assert.Equal(t, "2.0G", formatMemory(2048))
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	missing := sampleOf(9, 1, "ghost", model.OwnerUnknown, 0, 0)
	missing.ExecutablePath = model.PathNotFound
	missing.Missing = model.FieldPath | model.FieldOwner

	worker := sampleOf(2, 1, "worker", "alice", 12.34, 1.5)
	worker.Status, worker.ExecutablePath = "R", "/usr/bin/worker"

	err := renderTable(&buf, []model.ProcessSample{worker, missing}, newStyles(&buf, false))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"PID", "PPID", "NAME", "STATE", "OWNER", "CPU%", "MEM", "PATH"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"2", "1", "worker", "R", "alice", "12.3", "1.5M", "/usr/bin/worker"}, strings.Fields(lines[1]))
	assert.Contains(t, lines[2], "ghost")
	assert.Contains(t, lines[2], model.PathNotFound)
}

func TestRenderTree(t *testing.T) {
	view := snapshot.NewProcessSnapshot([]model.ProcessSample{
		sampleOf(1, 0, "init", "root", 0, 0),
		sampleOf(2, 1, "sshd", "root", 0, 0),
		sampleOf(3, 2, "bash", "alice", 0, 0),
		sampleOf(4, 1, "cron", "root", 0, 0),
	})
	var buf bytes.Buffer
	require.NoError(t, renderTree(&buf, tree.Flatten(tree.Build(view)), newStyles(&buf, false)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "init (pid 1, root)", lines[0])
	assert.Equal(t, "└─ sshd (pid 2, root)", lines[1])
	assert.Equal(t, "  └─ bash (pid 3, alice)", lines[2])
	assert.Equal(t, "└─ cron (pid 4, root)", lines[3])
}

func TestRenderHost(t *testing.T) {
	var buf bytes.Buffer
	st := newStyles(&buf, false)

	require.NoError(t, renderHost(&buf, model.HostCPUSample{}, model.HostMemorySample{}, st))
	assert.Equal(t, "CPU n/a   MEM n/a\n", buf.String())

	buf.Reset()
	require.NoError(t, renderHost(&buf,
		model.HostCPUSample{UsagePercent: 58.333, Valid: true},
		model.HostMemorySample{TotalGB: 16, UsedGB: 4, Valid: true}, st))
	assert.Equal(t, "CPU 58.3%   MEM 4.00 / 16.00 GB (25%)\n", buf.String())
}

func TestVisible(t *testing.T) {
	snap := snapshot.NewProcessSnapshot([]model.ProcessSample{
		sampleOf(1, 0, "init", model.OwnerRoot, 0, 0),
		sampleOf(2, 1, "app", "alice", 0, 0),
	})
	assert.Equal(t, []uint32{2}, visible(snap, false).PIDs())
	assert.Equal(t, []uint32{1, 2}, visible(snap, true).PIDs())
}
